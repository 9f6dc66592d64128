// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/sigecs/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Store it as a Manager singleton so systems can reach it.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. imgui.ini persistence is disabled.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: backend}
}

// Game implements ebiten.Game around a Scheduler. Every Update runs one
// scheduler frame between BeginFrame and EndFrame, so ImguiItem render
// functions deferred by debugui.ImguiSystem land inside the ImGui frame.
type Game struct {
	Backend   ImguiBackend
	Scheduler *ecs.Scheduler

	// DrawWorld draws the game before the ImGui overlay. Optional.
	DrawWorld func(screen *ebiten.Image)
}

func (g *Game) Update() error {
	g.Backend.BeginFrame()
	g.Scheduler.Once(1.0 / float64(ebiten.TPS()))
	g.Backend.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.DrawWorld != nil {
		g.DrawWorld(screen)
	}
	g.Backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
