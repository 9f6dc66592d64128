// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sigecs/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// SImguiItems matches every entity carrying an ImguiItem.
type SImguiItems struct {
	*ImguiItem
}

// SDebugPanels matches the entity created by SpawnDebugUI.
type SDebugPanels struct {
	*EntityBrowserComponent
	*ComponentInspectorComponent
	*OccupancyViewerComponent
	*PerformanceStatsComponent
	*SignatureDebuggerComponent
	*FrameTimer
}

// Register adds the debug UI components and signatures to settings.
// It must run before the first Manager is built from settings.
func Register(settings *ecs.Settings) {
	ecs.RegisterComponent[ImguiItem](settings)
	ecs.RegisterComponent[EntityBrowserComponent](settings)
	ecs.RegisterComponent[ComponentInspectorComponent](settings)
	ecs.RegisterComponent[OccupancyViewerComponent](settings)
	ecs.RegisterComponent[PerformanceStatsComponent](settings)
	ecs.RegisterComponent[SignatureDebuggerComponent](settings)
	ecs.RegisterComponent[FrameTimer](settings)

	ecs.RegisterSignature[SImguiItems](settings)
	ecs.RegisterSignature[SDebugPanels](settings)
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[SImguiItems]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}
