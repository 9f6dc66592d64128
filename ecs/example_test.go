package ecs_test

import (
	"fmt"
	"log/slog"

	"github.com/plus3/sigecs/ecs"
)

type Position struct{ X, Y float32 }
type Player struct{}

type SPositioned struct {
	Player
	*Position
}

func Example() {
	settings := ecs.NewSettings()
	ecs.RegisterComponent[Position](settings)
	ecs.RegisterTag[Player](settings)
	ecs.RegisterSignature[SPositioned](settings)

	m := ecs.NewManager(settings, ecs.WithLogger(slog.New(slog.DiscardHandler)))

	hero := m.CreateHandle()
	ecs.AddComponent(m, hero, Position{X: 5})
	ecs.AddTag[Player](m, hero)

	rock := m.CreateIndex()
	ecs.AddComponent(m, rock, Position{X: 1, Y: 1})
	m.Refresh()

	ecs.ForEntitiesMatching(m, func(e ecs.EntityIndex, s SPositioned) {
		s.Position.Y += 2
		fmt.Println("player at", *s.Position)
	})

	m.KillHandle(hero)
	m.Refresh()
	fmt.Println("hero valid:", m.IsHandleValid(hero))
	fmt.Print(m.DebugString())

	// Output:
	// player at {5 2}
	// hero valid: false
	//
	// size: 1
	// sizeNext: 1
	// capacity: 100
	// A
}
