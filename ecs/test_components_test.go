package ecs_test

import (
	"log/slog"

	"github.com/plus3/sigecs/ecs"
)

// Common test component types
type Vec2 struct {
	X, Y float32
}

type Transform struct {
	Position Vec2
	Velocity Vec2
	Angle    float32
}

type Shape struct {
	Radius   float32
	Vertices int
}

type Collision struct {
	Radius float32
}

type Lifespan struct {
	Remaining int
	Total     int
}

type Input struct {
	Up, Down, Left, Right, Shoot bool
}

type Score int32

type Name string

// Tags
type TPlayer struct{}
type TBullet struct{}
type TEnemy struct{}
type TSmallEnemy struct{}
type TSpawning struct{}

// Never registered.
type Velocity struct {
	DX, DY float32
}
type TGhost struct{}

// Signatures
type SPlayers struct {
	TPlayer
	*Transform
	*Collision
	*Shape
	*Input
}

type SBullets struct {
	TBullet
	*Transform
	*Collision
	*Shape
	*Lifespan
}

type SEnemies struct {
	TEnemy
	*Transform
	*Collision
	*Shape
	*Score
}

type STransform struct {
	*Transform
}

type SRendering struct {
	*Transform
	*Shape
}

type SLifespan struct {
	*Lifespan
	*Shape
}

type SNamed struct {
	*Name
}

// SMoving lists Velocity, which is not registered: it matches like STransform.
type SMoving struct {
	*Transform
	*Velocity
}

// SHaunted lists an unregistered tag: it matches like STransform.
type SHaunted struct {
	TGhost
	*Transform
}

func newTestSettings() *ecs.Settings {
	settings := ecs.NewSettings()
	ecs.RegisterComponent[Transform](settings)
	ecs.RegisterComponent[Shape](settings)
	ecs.RegisterComponent[Collision](settings)
	ecs.RegisterComponent[Lifespan](settings)
	ecs.RegisterComponent[Input](settings)
	ecs.RegisterComponent[Score](settings)
	ecs.RegisterComponent[Name](settings)

	ecs.RegisterTag[TPlayer](settings)
	ecs.RegisterTag[TBullet](settings)
	ecs.RegisterTag[TEnemy](settings)
	ecs.RegisterTag[TSmallEnemy](settings)
	ecs.RegisterTag[TSpawning](settings)

	ecs.RegisterSignature[SPlayers](settings)
	ecs.RegisterSignature[SBullets](settings)
	ecs.RegisterSignature[SEnemies](settings)
	ecs.RegisterSignature[STransform](settings)
	ecs.RegisterSignature[SRendering](settings)
	ecs.RegisterSignature[SLifespan](settings)
	ecs.RegisterSignature[SNamed](settings)
	ecs.RegisterSignature[SMoving](settings)
	ecs.RegisterSignature[SHaunted](settings)
	return settings
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestManager(opts ...ecs.Option) *ecs.Manager {
	opts = append([]ecs.Option{ecs.WithLogger(discardLogger())}, opts...)
	return ecs.NewManager(newTestSettings(), opts...)
}
