package main

//go:generate go run github.com/plus3/sigecs/cmd/ecsgen -catalog catalog.yaml -out catalog_gen.go

type Position struct {
	X, Y float32
}

type Velocity struct {
	X, Y float32
}

type Health struct {
	Value float32
}

// Lifetime counts down in seconds. The entity is killed when it reaches zero.
type Lifetime struct {
	Remaining float64
}

type TActive struct{}

// TDecaying marks entities close to the end of their lifetime.
type TDecaying struct{}

// Counters is a Manager singleton updated by the systems.
type Counters struct {
	Spawned int64
	Killed  int64
	Toggled int64
}
