package main

import (
	"math/rand/v2"

	"github.com/plus3/sigecs/ecs"
)

const (
	worldSize      = 1000
	decayThreshold = 1.0
	dampening      = 0.9
)

// spawnRandom returns a Commands.Spawn builder that gives the new entity a
// Position and a random mix of the other kinds.
func spawnRandom(r *rand.Rand) func(*ecs.Manager, ecs.EntityIndex) {
	return func(m *ecs.Manager, e ecs.EntityIndex) {
		ecs.AddComponent(m, e, Position{X: r.Float32() * worldSize, Y: r.Float32() * worldSize})
		if r.IntN(2) == 0 {
			ecs.AddComponent(m, e, Velocity{X: r.Float32()*2 - 1, Y: r.Float32()*2 - 1})
		}
		if r.IntN(10) < 7 {
			ecs.AddComponent(m, e, Health{Value: 100})
			ecs.AddComponent(m, e, Lifetime{Remaining: 0.5 + r.Float64()*4.5})
		}
		if r.IntN(2) == 0 {
			ecs.AddTag[TActive](m, e)
		}
	}
}

type MoveSystem struct {
	Movers ecs.Query[SMovers]
}

func (s *MoveSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for e := range s.Movers.Values() {
		e.Position.X += e.Velocity.X * dt
		e.Position.Y += e.Velocity.Y * dt
	}
}

// AgeSystem counts lifetimes down, tags entities about to expire and queues
// kills for the expired ones.
type AgeSystem struct {
	Mortal   ecs.Query[SMortal]
	Counters ecs.Singleton[Counters]
}

func (s *AgeSystem) Execute(frame *ecs.UpdateFrame) {
	counters := s.Counters.Get()
	for i, e := range s.Mortal.Iter() {
		e.Lifetime.Remaining -= frame.DeltaTime
		if e.Lifetime.Remaining <= 0 || e.Health.Value <= 0 {
			frame.Commands.Kill(frame.Manager.HandleOf(i))
			counters.Killed++
			continue
		}
		if e.Lifetime.Remaining < decayThreshold && !ecs.HasTag[TDecaying](frame.Manager, i) {
			ecs.AddTag[TDecaying](frame.Manager, i)
		}
	}
}

// DecaySystem slows decaying entities down and drops their Velocity once
// they have almost stopped.
type DecaySystem struct {
	Decaying ecs.Query[SDecaying]
}

func (s *DecaySystem) Execute(frame *ecs.UpdateFrame) {
	for i, e := range s.Decaying.Iter() {
		e.Velocity.X *= dampening
		e.Velocity.Y *= dampening
		if e.Velocity.X*e.Velocity.X+e.Velocity.Y*e.Velocity.Y < 1e-4 {
			ecs.DelComponent[Velocity](frame.Manager, i)
		}
	}
}

// ChurnSystem spawns Rate entities per frame and deactivates a random tenth
// of the active ones.
type ChurnSystem struct {
	Rate     int
	Rand     *rand.Rand
	Active   ecs.Query[SActive]
	Counters ecs.Singleton[Counters]
}

func (s *ChurnSystem) Execute(frame *ecs.UpdateFrame) {
	counters := s.Counters.Get()
	for range s.Rate {
		frame.Commands.Spawn(spawnRandom(s.Rand))
		counters.Spawned++
	}
	for i := range s.Active.Iter() {
		if s.Rand.IntN(10) == 0 {
			ecs.DelTag[TActive](frame.Manager, i)
			counters.Toggled++
		}
	}
}
