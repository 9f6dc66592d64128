package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/sigecs/ecs"
)

type MovementSystem struct {
	Entities     ecs.Query[STransform]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for _, item := range s.Entities.Iter() {
		item.Transform.Position.X += item.Transform.Velocity.X * float32(frame.DeltaTime)
		item.Transform.Position.Y += item.Transform.Velocity.Y * float32(frame.DeltaTime)
	}
}

type ScoreSystem struct {
	Enemies      ecs.Query[SEnemies]
	Total        ecs.Singleton[Score]
	ExecuteCount int
}

func (s *ScoreSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	total := s.Total.Get()
	*total = 0
	for enemy := range s.Enemies.Values() {
		*total += *enemy.Score
	}
}

func spawnEnemy(m *ecs.Manager, score Score) ecs.EntityIndex {
	e := m.CreateIndex()
	ecs.AddComponent(m, e, Transform{})
	ecs.AddComponent(m, e, Collision{Radius: 1})
	ecs.AddComponent(m, e, Shape{Radius: 1, Vertices: 5})
	ecs.AddComponent(m, e, score)
	ecs.AddTag[TEnemy](m, e)
	return e
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order and query initialization", func(t *testing.T) {
		m := newTestManager()
		ecs.NewSingleton[Score](m)
		scheduler := ecs.NewScheduler(m)

		movement := &MovementSystem{}
		score := &ScoreSystem{}

		scheduler.Register(movement)
		scheduler.Register(score)

		spawnEnemy(m, 5)
		m.Refresh()

		scheduler.Once(1.0)

		if movement.ExecuteCount != 1 {
			t.Errorf("expected MovementSystem to execute once, got %d", movement.ExecuteCount)
		}
		if score.ExecuteCount != 1 {
			t.Errorf("expected ScoreSystem to execute once, got %d", score.ExecuteCount)
		}

		scheduler.Once(1.0)

		if movement.ExecuteCount != 2 {
			t.Errorf("expected MovementSystem to execute twice, got %d", movement.ExecuteCount)
		}
		if score.ExecuteCount != 2 {
			t.Errorf("expected ScoreSystem to execute twice, got %d", score.ExecuteCount)
		}
	})

	t.Run("singleton state persistence", func(t *testing.T) {
		m := newTestManager()
		total := ecs.NewSingleton[Score](m)
		scheduler := ecs.NewScheduler(m)

		spawnEnemy(m, 50)
		spawnEnemy(m, 75)
		m.Refresh()

		scheduler.Register(&ScoreSystem{})
		scheduler.Once(1.0)

		if *total.Get() != 125 {
			t.Errorf("expected total score 125, got %d", *total.Get())
		}

		spawnEnemy(m, 25)
		m.Refresh()
		scheduler.Once(1.0)

		if *total.Get() != 150 {
			t.Errorf("expected total score 150, got %d", *total.Get())
		}
	})

	t.Run("refresh after every frame", func(t *testing.T) {
		m := newTestManager()
		scheduler := ecs.NewScheduler(m)
		scheduler.Register(&MovementSystem{})

		a := spawnEnemy(m, 1)
		spawnEnemy(m, 2)
		m.Refresh()

		m.Kill(a)
		scheduler.Once(1.0)

		if m.EntityCount() != 1 || m.SizeNext() != 1 {
			t.Errorf("expected the frame to end with a refresh, got %q", m.DebugString())
		}
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		m := newTestManager()
		scheduler := ecs.NewScheduler(m)

		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		if movement.ExecuteCount == 0 {
			t.Error("expected system to execute at least once")
		}
	})

	t.Run("delta time calculation", func(t *testing.T) {
		m := newTestManager()
		scheduler := ecs.NewScheduler(m)

		e := m.CreateIndex()
		ecs.AddComponent(m, e, Transform{Velocity: Vec2{X: 10, Y: 20}})
		m.Refresh()

		scheduler.Register(&MovementSystem{})
		scheduler.Once(0.5)

		pos := ecs.GetComponent[Transform](m, e).Position
		if pos.X != 5.0 || pos.Y != 10.0 {
			t.Errorf("expected position to be updated with delta time, got %+v", pos)
		}
	})

	t.Run("commands integration", func(t *testing.T) {
		m := newTestManager()
		scheduler := ecs.NewScheduler(m)

		spawnPlayer(m, true)
		m.Refresh()

		scheduler.Register(&spawnBulletSystem{})
		scheduler.Once(1.0)

		movement := &MovementSystem{}
		scheduler.Register(movement)
		scheduler.Once(1.0)

		if movement.Entities.Len() != 2 {
			t.Errorf("expected spawned bullet to be visible after command flush, got %d entities", movement.Entities.Len())
		}
	})

	t.Run("query survives growth during iteration", func(t *testing.T) {
		m := newTestManager(ecs.WithCapacity(4))
		scheduler := ecs.NewScheduler(m)

		var originals []ecs.Handle
		for range 3 {
			h := m.CreateHandle()
			ecs.AddComponent(m, h, Transform{})
			originals = append(originals, h)
		}
		m.Refresh()

		sys := &growingSystem{Extra: 20}
		scheduler.Register(sys)
		scheduler.Once(1.0)

		if m.Capacity() <= 4 {
			t.Fatalf("expected the manager to grow, capacity is %d", m.Capacity())
		}
		if sys.Visited != 3 {
			t.Errorf("expected 3 entities to be visited, got %d", sys.Visited)
		}
		for i, h := range originals {
			if x := ecs.GetComponent[Transform](m, h).Position.X; x != 42 {
				t.Errorf("entity %d: expected Position.X 42, got %v", i, x)
			}
		}
		if m.EntityCount() != 23 {
			t.Errorf("expected 23 entities after refresh, got %d", m.EntityCount())
		}
	})
}

// growingSystem creates entities directly while iterating its query.
type growingSystem struct {
	Entities ecs.Query[STransform]
	Extra    int
	Visited  int
}

func (s *growingSystem) Execute(frame *ecs.UpdateFrame) {
	m := frame.Manager
	for _, item := range s.Entities.Iter() {
		if s.Visited == 0 {
			for range s.Extra {
				m.CreateIndex()
			}
		}
		item.Transform.Position.X = 42
		s.Visited++
	}
}

func TestSchedulerRejectsUnregisteredQuery(t *testing.T) {
	type ghostSystem struct {
		MovementSystem
		Ghosts ecs.Query[struct{ *Velocity }]
	}

	m := newTestManager()
	scheduler := ecs.NewScheduler(m)

	defer func() {
		if recover() == nil {
			t.Error("expected Register to panic for an unregistered signature")
		}
	}()
	scheduler.Register(&ghostSystem{})
}
