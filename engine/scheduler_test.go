package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/nightfall/engine"
)

type MovementSystem struct {
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *engine.UpdateFrame[world]) {
	s.ExecuteCount++
	for hp := range frame.State.Entities.Values() {
		hp.Current += frame.DeltaTime
	}
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order and delta time", func(t *testing.T) {
		state := &world{Entities: engine.NewPool[Health]()}
		h := state.Entities.Spawn(Health{Current: 0})

		scheduler := engine.NewScheduler(state)
		movement := &MovementSystem{}
		scheduler.Register(movement)

		scheduler.Once(0.5)
		scheduler.Once(0.25)

		if movement.ExecuteCount != 2 {
			t.Errorf("expected MovementSystem to execute twice, got %d", movement.ExecuteCount)
		}
		if got := state.Entities.Get(h).Current; got != 0.75 {
			t.Errorf("expected accumulated 0.75, got %f", got)
		}
		if scheduler.Ticks() != 2 {
			t.Errorf("expected 2 ticks, got %d", scheduler.Ticks())
		}
		if scheduler.State() != state {
			t.Errorf("scheduler should expose the state it was built with")
		}
	})

	t.Run("stats", func(t *testing.T) {
		state := &world{Entities: engine.NewPool[Health]()}
		scheduler := engine.NewScheduler(state)
		scheduler.Register(&MovementSystem{})
		scheduler.Register(&countingSystem{})

		before := scheduler.GetStats()
		if before.Systems[0].MinDuration != 0 {
			t.Errorf("unexecuted system should report zero min duration")
		}

		for i := 0; i < 3; i++ {
			scheduler.Once(1.0 / 60.0)
		}

		stats := scheduler.GetStats()
		if stats.SystemCount != 2 {
			t.Errorf("expected 2 systems, got %d", stats.SystemCount)
		}
		if stats.TotalExecutions != 6 {
			t.Errorf("expected 6 executions, got %d", stats.TotalExecutions)
		}
		if stats.Systems[0].Name != "MovementSystem" {
			t.Errorf("expected MovementSystem, got %s", stats.Systems[0].Name)
		}
		if stats.Systems[1].Name != "countingSystem" {
			t.Errorf("expected countingSystem, got %s", stats.Systems[1].Name)
		}
		if stats.Ticks != 3 {
			t.Errorf("expected 3 ticks, got %d", stats.Ticks)
		}
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		state := &world{Entities: engine.NewPool[Health]()}
		scheduler := engine.NewScheduler(state)
		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Run did not return after cancellation")
		}

		if movement.ExecuteCount == 0 {
			t.Errorf("expected at least one execution before cancellation")
		}
	})
}
