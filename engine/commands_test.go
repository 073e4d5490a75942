package engine_test

import (
	"testing"

	"github.com/plus3/nightfall/engine"
	"github.com/stretchr/testify/assert"
)

type world struct {
	Entities *engine.Pool[Health]
	Log      []string
}

type reaperSystem struct{}

func (s *reaperSystem) Execute(frame *engine.UpdateFrame[world]) {
	for h, hp := range frame.State.Entities.Iter() {
		if hp.Current <= 0 {
			frame.Commands.Delete(frame.State.Entities, h)
			// Queuing twice must not double count.
			frame.Commands.Delete(frame.State.Entities, h)
		}
	}
}

type countingSystem struct {
	seen []int
}

func (s *countingSystem) Execute(frame *engine.UpdateFrame[world]) {
	s.seen = append(s.seen, frame.State.Entities.Len())
}

func TestCommands(t *testing.T) {
	t.Run("deletes are deferred until every system ran", func(t *testing.T) {
		state := &world{Entities: engine.NewPool[Health]()}
		state.Entities.Spawn(Health{Current: 0})
		state.Entities.Spawn(Health{Current: 10})

		counter := &countingSystem{}
		scheduler := engine.NewScheduler(state)
		scheduler.Register(&reaperSystem{})
		scheduler.Register(counter)

		scheduler.Once(1.0)
		scheduler.Once(1.0)

		assert.Equal(t, []int{2, 1}, counter.seen)
	})

	t.Run("flush order and reset", func(t *testing.T) {
		state := &world{Entities: engine.NewPool[Health]()}
		h := state.Entities.Spawn(Health{Current: 1})

		scheduler := engine.NewScheduler(state)
		scheduler.Register(systemFunc(func(frame *engine.UpdateFrame[world]) {
			if frame.Tick > 1 {
				return
			}
			frame.Commands.Defer(func() {
				frame.State.Log = append(frame.State.Log, "defer")
			})
			engine.Spawn(frame.Commands, frame.State.Entities, Health{Current: 5})
			frame.Commands.Delete(frame.State.Entities, h)
			assert.Equal(t, 3, frame.Commands.Pending())
		}))

		scheduler.Once(0.016)
		scheduler.Once(0.016)

		assert.Equal(t, []string{"defer"}, state.Log)
		assert.Equal(t, 1, state.Entities.Len())
		assert.False(t, state.Entities.Has(h))
	})
}

type systemFunc func(frame *engine.UpdateFrame[world])

func (f systemFunc) Execute(frame *engine.UpdateFrame[world]) {
	f(frame)
}
