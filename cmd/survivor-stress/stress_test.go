package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/plus3/nightfall/config"
	"github.com/plus3/nightfall/game"
	"github.com/plus3/nightfall/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closingBuffer struct {
	bytes.Buffer
	closed bool
}

func (b *closingBuffer) Close() error {
	b.closed = true
	return nil
}

func newSim(t *testing.T) *game.Simulation {
	t.Helper()
	sim, err := game.New(config.Default(), game.WithSeed(3), game.WithMapGenerator(tilemap.Uniform(0)))
	require.NoError(t, err)
	return sim
}

func TestTraceRoundTrip(t *testing.T) {
	sim := newSim(t)

	var buf closingBuffer
	tw, err := newTraceWriter(&buf)
	require.NoError(t, err)

	for range 3 {
		sim.Step()
		require.NoError(t, tw.Write(sim.Snapshot()))
	}
	require.NoError(t, tw.Close())
	assert.True(t, buf.closed)
	assert.Equal(t, 3, tw.Frames())

	snaps, err := readTrace(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, snaps, 3)

	last := sim.Snapshot()
	assert.Equal(t, uint64(3), snaps[2].Tick)
	assert.Equal(t, last.Session, snaps[2].Session)
	assert.Equal(t, last.Player, snaps[2].Player)
	assert.Equal(t, last.Inventory, snaps[2].Inventory)
	assert.Nil(t, snaps[2].Grid, "grid is not traced")
}

func TestAutopilotDecide(t *testing.T) {
	pilot := newAutopilot()
	base := game.Snapshot{
		Phase: game.Day,
		Player: game.PlayerView{
			Box:       game.Box{X: 100, Y: 100, W: 20, H: 20},
			Health:    100,
			MaxHealth: 100,
			Ammo:      20,
		},
	}

	t.Run("idle without zombies", func(t *testing.T) {
		snap := base
		d := pilot.decide(&snap, nil)
		assert.Equal(t, decision{}, d)
	})

	t.Run("shoots far zombie without moving", func(t *testing.T) {
		snap := base
		snap.Zombies = []game.ZombieView{{Box: game.Box{X: 400, Y: 100, W: 20, H: 20}}}
		d := pilot.decide(&snap, nil)
		assert.True(t, d.fire)
		assert.Equal(t, game.Vec2{X: 410, Y: 110}, d.target)
		assert.Zero(t, d.dx)
		assert.Zero(t, d.dy)
	})

	t.Run("backs away from close zombie", func(t *testing.T) {
		snap := base
		snap.Zombies = []game.ZombieView{
			{Box: game.Box{X: 400, Y: 400, W: 20, H: 20}},
			{Box: game.Box{X: 150, Y: 60, W: 20, H: 20}},
		}
		d := pilot.decide(&snap, nil)
		assert.Equal(t, game.Vec2{X: 160, Y: 70}, d.target)
		assert.Equal(t, -1, d.dx)
		assert.Equal(t, 1, d.dy)
	})

	t.Run("restocks when low", func(t *testing.T) {
		snap := base
		snap.Player.Ammo = 0
		snap.Player.Health = 30
		snap.Zombies = []game.ZombieView{{Box: game.Box{X: 400, Y: 100, W: 20, H: 20}}}
		d := pilot.decide(&snap, []string{"medkit", "pistol_ammo"})
		assert.False(t, d.fire)
		assert.True(t, d.reload)
		assert.True(t, d.medkit)
		assert.Equal(t, "pistol_ammo", d.craftID)
	})

	t.Run("no reload at night", func(t *testing.T) {
		snap := base
		snap.Phase = game.Night
		snap.Player.Ammo = 1
		d := pilot.decide(&snap, nil)
		assert.False(t, d.reload)
	})
}

func TestAutopilotKeepsSessionGoing(t *testing.T) {
	sim := newSim(t)
	pilot := newAutopilot()
	for range 600 {
		pilot.Drive(sim)
		sim.Step()
	}
	assert.Equal(t, game.Running, sim.Status())
	assert.Equal(t, uint64(600), sim.Snapshot().Tick)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:     time.Second,
		Seed:         9,
		Tick:         16 * time.Millisecond,
		Systems:      6,
		TotalUpdates: 100,
		UpdateTime:   Stats{Samples: []time.Duration{time.Millisecond, 3 * time.Millisecond}},
		TraceFrames:  4,
	}
	r.UpdateTime.Finalize()
	r.AddSession(game.Report{Session: "a", Score: 30, Kills: 3, Days: 1})
	r.AddSession(game.Report{Session: "b", Score: 10, Kills: 1, Days: 1})

	assert.Equal(t, "a", r.Best.Session)
	assert.Equal(t, 2*time.Millisecond, r.UpdateTime.Avg)
	assert.Equal(t, 1600*time.Millisecond, r.SimulatedTime())

	var out strings.Builder
	require.NoError(t, r.Generate(&out))
	assert.Contains(t, out.String(), "**Total Updates:** 100")
	assert.Contains(t, out.String(), "**Finished Sessions:** 2")
	assert.Contains(t, out.String(), "**Best:** 30 points, 3 kills, 1 days (a)")
	assert.Contains(t, out.String(), "**Trace Frames:** 4")
	assert.Contains(t, out.String(), "unknown")
}
