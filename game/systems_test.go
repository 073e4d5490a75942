package game

import (
	"testing"
	"time"

	"github.com/plus3/nightfall/config"
	"github.com/plus3/nightfall/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shortDays(cfg *config.Config) {
	// ten ticks per phase
	cfg.DayNight.DayLength = 160 * time.Millisecond
}

func TestPlayerMovementClampsToMap(t *testing.T) {
	sim := newTestSim(t, nil)
	s := sim.state

	sim.SetDirection(1, 1)
	sim.Step()
	assert.Equal(t, Vec2{X: 472, Y: 472}, s.Player.Pos, "diagonal movement is not normalized")

	sim.SetDirection(-5, 0)
	stepN(sim, 500)
	assert.Equal(t, 0.0, s.Player.Pos.X)

	sim.SetDirection(0, 1)
	stepN(sim, 500)
	assert.Equal(t, 960.0-24, s.Player.Pos.Y)
}

func TestClockFlipsAfterDayLength(t *testing.T) {
	sim := newTestSim(t, nil)
	s := sim.state
	ticks := int(s.Config.DayNight.DayLength / s.Config.Tick)
	require.Equal(t, 3750, ticks)

	stepN(sim, ticks-1)
	assert.Equal(t, Day, s.Clock.Phase)
	assert.Equal(t, 59984*time.Millisecond, s.Clock.Elapsed)

	s.Config.Zombies.SpawnRateDay = 0.25
	s.Config.Zombies.SpawnRateNight = 0.75
	assert.Equal(t, 0.25, s.SpawnRate(), "day rate right before the flip")

	sim.Step()
	assert.Equal(t, Night, s.Clock.Phase)
	assert.Equal(t, time.Duration(0), s.Clock.Elapsed)
	assert.Equal(t, 0.75, s.SpawnRate(), "night rate right after the flip")
	assert.Equal(t, 60*time.Second, s.Clock.Total)
}

func TestDayCounter(t *testing.T) {
	t.Run("once per cycle", func(t *testing.T) {
		sim := newTestSim(t, shortDays)
		stepN(sim, 10)
		assert.Equal(t, 1, sim.state.Clock.Day)
		assert.True(t, sim.state.Clock.Night())
		stepN(sim, 10)
		assert.Equal(t, 2, sim.state.Clock.Day)
		assert.False(t, sim.state.Clock.Night())
	})

	t.Run("every flip", func(t *testing.T) {
		sim := newTestSim(t, func(cfg *config.Config) {
			shortDays(cfg)
			cfg.DayNight.CountEveryFlip = true
		})
		stepN(sim, 10)
		assert.Equal(t, 2, sim.state.Clock.Day)
		stepN(sim, 10)
		assert.Equal(t, 3, sim.state.Clock.Day)
	})
}

func TestNightBurst(t *testing.T) {
	sim := newTestSim(t, shortDays)
	s := sim.state

	stepN(sim, 9)
	assert.Equal(t, 0, s.Zombies.Len())

	sim.Step()
	assert.Equal(t, 3, s.Zombies.Len(), "3 + day/2 on day 1")

	events := sim.DrainEvents()
	phase := eventsOf(events, EventPhase)
	require.Len(t, phase, 1)
	assert.Equal(t, "night", phase[0].Key)
	burst := eventsOf(events, EventNightBurst)
	require.Len(t, burst, 1)
	assert.Equal(t, 3.0, burst[0].Value)

	// day 2 night: 3 + 1
	s.Zombies.Clear()
	stepN(sim, 20)
	assert.Equal(t, 4, s.Zombies.Len())
}

func TestSpawnSystemUsesPhaseRate(t *testing.T) {
	sim := newTestSim(t, func(cfg *config.Config) {
		cfg.Zombies.SpawnRateDay = 1
	})
	stepN(sim, 5)
	assert.Equal(t, 5, sim.state.Zombies.Len())
}

func TestZombieAtPlayerPositionDoesNotMove(t *testing.T) {
	sim := newTestSim(t, nil)
	s := sim.state

	h, _ := s.CreateZombie(s.Player.Pos, "normal")
	sim.Step()

	assert.Equal(t, s.Player.Pos, s.Zombies.Get(h).Pos)
	assert.Equal(t, 99.5, s.Player.Health)
}

func TestZombiePursuit(t *testing.T) {
	sim := newTestSim(t, nil)
	s := sim.state

	h, _ := s.CreateZombie(Vec2{X: s.Player.Pos.X + 100, Y: s.Player.Pos.Y}, "normal")
	sim.Step()

	z := s.Zombies.Get(h)
	assert.InDelta(t, s.Player.Pos.X+100-1.2, z.Pos.X, 1e-9)
	assert.Equal(t, s.Player.Pos.Y, z.Pos.Y)
}

func TestContactDamageStacksPerZombie(t *testing.T) {
	sim := newTestSim(t, nil)
	s := sim.state

	s.CreateZombie(s.Player.Pos, "normal")
	s.CreateZombie(s.Player.Pos, "tank")
	sim.Step()
	assert.Equal(t, 99.0, s.Player.Health)
}

func TestBulletRemovedOnTickItExceedsRange(t *testing.T) {
	sim := newTestSim(t, nil)
	s := sim.state
	center := s.Player.Center()

	require.True(t, sim.Fire(center.X+100, center.Y))
	require.Equal(t, 1, s.Bullets.Len())

	// pistol range 400 at 8 per tick: exactly 400 after 50 ticks
	stepN(sim, 50)
	require.Equal(t, 1, s.Bullets.Len())
	for b := range s.Bullets.Values() {
		assert.Equal(t, 400.0, b.Traveled)
	}

	sim.Step()
	assert.Equal(t, 0, s.Bullets.Len())
}

func TestBulletStopsAtWall(t *testing.T) {
	sim := newTestSim(t, nil)
	s := sim.state
	center := s.Player.Center()
	s.Grid.Set(13, 15, tilemap.Wall)

	require.True(t, sim.Fire(center.X-100, center.Y))
	stepN(sim, 4)
	assert.Equal(t, 1, s.Bullets.Len(), "x=448 is still tile 14")
	sim.Step()
	assert.Equal(t, 0, s.Bullets.Len())
}

func TestZombieKilledOnceScoredOnce(t *testing.T) {
	sim := newTestSim(t, nil)
	s := sim.state

	zh, _ := s.CreateZombie(Vec2{X: 600, Y: 470}, "normal")
	right := Vec2{X: 1, Y: 0}
	s.CreateBullet(Vec2{X: 590, Y: 480}, right, 40, 400)
	s.CreateBullet(Vec2{X: 590, Y: 480}, right, 40, 400)
	s.CreateBullet(Vec2{X: 590, Y: 480}, right, 40, 400)

	sim.Step()

	assert.False(t, s.Zombies.Has(zh))
	assert.Equal(t, 0, s.Zombies.Len())
	assert.Equal(t, 10, s.Score)
	assert.Equal(t, 1, s.Kills)
	assert.Equal(t, 1, s.Bullets.Len(), "the bullet after the kill flies on")

	events := sim.DrainEvents()
	kills := eventsOf(events, EventKill)
	require.Len(t, kills, 1)
	assert.Equal(t, "normal", kills[0].Key)
	score := eventsOf(events, EventScore)
	require.Len(t, score, 1)
	assert.Equal(t, 10.0, score[0].Value)
}

func TestBulletHitsFirstZombieOnly(t *testing.T) {
	sim := newTestSim(t, nil)
	s := sim.state

	first, _ := s.CreateZombie(Vec2{X: 600, Y: 470}, "tank")
	second, _ := s.CreateZombie(Vec2{X: 600, Y: 470}, "tank")
	s.CreateBullet(Vec2{X: 590, Y: 480}, Vec2{X: 1, Y: 0}, 40, 400)

	sim.Step()

	assert.Equal(t, 80.0, s.Zombies.Get(first).Health)
	assert.Equal(t, 120.0, s.Zombies.Get(second).Health)
	assert.Equal(t, 0, s.Bullets.Len())
}

func TestKillDropsItem(t *testing.T) {
	sim := newTestSim(t, func(cfg *config.Config) {
		cfg.Combat.DropChance = 1
	})
	s := sim.state

	s.CreateZombie(Vec2{X: 600, Y: 470}, "fast")
	s.CreateBullet(Vec2{X: 590, Y: 480}, Vec2{X: 1, Y: 0}, 40, 400)
	sim.Step()

	assert.Equal(t, 15, s.Score)
	assert.Equal(t, 1, s.Items.Len())
	assert.Len(t, eventsOf(sim.DrainEvents(), EventDrop), 1)
}

func TestPickup(t *testing.T) {
	sim := newTestSim(t, nil)
	s := sim.state
	metal := s.Catalog.MustID("metal")

	s.CreateItem(s.Player.Pos, metal)
	sim.Step()

	assert.Equal(t, 0, s.Items.Len())
	assert.Equal(t, 6, s.Player.Inventory.Count(metal))
	assert.Len(t, eventsOf(sim.DrainEvents(), EventPickup), 1)
}

func TestPickupWithFullInventoryLeavesItem(t *testing.T) {
	sim := newTestSim(t, func(cfg *config.Config) {
		cfg.Player.InventorySlots = 4
	})
	s := sim.state
	require.True(t, s.Player.Inventory.Full())

	medkit := s.Catalog.MustID("medkit")
	metal := s.Catalog.MustID("metal")
	s.CreateItem(s.Player.Pos, medkit)
	s.CreateItem(s.Player.Pos, metal)
	sim.Step()

	assert.Equal(t, 1, s.Items.Len(), "the medkit has no free slot")
	for item := range s.Items.Values() {
		assert.Equal(t, medkit, item.Item)
	}
	assert.Equal(t, 6, s.Player.Inventory.Count(metal), "metal merges into its stack")
}
