package game

import (
	"testing"

	"github.com/plus3/nightfall/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateZombieVariants(t *testing.T) {
	sim := newTestSim(t, nil)
	s := sim.state

	tests := []struct {
		variant string
		speed   float64
		health  float64
		size    float64
		reward  int
	}{
		{"normal", 1.2, 50, 24, 10},
		{"fast", 1.2 * 1.8, 30, 24, 15},
		{"tank", 1.2 * 0.7, 120, 32, 25},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			h, ok := s.CreateZombie(Vec2{X: 10, Y: 20}, tt.variant)
			require.True(t, ok)
			z := s.Zombies.Get(h)
			require.NotNil(t, z)
			assert.InDelta(t, tt.speed, z.Speed, 1e-9)
			assert.Equal(t, tt.health, z.Health)
			assert.Equal(t, tt.size, z.Width)
			assert.Equal(t, tt.size, z.Height)
			assert.Equal(t, tt.reward, z.Reward)
			assert.Equal(t, Vec2{X: 10, Y: 20}, z.Pos)
		})
	}

	_, ok := s.CreateZombie(Vec2{}, "ghoul")
	assert.False(t, ok)
}

func TestCreateBulletScalesDirection(t *testing.T) {
	sim := newTestSim(t, nil)
	s := sim.state

	h := s.CreateBullet(Vec2{X: 1, Y: 1}, Vec2{X: 0, Y: -1}, 25, 400)
	b := s.Bullets.Get(h)
	require.NotNil(t, b)
	assert.Equal(t, Vec2{X: 0, Y: -8}, b.Vel)
	assert.Equal(t, 3.0, b.Radius)
	assert.Equal(t, Box{X: -2, Y: -2, W: 6, H: 6}, b.Box())
}

func TestStartingLayout(t *testing.T) {
	sim := newTestSim(t, nil)
	s := sim.state

	assert.Equal(t, Vec2{X: 468, Y: 468}, s.Player.Pos)
	assert.Equal(t, 100.0, s.Player.Health)
	assert.Equal(t, 20, s.Player.Ammo)
	assert.Equal(t, "pistol", s.CurrentWeapon().Key)

	require.Len(t, s.Buildings, 1)
	assert.Equal(t, "safehouse", s.Buildings[0].Kind)
	assert.Equal(t, Vec2{X: 448, Y: 448}, s.Buildings[0].Pos)
	assert.Equal(t, 200.0, s.Buildings[0].MaxHealth)

	assert.Equal(t, []StackView{
		{Item: "ammo", Name: "Ammo", Amount: 10},
		{Item: "medkit", Name: "Medkit", Amount: 2},
		{Item: "metal", Name: "Metal Scrap", Amount: 5},
		{Item: "cloth", Name: "Cloth", Amount: 3},
	}, s.Stacks())
}

func TestRollVariantRespectsUnlockDay(t *testing.T) {
	sim := newTestSim(t, func(cfg *config.Config) {
		cfg.Zombies.Variants[1].Chance = 1
		cfg.Zombies.Variants[2].Chance = 1
	})
	s := sim.state

	for day, want := range map[int]string{1: "normal", 3: "normal", 4: "fast", 5: "fast", 6: "tank"} {
		s.Clock.Day = day
		assert.Equal(t, want, s.RollVariant(), "day %d", day)
	}
}

func TestSpawnZombieAtBoundary(t *testing.T) {
	sim := newTestSim(t, nil)
	s := sim.state
	w, h := s.Config.Map.PixelWidth(), s.Config.Map.PixelHeight()

	for range 200 {
		handle := s.SpawnZombieAtBoundary()
		z := s.Zombies.Get(handle)
		require.NotNil(t, z)
		onVertical := z.Pos.X == 0 || z.Pos.X == w
		onHorizontal := z.Pos.Y == 0 || z.Pos.Y == h
		assert.True(t, onVertical || onHorizontal, "zombie at %v is not on the map edge", z.Pos)
		assert.Equal(t, "normal", z.Variant, "day 1 only spawns normal zombies")
	}
}

func TestDropRandomItem(t *testing.T) {
	sim := newTestSim(t, nil)
	s := sim.state

	for range 50 {
		h, ok := s.DropRandomItem(Vec2{X: 100, Y: 100})
		require.True(t, ok)
		item := s.Items.Get(h)
		require.NotNil(t, item)
		assert.InDelta(t, 100, item.Pos.X, 10)
		assert.InDelta(t, 100, item.Pos.Y, 10)
		assert.Equal(t, 16.0, item.Width)
		assert.NotEqual(t, "shotgun", s.Catalog.Key(item.Item))
	}
}
