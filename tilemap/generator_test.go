package tilemap_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/nightfall/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func assertBorderIsWall(t *testing.T, grid *tilemap.Grid) {
	t.Helper()
	for x := 0; x < grid.Width(); x++ {
		assert.Equal(t, tilemap.Wall, grid.At(x, 0), "top border at x=%d", x)
		assert.Equal(t, tilemap.Wall, grid.At(x, grid.Height()-1), "bottom border at x=%d", x)
	}
	for y := 0; y < grid.Height(); y++ {
		assert.Equal(t, tilemap.Wall, grid.At(0, y), "left border at y=%d", y)
		assert.Equal(t, tilemap.Wall, grid.At(grid.Width()-1, y), "right border at y=%d", y)
	}
}

func TestGenerate(t *testing.T) {
	sizes := []struct {
		width, height int
	}{
		{30, 30},
		{1, 1},
		{2, 5},
		{64, 17},
	}

	for _, size := range sizes {
		for seed := uint64(0); seed < 5; seed++ {
			grid, err := tilemap.Generate(size.width, size.height, 0.07, seeded(seed))
			require.NoError(t, err)
			assert.Equal(t, size.width, grid.Width())
			assert.Equal(t, size.height, grid.Height())
			assertBorderIsWall(t, grid)
		}
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	a, err := tilemap.Generate(30, 30, 0.3, seeded(99))
	require.NoError(t, err)
	b, err := tilemap.Generate(30, 30, 0.3, seeded(99))
	require.NoError(t, err)
	c, err := tilemap.Generate(30, 30, 0.3, seeded(100))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Rows(), b.Rows())
	assert.False(t, a.Equal(c), "different seeds should give different maps")
}

func TestGenerateProbabilityExtremes(t *testing.T) {
	empty, err := tilemap.Generate(10, 8, 0, seeded(1))
	require.NoError(t, err)
	// Only the ring: 2*10 + 2*(8-2)
	assert.Equal(t, 32, empty.Count(tilemap.Wall))

	full, err := tilemap.Generate(10, 8, 1, seeded(1))
	require.NoError(t, err)
	assert.Equal(t, 80, full.Count(tilemap.Wall))
	assert.Equal(t, 0, full.Count(tilemap.Grass))
}

func TestGenerateRejectsBadInput(t *testing.T) {
	_, err := tilemap.Generate(0, 10, 0.1, seeded(1))
	assert.ErrorIs(t, err, tilemap.ErrInvalidSize)

	_, err = tilemap.Generate(10, 10, 1.5, seeded(1))
	assert.Error(t, err)

	_, err = tilemap.Noise(0.6, 0)(10, 10, seeded(1))
	assert.Error(t, err)
}

func TestNoise(t *testing.T) {
	gen := tilemap.Noise(0.6, 0.15)

	a, err := gen(40, 30, seeded(7))
	require.NoError(t, err)
	b, err := gen(40, 30, seeded(7))
	require.NoError(t, err)

	assertBorderIsWall(t, a)
	assert.True(t, a.Equal(b))

	open, err := tilemap.Noise(2, 0.15)(40, 30, seeded(7))
	require.NoError(t, err)
	assert.Equal(t, 2*40+2*28, open.Count(tilemap.Wall), "threshold above 1 leaves only the border")
}

func TestWallAt(t *testing.T) {
	grid, err := tilemap.NewGrid(4, 4)
	require.NoError(t, err)
	grid.Set(2, 1, tilemap.Wall)

	assert.True(t, grid.WallAt(64, 32, 32))
	assert.True(t, grid.WallAt(95.9, 63.9, 32))
	assert.False(t, grid.WallAt(96, 32, 32))
	assert.False(t, grid.WallAt(-1, 32, 32), "outside the grid is never a wall")
	assert.False(t, grid.WallAt(64, 500, 32))

	assert.Equal(t, tilemap.Grass, grid.At(-1, -1))
	grid.Set(99, 99, tilemap.Wall)
	assert.Equal(t, 1, grid.Count(tilemap.Wall))
	assert.Equal(t, "wall", tilemap.Wall.String())
}
