package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/nightfall/config"
	"github.com/plus3/nightfall/game"
	"github.com/plus3/nightfall/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellMapping(t *testing.T) {
	x, y := worldToCell(100, 70, 32)
	assert.Equal(t, 6, x)
	assert.Equal(t, 2, y)

	wx, wy := cellToWorld(6, 2, 32)
	assert.Equal(t, 112.0, wx)
	assert.Equal(t, 80.0, wy)

	cx, cy := worldToCell(wx, wy, 32)
	assert.Equal(t, 6, cx)
	assert.Equal(t, 2, cy)
}

func TestDraw(t *testing.T) {
	cfg := config.Default()
	sim, err := game.New(cfg, game.WithSeed(7), game.WithMapGenerator(tilemap.Uniform(0)))
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 40)

	snap := sim.Snapshot()
	draw(screen, &snap, "hello")

	at := func(x, y int) rune {
		r, _, _, _ := screen.GetContent(x, y)
		return r
	}

	px, py := worldToCell(snap.Player.Box.Center().X, snap.Player.Box.Center().Y, snap.TileSize)
	assert.Equal(t, '@', at(px, py))

	_, _, style, _ := screen.GetContent(0, 0)
	_, bg, _ := style.Decompose()
	assert.Equal(t, tcell.ColorGray, bg, "border is wall")

	hudRow := snap.Grid.Height() + 1
	assert.Equal(t, 'D', at(0, hudRow))
	assert.Equal(t, 'h', at(0, hudRow+3))
}
