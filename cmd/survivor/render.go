package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/nightfall/game"
	"github.com/plus3/nightfall/tilemap"
)

var (
	grassColor    = color.RGBA{74, 124, 63, 255}
	wallColor     = color.RGBA{90, 90, 90, 255}
	playerColor   = color.RGBA{66, 135, 245, 255}
	bulletColor   = color.RGBA{255, 221, 87, 255}
	itemColor     = color.RGBA{230, 180, 60, 255}
	buildingColor = color.RGBA{140, 100, 60, 255}
	nightShade    = color.RGBA{0, 0, 40, 110}
	pausedShade   = color.RGBA{0, 0, 0, 120}
	barBack       = color.RGBA{100, 100, 100, 255}
	barFront      = color.RGBA{100, 200, 100, 255}
)

var zombieColors = map[string]color.RGBA{
	"normal": {110, 160, 80, 255},
	"fast":   {200, 80, 80, 255},
	"tank":   {90, 40, 120, 255},
}

type renderer struct {
	tileCache *ebiten.Image
	cached    *tilemap.Grid
}

func newRenderer() *renderer {
	return &renderer{}
}

// Draw paints snap. The tile layer is drawn once per grid and reused.
func (r *renderer) Draw(screen *ebiten.Image, snap *game.Snapshot, report *game.Report) {
	r.drawTiles(screen, snap)

	for _, b := range snap.Buildings {
		drawBox(screen, b.Box, buildingColor)
		drawBar(screen, b.Box, b.Health/b.MaxHealth)
	}
	for _, it := range snap.Items {
		drawBox(screen, it.Box, itemColor)
	}
	for _, z := range snap.Zombies {
		c, ok := zombieColors[z.Variant]
		if !ok {
			c = zombieColors["normal"]
		}
		drawBox(screen, z.Box, c)
	}
	for _, b := range snap.Bullets {
		vector.DrawFilledCircle(screen, float32(b.Pos.X), float32(b.Pos.Y), float32(b.Radius), bulletColor, false)
	}
	drawBox(screen, snap.Player.Box, playerColor)
	drawBar(screen, snap.Player.Box, snap.Player.Health/snap.Player.MaxHealth)

	bounds := screen.Bounds()
	if snap.Night() {
		vector.DrawFilledRect(screen, 0, 0, float32(bounds.Dx()), float32(bounds.Dy()), nightShade, false)
	}
	if snap.Status == game.Paused {
		vector.DrawFilledRect(screen, 0, 0, float32(bounds.Dx()), float32(bounds.Dy()), pausedShade, false)
		ebitenutil.DebugPrintAt(screen, "PAUSED (esc to resume)", bounds.Dx()/2-70, bounds.Dy()/2)
	}

	ebitenutil.DebugPrintAt(screen, hud(snap), 8, 8)

	if report != nil {
		vector.DrawFilledRect(screen, 0, 0, float32(bounds.Dx()), float32(bounds.Dy()), pausedShade, false)
		msg := fmt.Sprintf("GAME OVER\nDays survived: %d\nZombies killed: %d\nScore: %d\n\nenter to restart",
			report.Days, report.Kills, report.Score)
		ebitenutil.DebugPrintAt(screen, msg, bounds.Dx()/2-70, bounds.Dy()/2-40)
	}
}

func (r *renderer) drawTiles(screen *ebiten.Image, snap *game.Snapshot) {
	grid := snap.Grid
	if grid == nil {
		return
	}
	if r.tileCache == nil || r.cached != grid {
		size := float32(snap.TileSize)
		r.tileCache = ebiten.NewImage(int(float64(grid.Width())*snap.TileSize), int(float64(grid.Height())*snap.TileSize))
		for y := range grid.Height() {
			for x := range grid.Width() {
				c := grassColor
				if grid.At(x, y) == tilemap.Wall {
					c = wallColor
				}
				vector.DrawFilledRect(r.tileCache, float32(x)*size, float32(y)*size, size, size, c, false)
			}
		}
		r.cached = grid
	}
	screen.DrawImage(r.tileCache, nil)
}

func hud(snap *game.Snapshot) string {
	p := snap.Player
	s := fmt.Sprintf("Day %d (%s)  Score %d  Kills %d\nHealth %.0f/%.0f  Ammo %d/%d  %s [%d]\n",
		snap.Day, snap.Phase, snap.Score, snap.Kills,
		p.Health, p.MaxHealth, p.Ammo, p.MaxAmmo, p.Weapon, p.Slot)
	for _, st := range snap.Inventory {
		s += fmt.Sprintf("%s x%d  ", st.Name, st.Amount)
	}
	return s + fmt.Sprintf("\nTPS %.0f", ebiten.ActualTPS())
}

func drawBox(screen *ebiten.Image, b game.Box, c color.Color) {
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), c, false)
}

func drawBar(screen *ebiten.Image, b game.Box, pct float64) {
	const barHeight = 4
	pct = max(0, min(1, pct))
	x, y, w := float32(b.X), float32(b.Y)-barHeight-2, float32(b.W)
	vector.DrawFilledRect(screen, x, y, w, barHeight, barBack, false)
	vector.DrawFilledRect(screen, x, y, w*float32(pct), barHeight, barFront, false)
}
