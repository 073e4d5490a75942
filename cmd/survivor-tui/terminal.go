package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/nightfall/game"
	"github.com/plus3/nightfall/sfx"
	"github.com/plus3/nightfall/tilemap"
)

// cellWidth is the number of terminal columns per tile, which keeps tiles
// roughly square.
const cellWidth = 2

var (
	grassStyle    = tcell.StyleDefault.Background(tcell.ColorDarkGreen)
	wallStyle     = tcell.StyleDefault.Background(tcell.ColorGray)
	playerStyle   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	bulletStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	itemStyle     = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	buildingStyle = tcell.StyleDefault.Background(tcell.ColorSaddleBrown)
	hudStyle      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

var zombieStyles = map[string]tcell.Style{
	"normal": tcell.StyleDefault.Foreground(tcell.ColorLime),
	"fast":   tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	"tank":   tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true),
}

type terminal struct {
	screen tcell.Screen
	sim    *game.Simulation
	sound  *sfx.Player
	logger *slog.Logger

	dx, dy   int
	heldTill time.Time
	message  string
}

func newTerminal(screen tcell.Screen, sim *game.Simulation, sound *sfx.Player, logger *slog.Logger) *terminal {
	return &terminal{screen: screen, sim: sim, sound: sound, logger: logger}
}

func (t *terminal) run(tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !t.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			if now.After(t.heldTill) {
				t.sim.SetDirection(0, 0)
			}
			t.sim.Advance(now.Sub(last))
			last = now

			events := t.sim.DrainEvents()
			if t.sound != nil {
				if _, err := t.sound.Handle(events); err != nil {
					t.logger.Debug("sound cue failed", "err", err)
				}
			}
			snap := t.sim.Snapshot()
			draw(t.screen, &snap, t.message)
			t.screen.Show()
		}
	}
}

func (t *terminal) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return false
		case tcell.KeyEscape:
			if t.sim.Status() == game.Paused {
				t.sim.Resume()
			} else {
				t.sim.Pause()
			}
		case tcell.KeyEnter:
			if t.sim.Status() == game.GameOver {
				_ = t.sim.Reset()
			}
		case tcell.KeyUp:
			t.move(0, -1)
		case tcell.KeyDown:
			t.move(0, 1)
		case tcell.KeyLeft:
			t.move(-1, 0)
		case tcell.KeyRight:
			t.move(1, 0)
		case tcell.KeyRune:
			return t.handleRune(ev.Rune())
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			wx, wy := cellToWorld(x, y, t.sim.Config().Map.TileSize)
			t.sim.Fire(wx, wy)
		}

	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *terminal) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'w':
		t.move(0, -1)
	case 's':
		t.move(0, 1)
	case 'a':
		t.move(-1, 0)
	case 'd':
		t.move(1, 0)
	case 'r', ' ':
		t.sim.Reload()
	case 'm':
		t.sim.UseMedkit()
	case 'f':
		// Autofire at the nearest zombie, there is no cursor to aim with.
		snap := t.sim.Snapshot()
		if z, ok := snap.NearestZombie(snap.Player.Box.Center()); ok {
			c := z.Box.Center()
			t.sim.Fire(c.X, c.Y)
		}
	case '1', '2', '3':
		t.sim.SwitchWeapon(int(r - '0'))
	case 'z', 'x', 'c':
		recipes := t.sim.Recipes()
		i := map[rune]int{'z': 0, 'x': 1, 'c': 2}[r]
		if i < len(recipes) {
			if err := t.sim.Craft(recipes[i]); err != nil {
				t.message = err.Error()
			} else {
				t.message = "crafted " + recipes[i]
			}
		}
	}
	return true
}

func (t *terminal) move(dx, dy int) {
	if time.Now().After(t.heldTill) {
		t.dx, t.dy = 0, 0
	}
	if dx != 0 {
		t.dx = dx
	}
	if dy != 0 {
		t.dy = dy
	}
	t.heldTill = time.Now().Add(holdFor)
	t.sim.SetDirection(t.dx, t.dy)
}

func cellToWorld(x, y int, tileSize float64) (float64, float64) {
	return (float64(x)/cellWidth + 0.5) * tileSize, (float64(y) + 0.5) * tileSize
}

func worldToCell(x, y, tileSize float64) (int, int) {
	return int(x/tileSize) * cellWidth, int(y / tileSize)
}

// draw paints snap onto screen, one tile per cellWidth columns, with the
// HUD below the map.
func draw(screen tcell.Screen, snap *game.Snapshot, message string) {
	screen.Clear()

	grid := snap.Grid
	ts := snap.TileSize
	for y := range grid.Height() {
		for x := range grid.Width() {
			style := grassStyle
			if grid.At(x, y) == tilemap.Wall {
				style = wallStyle
			}
			for i := range cellWidth {
				screen.SetContent(x*cellWidth+i, y, ' ', nil, style)
			}
		}
	}

	for _, b := range snap.Buildings {
		fillBox(screen, b.Box, ts, ' ', buildingStyle)
	}
	for _, it := range snap.Items {
		put(screen, it.Box.Center(), ts, '*', itemStyle)
	}
	for _, z := range snap.Zombies {
		style, ok := zombieStyles[z.Variant]
		if !ok {
			style = zombieStyles["normal"]
		}
		put(screen, z.Box.Center(), ts, 'Z', style)
	}
	for _, b := range snap.Bullets {
		put(screen, b.Pos, ts, '.', bulletStyle)
	}
	put(screen, snap.Player.Box.Center(), ts, '@', playerStyle)

	p := snap.Player
	lines := []string{
		fmt.Sprintf("Day %d (%s)  Score %d  Kills %d  [%s]", snap.Day, snap.Phase, snap.Score, snap.Kills, snap.Status),
		fmt.Sprintf("Health %.0f/%.0f  Ammo %d/%d  %s [%d]", p.Health, p.MaxHealth, p.Ammo, p.MaxAmmo, p.Weapon, p.Slot),
		inventoryLine(snap.Inventory),
		message,
	}
	if snap.Status == game.GameOver {
		lines = append(lines, "GAME OVER - enter to restart, q to quit")
	}
	for i, line := range lines {
		printAt(screen, 0, grid.Height()+1+i, line, hudStyle)
	}
}

func inventoryLine(stacks []game.StackView) string {
	s := ""
	for _, st := range stacks {
		s += fmt.Sprintf("%s x%d  ", st.Name, st.Amount)
	}
	return s
}

func put(screen tcell.Screen, pos game.Vec2, tileSize float64, r rune, style tcell.Style) {
	x, y := worldToCell(pos.X, pos.Y, tileSize)
	_, _, bg, _ := screen.GetContent(x, y)
	_, bgColor, _ := bg.Decompose()
	screen.SetContent(x, y, r, nil, style.Background(bgColor))
}

func fillBox(screen tcell.Screen, b game.Box, tileSize float64, r rune, style tcell.Style) {
	x0, y0 := worldToCell(b.X, b.Y, tileSize)
	x1, y1 := worldToCell(b.X+b.W-1, b.Y+b.H-1, tileSize)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1+cellWidth-1; x++ {
			screen.SetContent(x, y, r, nil, style)
		}
	}
}

func printAt(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
