package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/nightfall/debugui"
	debugui_ebiten "github.com/plus3/nightfall/debugui/ebiten"
	"github.com/plus3/nightfall/engine"
	"github.com/plus3/nightfall/game"
)

type debugOverlay struct {
	backend   *debugui_ebiten.ImguiBackend
	overlay   *debugui.Overlay
	scheduler *engine.Scheduler[debugui.Overlay]
}

// Game adapts a Simulation to ebiten.Game.
type Game struct {
	sim    *game.Simulation
	width  int
	height int
	last   time.Time
	snap   game.Snapshot
	report *game.Report

	renderer *renderer
	debug    *debugOverlay
}

func newGame(sim *game.Simulation, width, height int) *Game {
	return &Game{
		sim:      sim,
		width:    width,
		height:   height,
		snap:     sim.Snapshot(),
		renderer: newRenderer(),
	}
}

var weaponKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}

var craftKeys = []ebiten.Key{ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if g.debug != nil {
		g.debug.backend.BeginFrame()
		g.debug.scheduler.Once(1.0 / float64(ebiten.TPS()))
		g.debug.backend.EndFrame()
	}

	g.handleInput()

	now := time.Now()
	if !g.last.IsZero() {
		g.sim.Advance(now.Sub(g.last))
	}
	g.last = now

	g.sim.DrainEvents()
	g.snap = g.sim.Snapshot()
	if g.snap.Status == game.GameOver && g.report == nil {
		r := g.sim.Report()
		g.report = &r
	}
	return nil
}

func (g *Game) handleInput() {
	input := debugui.ImguiInputState{}
	if g.debug != nil {
		input = g.debug.overlay.InputState
	}

	if !input.WantCaptureKeyboard {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			if g.sim.Status() == game.Paused {
				g.sim.Resume()
			} else {
				g.sim.Pause()
			}
		}
		if g.sim.Status() == game.GameOver && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			if err := g.sim.Reset(); err == nil {
				g.report = nil
			}
		}

		dx, dy := 0, 0
		if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
			dy--
		}
		if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
			dy++
		}
		if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
			dx--
		}
		if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
			dx++
		}
		g.sim.SetDirection(dx, dy)

		if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.sim.Reload()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyM) {
			g.sim.UseMedkit()
		}
		for i, key := range weaponKeys {
			if inpututil.IsKeyJustPressed(key) {
				g.sim.SwitchWeapon(i + 1)
			}
		}
		recipes := g.sim.Recipes()
		for i, key := range craftKeys {
			if i < len(recipes) && inpututil.IsKeyJustPressed(key) {
				_ = g.sim.Craft(recipes[i])
			}
		}
	}

	if !input.WantCaptureMouse && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		g.sim.Fire(float64(mx), float64(my))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, &g.snap, g.report)

	if g.debug != nil {
		g.debug.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.debug != nil {
		g.debug.backend.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.width, g.height
}
