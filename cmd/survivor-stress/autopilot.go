package main

import (
	"github.com/plus3/nightfall/game"
)

// autopilot plays well enough to keep a session going for a while: it
// backs away from close zombies, shoots the nearest one, and keeps its
// ammo and health up.
type autopilot struct {
	fleeDistance float64
	lowAmmo      int
	lowHealth    float64
}

func newAutopilot() *autopilot {
	return &autopilot{
		fleeDistance: 96,
		lowAmmo:      5,
		lowHealth:    50,
	}
}

type decision struct {
	dx, dy  int
	fire    bool
	target  game.Vec2
	reload  bool
	medkit  bool
	craftID string
}

func (a *autopilot) Drive(sim *game.Simulation) {
	snap := sim.Snapshot()
	d := a.decide(&snap, sim.Recipes())

	sim.SetDirection(d.dx, d.dy)
	if d.medkit {
		sim.UseMedkit()
	}
	if d.reload {
		sim.Reload()
	}
	if d.craftID != "" {
		_ = sim.Craft(d.craftID)
	}
	if d.fire {
		sim.Fire(d.target.X, d.target.Y)
	}
}

func (a *autopilot) decide(snap *game.Snapshot, recipes []string) decision {
	var d decision
	p := snap.Player
	center := p.Box.Center()

	if z, ok := snap.NearestZombie(center); ok {
		target := z.Box.Center()
		d.fire = p.Ammo > 0
		d.target = target
		if target.DistanceTo(center) < a.fleeDistance {
			d.dx = -sign(target.X - center.X)
			d.dy = -sign(target.Y - center.Y)
		}
	}

	if p.Ammo <= a.lowAmmo && !snap.Night() {
		d.reload = true
	}
	if p.Health < a.lowHealth {
		d.medkit = true
	}
	if p.Ammo <= a.lowAmmo && hasRecipe(recipes, "pistol_ammo") {
		d.craftID = "pistol_ammo"
	}
	return d
}

func hasRecipe(recipes []string, id string) bool {
	for _, r := range recipes {
		if r == id {
			return true
		}
	}
	return false
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
