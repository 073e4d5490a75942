package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/nightfall/game"
)

// Inspector shows the player, clock and inventory, with buttons to drive
// the session by hand.
type Inspector struct {
	lastCraft string
}

func NewInspector() *Inspector {
	return &Inspector{}
}

func (in *Inspector) Render(sim *game.Simulation) {
	if !imgui.BeginV("Survivor", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := sim.Snapshot()
	p := snap.Player

	imgui.Text(fmt.Sprintf("Session: %s", snap.Session))
	imgui.Text(fmt.Sprintf("Status: %s", snap.Status))
	imgui.Text(fmt.Sprintf("Day %d (%s) %.0f%%", snap.Day, snap.Phase, snap.PhaseProgress*100))
	imgui.Text(fmt.Sprintf("Score: %d  Kills: %d", snap.Score, snap.Kills))

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Health: %.1f / %.0f", p.Health, p.MaxHealth))
	imgui.Text(fmt.Sprintf("Ammo: %d / %d", p.Ammo, p.MaxAmmo))
	imgui.Text(fmt.Sprintf("Weapon: %s (slot %d)", p.Weapon, p.Slot))
	imgui.Text(fmt.Sprintf("Position: %.0f, %.0f", p.Box.X, p.Box.Y))

	switch snap.Status {
	case game.Running:
		if imgui.Button("Pause") {
			sim.Pause()
		}
	case game.Paused:
		if imgui.Button("Resume") {
			sim.Resume()
		}
	}
	imgui.SameLine()
	if imgui.Button("Reset") {
		_ = sim.Reset()
	}

	if imgui.TreeNodeStr("Inventory") {
		for _, s := range snap.Inventory {
			imgui.BulletText(fmt.Sprintf("%s x%d", s.Name, s.Amount))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Crafting") {
		for _, id := range sim.Recipes() {
			if imgui.Button(id) {
				if err := sim.Craft(id); err != nil {
					in.lastCraft = err.Error()
				} else {
					in.lastCraft = "crafted " + id
				}
			}
		}
		if in.lastCraft != "" {
			imgui.Text(in.lastCraft)
		}
		imgui.TreePop()
	}

	imgui.End()
}
