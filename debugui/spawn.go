package debugui

import "github.com/plus3/nightfall/game"

// SpawnDebugUI adds the standard panels for sim to the overlay. frameTime
// reports the last frame's duration in seconds.
func SpawnDebugUI(overlay *Overlay, sim *game.Simulation, frameTime func() float32) {
	stats := NewPerformanceStats(120)
	zombies := NewZombieBrowser(25)
	inspector := NewInspector()

	overlay.Add(func() { stats.Render(sim, frameTime()) })
	overlay.Add(func() { zombies.Render(sim) })
	overlay.Add(func() { inspector.Render(sim) })
}
