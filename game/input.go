package game

// Input adapters call these between ticks. Every action is ignored while
// the game is paused or over.

func (sim *Simulation) act(fn func(*State) bool) bool {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	if sim.state.Status != Running {
		return false
	}
	ok := fn(sim.state)
	sim.collect()
	return ok
}

// SetDirection sets the player's movement intent; see State.SetDirection.
func (sim *Simulation) SetDirection(dx, dy int) {
	sim.act(func(s *State) bool {
		s.SetDirection(dx, dy)
		return true
	})
}

// Fire shoots toward the world point (x, y).
func (sim *Simulation) Fire(x, y float64) bool {
	return sim.act(func(s *State) bool {
		return s.Fire(Vec2{X: x, Y: y})
	})
}

func (sim *Simulation) Reload() bool {
	return sim.act((*State).Reload)
}

func (sim *Simulation) UseMedkit() bool {
	return sim.act((*State).UseMedkit)
}

// SwitchWeapon equips the weapon in 1-based slot.
func (sim *Simulation) SwitchWeapon(slot int) bool {
	return sim.act(func(s *State) bool {
		return s.SwitchWeapon(slot)
	})
}

// Craft runs a recipe. The error says why a craft was refused; the game
// itself carries on either way.
func (sim *Simulation) Craft(recipeID string) error {
	err := ErrNotRunning
	sim.act(func(s *State) bool {
		err = s.Craft(recipeID)
		if err != nil {
			sim.logger.Debug("craft refused", "recipe", recipeID, "err", err)
			return false
		}
		sim.logger.Debug("crafted", "recipe", recipeID)
		return true
	})
	return err
}
