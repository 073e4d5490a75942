package game

import "fmt"

// Player actions. Each returns whether it took effect; a refused action
// leaves the state untouched.

// SetDirection sets the movement intent. Each component is reduced to its
// sign.
func (s *State) SetDirection(dx, dy int) {
	s.Player.Direction = Vec2{X: float64(sign(dx)), Y: float64(sign(dy))}
}

// Fire shoots the equipped weapon from the player's centre toward target.
// It is refused while the weapon is cooling down, when ammo is short, or
// when target is exactly the player's centre.
func (s *State) Fire(target Vec2) bool {
	w := s.CurrentWeapon()
	now := s.Clock.Total
	if s.hasShot && now-s.lastShot < w.Cooldown {
		return false
	}
	if s.Player.Ammo < w.AmmoCost {
		return false
	}
	origin := s.Player.Center()
	dir := target.Sub(origin).Normalized()
	if dir == (Vec2{}) {
		return false
	}

	s.Player.Ammo -= w.AmmoCost
	s.lastShot = now
	s.hasShot = true

	if w.Pellets > 0 {
		for range w.Pellets {
			pellet := Vec2{
				X: dir.X + s.Rand.Float64()*w.Spread*2 - w.Spread,
				Y: dir.Y + s.Rand.Float64()*w.Spread*2 - w.Spread,
			}
			s.CreateBullet(origin, pellet, w.Damage, w.Range)
		}
	} else {
		s.CreateBullet(origin, dir, w.Damage, w.Range)
	}
	s.emit(EventShot, float64(max(w.Pellets, 1)), w.Key, origin)
	return true
}

// Reload tops the player's ammo back up to the starting amount from the
// inventory's ammo stack. Reloading is not possible at night.
func (s *State) Reload() bool {
	if s.Clock.Night() {
		return false
	}
	ammoItem, ok := s.Catalog.Lookup(s.Config.Player.AmmoItem)
	if !ok {
		return false
	}
	stack, ok := s.Player.Inventory.Find(ammoItem)
	if !ok {
		return false
	}
	needed := s.Config.Player.StartingAmmo - s.Player.Ammo
	if needed <= 0 {
		return false
	}

	taken, err := s.Player.Inventory.Remove(ammoItem, min(needed, stack.Amount))
	if err != nil {
		return false
	}
	s.Player.Ammo += taken
	s.emit(EventReload, float64(taken), s.Config.Player.AmmoItem, s.Player.Center())
	return true
}

// UseMedkit consumes one medkit and heals by its amount, up to max health.
func (s *State) UseMedkit() bool {
	medkit, ok := s.Catalog.Lookup(s.Config.Player.MedkitItem)
	if !ok {
		return false
	}
	if _, ok := s.Player.Inventory.Find(medkit); !ok {
		return false
	}
	def, _ := s.Catalog.Def(medkit)

	before := s.Player.Health
	s.Player.Health = min(s.Player.Health+def.Heal, s.Player.MaxHealth)
	if _, err := s.Player.Inventory.Remove(medkit, 1); err != nil {
		return false
	}
	s.emit(EventHeal, s.Player.Health-before, def.Key, s.Player.Center())
	return true
}

// SwitchWeapon equips the weapon in the given 1-based slot.
func (s *State) SwitchWeapon(slot int) bool {
	if slot < 1 || slot > len(s.Weapons) {
		return false
	}
	s.Player.Weapon = slot - 1
	return true
}

// Craft runs a recipe against the player's inventory. Nothing is consumed
// unless the craft succeeds.
func (s *State) Craft(recipeID string) error {
	recipe, err := s.Recipes.Lookup(recipeID)
	if err != nil {
		return err
	}
	if err := s.Player.Inventory.Craft(recipe); err != nil {
		return err
	}
	s.emit(EventCraft, float64(recipe.Result.Amount), recipe.ID, s.Player.Center())
	return nil
}

// CanCraft reports whether the player holds everything recipeID needs.
func (s *State) CanCraft(recipeID string) (bool, error) {
	recipe, err := s.Recipes.Lookup(recipeID)
	if err != nil {
		return false, fmt.Errorf("can craft: %w", err)
	}
	return s.Player.Inventory.CanCraft(recipe), nil
}

// Stacks returns the player's inventory with item keys resolved.
func (s *State) Stacks() []StackView {
	stacks := s.Player.Inventory.Stacks()
	out := make([]StackView, 0, len(stacks))
	for _, st := range stacks {
		def, _ := s.Catalog.Def(st.Item)
		out = append(out, StackView{Item: def.Key, Name: def.Name, Amount: st.Amount})
	}
	return out
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
