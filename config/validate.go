package config

import (
	"errors"
	"fmt"
)

const (
	GeneratorUniform = "uniform"
	GeneratorNoise   = "noise"
)

// MaxWeaponSlots is how many weapons the number keys can select.
const MaxWeaponSlots = 9

var ErrInvalid = errors.New("config: invalid")

// Validate reports every problem with the tables at once. Each problem
// wraps ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	probability := func(name string, p float64) {
		if p < 0 || p > 1 {
			fail("%s %v outside [0,1]", name, p)
		}
	}

	if c.Tick <= 0 {
		fail("tick must be positive")
	}
	if c.MaxCatchUpTicks < 1 {
		fail("max_catch_up_ticks must be at least 1")
	}

	if c.Map.TileSize <= 0 {
		fail("map.tile_size must be positive")
	}
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		fail("map size %dx%d must be positive", c.Map.Width, c.Map.Height)
	}
	probability("map.wall_probability", c.Map.WallProbability)
	switch c.Map.Generator {
	case GeneratorUniform:
	case GeneratorNoise:
		if c.Map.NoiseScale <= 0 {
			fail("map.noise_scale must be positive")
		}
	default:
		fail("map.generator %q is not %q or %q", c.Map.Generator, GeneratorUniform, GeneratorNoise)
	}

	items := make(map[string]bool, len(c.Items))
	for _, it := range c.Items {
		if it.Key == "" {
			fail("item with empty key")
			continue
		}
		if items[it.Key] {
			fail("duplicate item %q", it.Key)
		}
		items[it.Key] = true
		switch it.Kind {
		case "resource", "consumable", "weapon":
		default:
			fail("item %q has unknown kind %q", it.Key, it.Kind)
		}
	}
	stack := func(where string, s StackConfig) {
		if !items[s.Item] {
			fail("%s references unknown item %q", where, s.Item)
		}
		if s.Amount <= 0 {
			fail("%s amount for %q must be positive", where, s.Item)
		}
	}

	p := c.Player
	if p.Width <= 0 || p.Height <= 0 {
		fail("player size must be positive")
	}
	if p.MaxHealth <= 0 {
		fail("player.max_health must be positive")
	}
	if p.StartingAmmo < 0 {
		fail("player.starting_ammo must not be negative")
	}
	if p.InventorySlots <= 0 {
		fail("player.inventory_slots must be positive")
	}
	if !items[p.AmmoItem] {
		fail("player.ammo_item %q is not an item", p.AmmoItem)
	}
	if !items[p.MedkitItem] {
		fail("player.medkit_item %q is not an item", p.MedkitItem)
	}

	if c.DayNight.DayLength <= 0 {
		fail("day_night.day_length must be positive")
	}
	if c.DayNight.NightBurstDayDivisor <= 0 {
		fail("day_night.night_burst_day_divisor must be positive")
	}
	if c.DayNight.NightBurstBase < 0 {
		fail("day_night.night_burst_base must not be negative")
	}

	probability("zombies.spawn_rate_day", c.Zombies.SpawnRateDay)
	probability("zombies.spawn_rate_night", c.Zombies.SpawnRateNight)
	probability("zombies.groan_chance", c.Zombies.GroanChance)
	if len(c.Zombies.Variants) == 0 {
		fail("zombies.variants is empty")
	}
	variants := make(map[string]bool, len(c.Zombies.Variants))
	for _, v := range c.Zombies.Variants {
		if variants[v.Name] {
			fail("duplicate zombie variant %q", v.Name)
		}
		variants[v.Name] = true
		if v.Health <= 0 || v.Width <= 0 || v.Height <= 0 {
			fail("zombie variant %q needs positive health and size", v.Name)
		}
		probability(fmt.Sprintf("zombie variant %q chance", v.Name), v.Chance)
	}

	if c.Combat.BulletSpeed <= 0 {
		fail("combat.bullet_speed must be positive")
	}
	probability("combat.drop_chance", c.Combat.DropChance)

	if len(c.Weapons) == 0 {
		fail("no weapons")
	}
	if len(c.Weapons) > MaxWeaponSlots {
		fail("%d weapons exceed %d slots", len(c.Weapons), MaxWeaponSlots)
	}
	weapons := make(map[string]bool, len(c.Weapons))
	for _, w := range c.Weapons {
		if weapons[w.Key] {
			fail("duplicate weapon %q", w.Key)
		}
		weapons[w.Key] = true
		if w.AmmoCost < 0 || w.Range <= 0 || w.Cooldown < 0 || w.Pellets < 0 {
			fail("weapon %q has negative cost, cooldown or pellets, or no range", w.Key)
		}
	}
	if !weapons[p.StartingWeapon] {
		fail("player.starting_weapon %q is not a weapon", p.StartingWeapon)
	}

	recipes := make(map[string]bool, len(c.Recipes))
	for _, r := range c.Recipes {
		if recipes[r.ID] {
			fail("duplicate recipe %q", r.ID)
		}
		recipes[r.ID] = true
		stack(fmt.Sprintf("recipe %q result", r.ID), r.Result)
		listed := make(map[string]bool, len(r.Requirements))
		for _, req := range r.Requirements {
			stack(fmt.Sprintf("recipe %q requirement", r.ID), req)
			if listed[req.Item] {
				fail("recipe %q lists %q twice", r.ID, req.Item)
			}
			listed[req.Item] = true
		}
	}
	for _, s := range c.StartingInventory {
		stack("starting_inventory", s)
	}

	for key, b := range c.Buildings {
		if b.Width <= 0 || b.Height <= 0 || b.Health <= 0 {
			fail("building %q needs positive size and health", key)
		}
	}
	if c.StartingBuilding != "" {
		if _, ok := c.Buildings[c.StartingBuilding]; !ok {
			fail("starting_building %q is not a building", c.StartingBuilding)
		}
	}

	return errors.Join(errs...)
}
