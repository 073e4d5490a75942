package game

import (
	"github.com/plus3/nightfall/config"
	"github.com/plus3/nightfall/engine"
	"github.com/plus3/nightfall/inventory"
)

// CreateZombie adds a zombie of the named variant at pos. It returns false
// if the variant is unknown.
func (s *State) CreateZombie(pos Vec2, variant string) (engine.Handle, bool) {
	vc, ok := s.Config.Variant(variant)
	if !ok {
		return 0, false
	}
	h := s.Zombies.Spawn(Zombie{
		Pos:       pos,
		Width:     vc.Width,
		Height:    vc.Height,
		Speed:     s.Config.Zombies.BaseSpeed * vc.SpeedMultiplier,
		Health:    vc.Health,
		Variant:   vc.Name,
		Reward:    vc.Reward,
		LastGroan: -s.Config.Zombies.GroanCooldown,
	})
	return h, true
}

// CreateBullet adds a bullet at origin moving along direction scaled by the
// bullet speed. direction is used as given, so a non-unit direction makes
// a faster or slower bullet.
func (s *State) CreateBullet(origin, direction Vec2, damage, maxRange float64) engine.Handle {
	return s.Bullets.Spawn(Bullet{
		Pos:    origin,
		Vel:    direction.Mul(s.Config.Combat.BulletSpeed),
		Radius: s.Config.Combat.BulletRadius,
		Damage: damage,
		Range:  maxRange,
	})
}

// CreateBuilding places a building of the given kind with its top-left
// corner at pos.
func (s *State) CreateBuilding(pos Vec2, kind string) (Building, bool) {
	bc, ok := s.Config.Buildings[kind]
	if !ok {
		return Building{}, false
	}
	b := Building{
		Kind:      kind,
		Pos:       pos,
		Width:     bc.Width,
		Height:    bc.Height,
		Health:    bc.Health,
		MaxHealth: bc.Health,
	}
	s.Buildings = append(s.Buildings, b)
	return b, true
}

// CreateItem drops one unit of item on the ground at pos.
func (s *State) CreateItem(pos Vec2, item inventory.ItemID) engine.Handle {
	size := s.Config.Combat.DropSize
	return s.Items.Spawn(DroppedItem{Pos: pos, Width: size, Height: size, Item: item})
}

// DropRandomItem drops a random droppable item near pos.
func (s *State) DropRandomItem(pos Vec2) (engine.Handle, bool) {
	droppable := s.Catalog.Droppable()
	if len(droppable) == 0 {
		return 0, false
	}
	item := droppable[s.Rand.IntN(len(droppable))]
	jitter := s.Config.Combat.DropJitter
	at := Vec2{
		X: pos.X + s.Rand.Float64()*2*jitter - jitter,
		Y: pos.Y + s.Rand.Float64()*2*jitter - jitter,
	}
	h := s.CreateItem(at, item)
	s.emit(EventDrop, 1, s.Catalog.Key(item), at)
	return h, true
}

// RollVariant picks the variant for a new zombie on the current day.
func (s *State) RollVariant() string {
	variants := s.Config.Zombies.Variants
	pick := variants[0].Name
	for _, v := range variants[1:] {
		if rollsVariant(v, s.Clock.Day) && s.Rand.Float64() < v.Chance {
			pick = v.Name
		}
	}
	return pick
}

func rollsVariant(v config.VariantConfig, day int) bool {
	return day > v.UnlockAfterDay
}

// SpawnZombieAtBoundary adds a zombie of a rolled variant on a random edge
// of the map.
func (s *State) SpawnZombieAtBoundary() engine.Handle {
	variant := s.RollVariant()

	w := s.Config.Map.PixelWidth()
	h := s.Config.Map.PixelHeight()
	var pos Vec2
	if s.Rand.Float64() < 0.5 {
		pos.X = edge(s.Rand.Float64(), w)
		pos.Y = s.Rand.Float64() * h
	} else {
		pos.X = s.Rand.Float64() * w
		pos.Y = edge(s.Rand.Float64(), h)
	}

	handle, _ := s.CreateZombie(pos, variant)
	return handle
}

func edge(roll, far float64) float64 {
	if roll < 0.5 {
		return 0
	}
	return far
}
