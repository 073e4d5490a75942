package game

import (
	"time"

	"github.com/plus3/nightfall/inventory"
)

// Player is the single survivor. Position is the top-left corner of its
// bounding box.
type Player struct {
	Pos       Vec2
	Width     float64
	Height    float64
	Health    float64
	MaxHealth float64
	Ammo      int
	// Direction components are each -1, 0 or 1. Diagonals are not
	// normalized.
	Direction Vec2
	Inventory *inventory.Inventory
	// Weapon indexes State.Weapons.
	Weapon int
}

func (p *Player) Box() Box {
	return Box{X: p.Pos.X, Y: p.Pos.Y, W: p.Width, H: p.Height}
}

func (p *Player) Center() Vec2 {
	return p.Box().Center()
}

type Zombie struct {
	Pos     Vec2
	Width   float64
	Height  float64
	Speed   float64
	Health  float64
	Variant string
	Reward  int
	// Dead is set the moment health reaches zero so later checks in the
	// same tick skip the zombie before its removal is flushed.
	Dead      bool
	LastGroan time.Duration
}

func (z *Zombie) Box() Box {
	return Box{X: z.Pos.X, Y: z.Pos.Y, W: z.Width, H: z.Height}
}

// Bullet is a point projectile. Pos is its centre.
type Bullet struct {
	Pos      Vec2
	Vel      Vec2
	Radius   float64
	Damage   float64
	Traveled float64
	Range    float64
}

// Box is the square of side 2*Radius centred on the bullet.
func (b *Bullet) Box() Box {
	return Box{X: b.Pos.X - b.Radius, Y: b.Pos.Y - b.Radius, W: 2 * b.Radius, H: 2 * b.Radius}
}

type Building struct {
	Kind      string
	Pos       Vec2
	Width     float64
	Height    float64
	Health    float64
	MaxHealth float64
}

func (b *Building) Box() Box {
	return Box{X: b.Pos.X, Y: b.Pos.Y, W: b.Width, H: b.Height}
}

// DroppedItem is an item lying on the ground waiting to be picked up.
type DroppedItem struct {
	Pos    Vec2
	Width  float64
	Height float64
	Item   inventory.ItemID
}

func (d *DroppedItem) Box() Box {
	return Box{X: d.Pos.X, Y: d.Pos.Y, W: d.Width, H: d.Height}
}

// Weapon is a resolved weapon table entry.
type Weapon struct {
	Key      string
	Name     string
	Damage   float64
	AmmoCost int
	Cooldown time.Duration
	Range    float64
	Pellets  int
	Spread   float64
}
