package game

import (
	"math"
	"time"

	"github.com/plus3/nightfall/tilemap"
)

// Snapshot is a read-only copy of one tick's state for renderers and
// traces. The grid never changes during a session, so it is shared rather
// than copied and left out of encoded snapshots.
type Snapshot struct {
	Session string `msgpack:"session"`
	Tick    uint64 `msgpack:"tick"`
	Status  Status `msgpack:"status"`

	Day           int           `msgpack:"day"`
	Phase         Phase         `msgpack:"phase"`
	PhaseElapsed  time.Duration `msgpack:"phase_elapsed"`
	PhaseProgress float64       `msgpack:"phase_progress"`
	SimTime       time.Duration `msgpack:"sim_time"`

	Score int `msgpack:"score"`
	Kills int `msgpack:"kills"`

	Player    PlayerView     `msgpack:"player"`
	Inventory []StackView    `msgpack:"inventory"`
	Zombies   []ZombieView   `msgpack:"zombies"`
	Bullets   []BulletView   `msgpack:"bullets"`
	Items     []ItemView     `msgpack:"items"`
	Buildings []BuildingView `msgpack:"buildings"`

	TileSize float64       `msgpack:"tile_size"`
	Grid     *tilemap.Grid `msgpack:"-"`
}

type PlayerView struct {
	Box       Box     `msgpack:"box"`
	Health    float64 `msgpack:"health"`
	MaxHealth float64 `msgpack:"max_health"`
	Ammo      int     `msgpack:"ammo"`
	MaxAmmo   int     `msgpack:"max_ammo"`
	Weapon    string  `msgpack:"weapon"`
	Slot      int     `msgpack:"slot"`
}

type StackView struct {
	Item   string `msgpack:"item"`
	Name   string `msgpack:"name"`
	Amount int    `msgpack:"amount"`
}

type ZombieView struct {
	Box     Box     `msgpack:"box"`
	Health  float64 `msgpack:"health"`
	Variant string  `msgpack:"variant"`
}

type BulletView struct {
	Pos    Vec2    `msgpack:"pos"`
	Radius float64 `msgpack:"radius"`
}

type ItemView struct {
	Box  Box    `msgpack:"box"`
	Item string `msgpack:"item"`
}

type BuildingView struct {
	Box       Box     `msgpack:"box"`
	Kind      string  `msgpack:"kind"`
	Health    float64 `msgpack:"health"`
	MaxHealth float64 `msgpack:"max_health"`
}

// Snapshot copies the current state.
func (s *State) Snapshot(session string) Snapshot {
	p := &s.Player
	w := s.CurrentWeapon()
	snap := Snapshot{
		Session:       session,
		Tick:          s.Tick,
		Status:        s.Status,
		Day:           s.Clock.Day,
		Phase:         s.Clock.Phase,
		PhaseElapsed:  s.Clock.Elapsed,
		PhaseProgress: s.Clock.Progress(s.Config.DayNight.DayLength),
		SimTime:       s.Clock.Total,
		Score:         s.Score,
		Kills:         s.Kills,
		Player: PlayerView{
			Box:       p.Box(),
			Health:    p.Health,
			MaxHealth: p.MaxHealth,
			Ammo:      p.Ammo,
			MaxAmmo:   s.Config.Player.StartingAmmo,
			Weapon:    w.Key,
			Slot:      p.Weapon + 1,
		},
		Inventory: s.Stacks(),
		Zombies:   make([]ZombieView, 0, s.Zombies.Len()),
		Bullets:   make([]BulletView, 0, s.Bullets.Len()),
		Items:     make([]ItemView, 0, s.Items.Len()),
		Buildings: make([]BuildingView, 0, len(s.Buildings)),
		TileSize:  s.Config.Map.TileSize,
		Grid:      s.Grid,
	}

	for z := range s.Zombies.Values() {
		snap.Zombies = append(snap.Zombies, ZombieView{Box: z.Box(), Health: z.Health, Variant: z.Variant})
	}
	for b := range s.Bullets.Values() {
		snap.Bullets = append(snap.Bullets, BulletView{Pos: b.Pos, Radius: b.Radius})
	}
	for it := range s.Items.Values() {
		snap.Items = append(snap.Items, ItemView{Box: it.Box(), Item: s.Catalog.Key(it.Item)})
	}
	for _, b := range s.Buildings {
		snap.Buildings = append(snap.Buildings, BuildingView{Box: b.Box(), Kind: b.Kind, Health: b.Health, MaxHealth: b.MaxHealth})
	}
	return snap
}

// NearestZombie returns the zombie whose centre is closest to from.
func (snap *Snapshot) NearestZombie(from Vec2) (ZombieView, bool) {
	best := math.Inf(1)
	var nearest ZombieView
	found := false
	for _, z := range snap.Zombies {
		if d := z.Box.Center().DistanceTo(from); d < best {
			best = d
			nearest = z
			found = true
		}
	}
	return nearest, found
}

// Night reports whether the snapshot was taken at night.
func (snap *Snapshot) Night() bool {
	return snap.Phase == Night
}

// Report summarises a finished or running game.
type Report struct {
	Session  string        `msgpack:"session"`
	Status   Status        `msgpack:"status"`
	Days     int           `msgpack:"days"`
	Kills    int           `msgpack:"kills"`
	Score    int           `msgpack:"score"`
	Ticks    uint64        `msgpack:"ticks"`
	Survived time.Duration `msgpack:"survived"`
}
