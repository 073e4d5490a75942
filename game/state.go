package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/plus3/nightfall/config"
	"github.com/plus3/nightfall/engine"
	"github.com/plus3/nightfall/inventory"
	"github.com/plus3/nightfall/tilemap"
)

// State is everything one game session owns. Systems receive it through
// the scheduler; nothing in the package keeps game state anywhere else.
type State struct {
	Config  *config.Config
	Rand    *rand.Rand
	Grid    *tilemap.Grid
	Catalog *inventory.Catalog
	Recipes *inventory.RecipeBook
	Weapons []Weapon

	Player    Player
	Zombies   *engine.Pool[Zombie]
	Bullets   *engine.Pool[Bullet]
	Items     *engine.Pool[DroppedItem]
	Buildings []Building

	Clock  Clock
	Score  int
	Kills  int
	Status Status
	Tick   uint64

	lastShot time.Duration
	hasShot  bool
	log      eventLog
}

// NewState builds a fresh session: generated map, centred player with the
// starting inventory, and the starting building at the map centre.
func NewState(cfg *config.Config, rng *rand.Rand, gen tilemap.Generator) (*State, error) {
	catalog, err := buildCatalog(cfg)
	if err != nil {
		return nil, err
	}
	recipes, err := buildRecipes(cfg, catalog)
	if err != nil {
		return nil, err
	}
	grid, err := gen(cfg.Map.Width, cfg.Map.Height, rng)
	if err != nil {
		return nil, fmt.Errorf("generate map: %w", err)
	}

	s := &State{
		Config:  cfg,
		Rand:    rng,
		Grid:    grid,
		Catalog: catalog,
		Recipes: recipes,
		Weapons: buildWeapons(cfg),
		Zombies: engine.NewPool[Zombie](),
		Bullets: engine.NewPool[Bullet](),
		Items:   engine.NewPool[DroppedItem](),
		Clock:   Clock{Day: cfg.DayNight.StartDay},
		Status:  Running,
	}

	pc := cfg.Player
	s.Player = Player{
		Pos: Vec2{
			X: cfg.Map.PixelWidth()/2 - pc.Width/2,
			Y: cfg.Map.PixelHeight()/2 - pc.Height/2,
		},
		Width:     pc.Width,
		Height:    pc.Height,
		Health:    pc.MaxHealth,
		MaxHealth: pc.MaxHealth,
		Ammo:      pc.StartingAmmo,
		Inventory: inventory.New(catalog, pc.InventorySlots),
		Weapon:    s.weaponIndex(pc.StartingWeapon),
	}

	if cfg.StartingBuilding != "" {
		bc := cfg.Buildings[cfg.StartingBuilding]
		s.CreateBuilding(Vec2{
			X: cfg.Map.PixelWidth()/2 - bc.Width/2,
			Y: cfg.Map.PixelHeight()/2 - bc.Height/2,
		}, cfg.StartingBuilding)
	}

	for _, sc := range cfg.StartingInventory {
		id, _ := catalog.Lookup(sc.Item)
		if err := s.Player.Inventory.Add(inventory.Stack{Item: id, Amount: sc.Amount}); err != nil {
			return nil, fmt.Errorf("starting inventory %s: %w", sc.Item, err)
		}
	}

	return s, nil
}

// SpawnRate is the per-tick zombie spawn probability for the current phase.
func (s *State) SpawnRate() float64 {
	if s.Clock.Night() {
		return s.Config.Zombies.SpawnRateNight
	}
	return s.Config.Zombies.SpawnRateDay
}

// CurrentWeapon returns the equipped weapon.
func (s *State) CurrentWeapon() Weapon {
	return s.Weapons[s.Player.Weapon]
}

func (s *State) weaponIndex(key string) int {
	for i, w := range s.Weapons {
		if w.Key == key {
			return i
		}
	}
	return 0
}

func (s *State) emit(kind EventKind, value float64, key string, pos Vec2) {
	s.log.push(Event{Kind: kind, Tick: s.Tick, Value: value, Key: key, Pos: pos})
}

func (s *State) setGameOver() {
	if s.Status == GameOver {
		return
	}
	s.Status = GameOver
	s.emit(EventGameOver, float64(s.Score), "", s.Player.Center())
}

func buildCatalog(cfg *config.Config) (*inventory.Catalog, error) {
	defs := make([]inventory.ItemDef, 0, len(cfg.Items))
	for _, it := range cfg.Items {
		defs = append(defs, inventory.ItemDef{
			Key:         it.Key,
			Name:        it.Name,
			Kind:        itemKind(it.Kind),
			Stackable:   it.Stackable,
			Droppable:   it.Droppable,
			Heal:        it.Heal,
			Description: it.Description,
		})
	}
	return inventory.NewCatalog(defs...)
}

func itemKind(kind string) inventory.Kind {
	switch kind {
	case "consumable":
		return inventory.Consumable
	case "weapon":
		return inventory.Weapon
	default:
		return inventory.Resource
	}
}

func buildRecipes(cfg *config.Config, catalog *inventory.Catalog) (*inventory.RecipeBook, error) {
	recipes := make([]inventory.Recipe, 0, len(cfg.Recipes))
	for _, rc := range cfg.Recipes {
		result, ok := catalog.Lookup(rc.Result.Item)
		if !ok {
			return nil, fmt.Errorf("recipe %s: %w: %s", rc.ID, inventory.ErrUnknownItem, rc.Result.Item)
		}
		r := inventory.Recipe{
			ID:     rc.ID,
			Name:   rc.Name,
			Result: inventory.Stack{Item: result, Amount: rc.Result.Amount},
			Time:   rc.Time,
		}
		for _, req := range rc.Requirements {
			id, ok := catalog.Lookup(req.Item)
			if !ok {
				return nil, fmt.Errorf("recipe %s: %w: %s", rc.ID, inventory.ErrUnknownItem, req.Item)
			}
			r.Requirements = append(r.Requirements, inventory.Requirement{Item: id, Amount: req.Amount})
		}
		recipes = append(recipes, r)
	}
	return inventory.NewRecipeBook(recipes...)
}

func buildWeapons(cfg *config.Config) []Weapon {
	weapons := make([]Weapon, 0, len(cfg.Weapons))
	for _, wc := range cfg.Weapons {
		w := Weapon{
			Key:      wc.Key,
			Name:     wc.Name,
			Damage:   wc.Damage,
			AmmoCost: wc.AmmoCost,
			Cooldown: wc.Cooldown,
			Range:    wc.Range,
			Pellets:  wc.Pellets,
			Spread:   wc.Spread,
		}
		if w.Pellets > 0 && w.Spread == 0 {
			w.Spread = cfg.Combat.DefaultSpread
		}
		weapons = append(weapons, w)
	}
	return weapons
}
