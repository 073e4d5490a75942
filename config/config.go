// Package config holds the static tables the simulation reads: map and
// player constants, weapon, item, recipe and building tables, and the
// day/night and spawn tuning.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable Load falls back to when no path
// is given.
const EnvPath = "NIGHTFALL_CONFIG"

type Config struct {
	// Tick is the fixed simulation step.
	Tick time.Duration `yaml:"tick"`
	// MaxCatchUpTicks bounds how many ticks a single Advance call runs
	// after a stall.
	MaxCatchUpTicks int `yaml:"max_catch_up_ticks"`

	Map               MapConfig                 `yaml:"map"`
	Player            PlayerConfig              `yaml:"player"`
	DayNight          DayNightConfig            `yaml:"day_night"`
	Zombies           ZombieConfig              `yaml:"zombies"`
	Combat            CombatConfig              `yaml:"combat"`
	Weapons           []WeaponConfig            `yaml:"weapons"`
	Items             []ItemConfig              `yaml:"items"`
	Recipes           []RecipeConfig            `yaml:"recipes"`
	Buildings         map[string]BuildingConfig `yaml:"buildings"`
	StartingInventory []StackConfig             `yaml:"starting_inventory"`
	// StartingBuilding is placed at the map centre when a game starts.
	// Empty places nothing.
	StartingBuilding string `yaml:"starting_building"`
}

type MapConfig struct {
	TileSize        float64 `yaml:"tile_size"`
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	WallProbability float64 `yaml:"wall_probability"`
	// Generator is "uniform" or "noise".
	Generator      string  `yaml:"generator"`
	NoiseScale     float64 `yaml:"noise_scale"`
	NoiseThreshold float64 `yaml:"noise_threshold"`
}

// PixelWidth is the map width in world units.
func (m MapConfig) PixelWidth() float64 { return float64(m.Width) * m.TileSize }

// PixelHeight is the map height in world units.
func (m MapConfig) PixelHeight() float64 { return float64(m.Height) * m.TileSize }

type PlayerConfig struct {
	// Speed is in world units per tick.
	Speed          float64 `yaml:"speed"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	MaxHealth      float64 `yaml:"max_health"`
	StartingAmmo   int     `yaml:"starting_ammo"`
	InventorySlots int     `yaml:"inventory_slots"`
	StartingWeapon string  `yaml:"starting_weapon"`
	// AmmoItem is the inventory item reloads draw from.
	AmmoItem string `yaml:"ammo_item"`
	// MedkitItem is the inventory item UseMedkit consumes.
	MedkitItem string `yaml:"medkit_item"`
}

type DayNightConfig struct {
	// DayLength is how long each phase, day or night, lasts.
	DayLength time.Duration `yaml:"day_length"`
	StartDay  int           `yaml:"start_day"`
	// CountEveryFlip advances the day counter on both flips instead of
	// only when night turns back into day.
	CountEveryFlip bool `yaml:"count_every_flip"`
	// A night starts with NightBurstBase + day/NightBurstDayDivisor
	// zombies.
	NightBurstBase       int `yaml:"night_burst_base"`
	NightBurstDayDivisor int `yaml:"night_burst_day_divisor"`
}

type ZombieConfig struct {
	// BaseSpeed is in world units per tick.
	BaseSpeed      float64 `yaml:"base_speed"`
	SpawnRateDay   float64 `yaml:"spawn_rate_day"`
	SpawnRateNight float64 `yaml:"spawn_rate_night"`
	// Variants are rolled in order. The first is the default; each later
	// one replaces the pick when the day is past its UnlockAfterDay and
	// its Chance roll succeeds.
	Variants []VariantConfig `yaml:"variants"`
	// GroanChance is the per-tick chance a zombie groans, at most once per
	// GroanCooldown.
	GroanChance   float64       `yaml:"groan_chance"`
	GroanCooldown time.Duration `yaml:"groan_cooldown"`
}

type VariantConfig struct {
	Name            string  `yaml:"name"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	Health          float64 `yaml:"health"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Reward          int     `yaml:"reward"`
	UnlockAfterDay  int     `yaml:"unlock_after_day"`
	Chance          float64 `yaml:"chance"`
}

type CombatConfig struct {
	BulletSpeed  float64 `yaml:"bullet_speed"`
	BulletRadius float64 `yaml:"bullet_radius"`
	// ContactDamage is drained from the player per overlapping zombie per
	// tick.
	ContactDamage float64 `yaml:"contact_damage"`
	DropChance    float64 `yaml:"drop_chance"`
	DropJitter    float64 `yaml:"drop_jitter"`
	DropSize      float64 `yaml:"drop_size"`
	// DefaultSpread applies to multi-pellet weapons that set no spread.
	DefaultSpread float64 `yaml:"default_spread"`
}

type WeaponConfig struct {
	Key      string        `yaml:"key"`
	Name     string        `yaml:"name"`
	Damage   float64       `yaml:"damage"`
	AmmoCost int           `yaml:"ammo_cost"`
	Cooldown time.Duration `yaml:"cooldown"`
	Range    float64       `yaml:"range"`
	Pellets  int           `yaml:"pellets,omitempty"`
	Spread   float64       `yaml:"spread,omitempty"`
}

type ItemConfig struct {
	Key string `yaml:"key"`
	// Name is what frontends show.
	Name string `yaml:"name"`
	// Kind is "resource", "consumable" or "weapon".
	Kind        string  `yaml:"kind"`
	Stackable   bool    `yaml:"stackable"`
	Droppable   bool    `yaml:"droppable"`
	Heal        float64 `yaml:"heal,omitempty"`
	Description string  `yaml:"description"`
}

type StackConfig struct {
	Item   string `yaml:"item"`
	Amount int    `yaml:"amount"`
}

type RecipeConfig struct {
	ID           string        `yaml:"id"`
	Name         string        `yaml:"name"`
	Result       StackConfig   `yaml:"result"`
	Requirements []StackConfig `yaml:"requirements"`
	Time         time.Duration `yaml:"time"`
}

type BuildingConfig struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Health float64 `yaml:"health"`
}

// Load reads a YAML file over Default, so a file only needs the keys it
// changes. An empty path falls back to $NIGHTFALL_CONFIG; if that is unset
// too the defaults are returned. The result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML from r over Default and validates the result.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(r); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Encode writes c as YAML.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Weapon returns the weapon with the given key.
func (c *Config) Weapon(key string) (WeaponConfig, bool) {
	for _, w := range c.Weapons {
		if w.Key == key {
			return w, true
		}
	}
	return WeaponConfig{}, false
}

// Variant returns the zombie variant with the given name.
func (c *Config) Variant(name string) (VariantConfig, bool) {
	for _, v := range c.Zombies.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return VariantConfig{}, false
}
