package config

import "time"

// Default returns the stock game tables.
func Default() *Config {
	return &Config{
		Tick:            16 * time.Millisecond,
		MaxCatchUpTicks: 5,
		Map: MapConfig{
			TileSize:        32,
			Width:           30,
			Height:          30,
			WallProbability: 0.07,
			Generator:       GeneratorUniform,
			NoiseScale:      0.15,
			NoiseThreshold:  0.62,
		},
		Player: PlayerConfig{
			Speed:          4,
			Width:          24,
			Height:         24,
			MaxHealth:      100,
			StartingAmmo:   20,
			InventorySlots: 20,
			StartingWeapon: "pistol",
			AmmoItem:       "ammo",
			MedkitItem:     "medkit",
		},
		DayNight: DayNightConfig{
			DayLength:            60 * time.Second,
			StartDay:             1,
			NightBurstBase:       3,
			NightBurstDayDivisor: 2,
		},
		Zombies: ZombieConfig{
			BaseSpeed:      1.2,
			SpawnRateDay:   0.005,
			SpawnRateNight: 0.02,
			Variants: []VariantConfig{
				{Name: "normal", SpeedMultiplier: 1, Health: 50, Width: 24, Height: 24, Reward: 10},
				{Name: "fast", SpeedMultiplier: 1.8, Health: 30, Width: 24, Height: 24, Reward: 15, UnlockAfterDay: 3, Chance: 0.2},
				{Name: "tank", SpeedMultiplier: 0.7, Health: 120, Width: 32, Height: 32, Reward: 25, UnlockAfterDay: 5, Chance: 0.15},
			},
			GroanChance:   0.005,
			GroanCooldown: 3 * time.Second,
		},
		Combat: CombatConfig{
			BulletSpeed:   8,
			BulletRadius:  3,
			ContactDamage: 0.5,
			DropChance:    0.3,
			DropJitter:    10,
			DropSize:      16,
			DefaultSpread: 0.1,
		},
		Weapons: []WeaponConfig{
			{Key: "pistol", Name: "Pistol", Damage: 25, AmmoCost: 1, Cooldown: 500 * time.Millisecond, Range: 400},
			{Key: "shotgun", Name: "Shotgun", Damage: 15, AmmoCost: 2, Cooldown: 800 * time.Millisecond, Range: 250, Pellets: 5, Spread: 0.2},
			{Key: "rifle", Name: "Rifle", Damage: 40, AmmoCost: 1, Cooldown: 300 * time.Millisecond, Range: 500},
		},
		Items: []ItemConfig{
			{Key: "ammo", Name: "Ammo", Kind: "resource", Stackable: true, Droppable: true, Description: "Used for crafting bullets"},
			{Key: "medkit", Name: "Medkit", Kind: "consumable", Droppable: true, Heal: 50, Description: "Restores 50 health"},
			{Key: "metal", Name: "Metal Scrap", Kind: "resource", Stackable: true, Droppable: true, Description: "Used for crafting"},
			{Key: "cloth", Name: "Cloth", Kind: "resource", Stackable: true, Droppable: true, Description: "Used for crafting"},
			{Key: "shotgun", Name: "Shotgun", Kind: "weapon", Description: "Crafted scattergun"},
		},
		Recipes: []RecipeConfig{
			{
				ID:           "pistol_ammo",
				Name:         "Pistol Ammo (10)",
				Result:       StackConfig{Item: "ammo", Amount: 10},
				Requirements: []StackConfig{{Item: "metal", Amount: 2}},
				Time:         3 * time.Second,
			},
			{
				ID:     "medkit",
				Name:   "Medkit",
				Result: StackConfig{Item: "medkit", Amount: 1},
				Requirements: []StackConfig{
					{Item: "cloth", Amount: 2},
					{Item: "ammo", Amount: 1},
				},
				Time: 5 * time.Second,
			},
			{
				ID:     "shotgun",
				Name:   "Shotgun",
				Result: StackConfig{Item: "shotgun", Amount: 1},
				Requirements: []StackConfig{
					{Item: "metal", Amount: 5},
					{Item: "ammo", Amount: 2},
				},
				Time: 10 * time.Second,
			},
		},
		Buildings: map[string]BuildingConfig{
			"safehouse": {Name: "Safehouse", Width: 64, Height: 64, Health: 200},
		},
		StartingBuilding: "safehouse",
		StartingInventory: []StackConfig{
			{Item: "ammo", Amount: 10},
			{Item: "medkit", Amount: 2},
			{Item: "metal", Amount: 5},
			{Item: "cloth", Amount: 3},
		},
	}
}
