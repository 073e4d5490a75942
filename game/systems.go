package game

import (
	"math"
	"time"

	"github.com/plus3/nightfall/engine"
	"github.com/plus3/nightfall/inventory"
)

// Frame is the per-tick context every system receives.
type Frame = engine.UpdateFrame[State]

func frameDuration(frame *Frame) time.Duration {
	return time.Duration(math.Round(frame.DeltaTime * float64(time.Second)))
}

// PlayerMovementSystem moves the player along its input direction and keeps
// it inside the map.
type PlayerMovementSystem struct{}

func (s *PlayerMovementSystem) Execute(frame *Frame) {
	state := frame.State
	p := &state.Player
	cfg := state.Config

	p.Pos = p.Pos.Add(p.Direction.Mul(cfg.Player.Speed))
	p.Pos.X = clamp(p.Pos.X, 0, cfg.Map.PixelWidth()-p.Width)
	p.Pos.Y = clamp(p.Pos.Y, 0, cfg.Map.PixelHeight()-p.Height)
}

// ClockSystem advances simulated time and flips between day and night. A
// night opens with a burst of zombies.
type ClockSystem struct{}

func (s *ClockSystem) Execute(frame *Frame) {
	state := frame.State
	clock := &state.Clock
	dn := state.Config.DayNight

	dt := frameDuration(frame)
	clock.Total += dt
	clock.Elapsed += dt
	if clock.Elapsed < dn.DayLength {
		return
	}

	clock.Elapsed = 0
	if clock.Phase == Day {
		clock.Phase = Night
	} else {
		clock.Phase = Day
	}
	if dn.CountEveryFlip || clock.Phase == Day {
		clock.Day++
	}
	state.emit(EventPhase, float64(clock.Day), clock.Phase.String(), Vec2{})

	if clock.Phase == Night {
		burst := dn.NightBurstBase + clock.Day/dn.NightBurstDayDivisor
		for range burst {
			state.SpawnZombieAtBoundary()
		}
		state.emit(EventNightBurst, float64(burst), "", Vec2{})
	}
}

// SpawnSystem spawns at most one zombie per tick at the current phase's
// rate.
type SpawnSystem struct{}

func (s *SpawnSystem) Execute(frame *Frame) {
	state := frame.State
	if state.Rand.Float64() < state.SpawnRate() {
		state.SpawnZombieAtBoundary()
	}
}

// ZombieSystem moves every zombie straight at the player and drains the
// player's health for each zombie touching it.
type ZombieSystem struct{}

func (s *ZombieSystem) Execute(frame *Frame) {
	state := frame.State
	p := &state.Player
	cfg := state.Config.Zombies

	for z := range state.Zombies.Values() {
		if z.Dead {
			continue
		}

		// Pursuit aims at the player's corner, not its centre.
		delta := p.Pos.Sub(z.Pos)
		if dist := delta.Length(); dist > 0 {
			z.Pos = z.Pos.Add(delta.Mul(z.Speed / dist))
		}

		if state.Rand.Float64() < cfg.GroanChance && state.Clock.Total-z.LastGroan > cfg.GroanCooldown {
			z.LastGroan = state.Clock.Total
			state.emit(EventGroan, 0, z.Variant, z.Pos)
		}

		if p.Box().Overlaps(z.Box()) {
			p.Health = math.Max(0, p.Health-state.Config.Combat.ContactDamage)
			if p.Health <= 0 {
				state.setGameOver()
			}
		}
	}
}

// BulletSystem moves bullets and resolves range, wall and zombie hits.
// Zombies are tested in pool slot order and the first one overlapping the
// bullet takes the hit.
type BulletSystem struct{}

func (s *BulletSystem) Execute(frame *Frame) {
	state := frame.State
	tile := state.Config.Map.TileSize

	for h, b := range state.Bullets.Iter() {
		b.Pos = b.Pos.Add(b.Vel)
		b.Traveled += b.Vel.Length()

		if b.Traveled > b.Range {
			frame.Commands.Delete(state.Bullets, h)
			continue
		}
		if state.Grid.WallAt(b.Pos.X, b.Pos.Y, tile) {
			frame.Commands.Delete(state.Bullets, h)
			continue
		}

		box := b.Box()
		for zh, z := range state.Zombies.Iter() {
			if z.Dead || !box.Overlaps(z.Box()) {
				continue
			}
			z.Health -= b.Damage
			if z.Health <= 0 {
				s.kill(frame, zh, z)
			}
			frame.Commands.Delete(state.Bullets, h)
			break
		}
	}
}

func (s *BulletSystem) kill(frame *Frame, h engine.Handle, z *Zombie) {
	state := frame.State
	z.Dead = true
	frame.Commands.Delete(state.Zombies, h)

	state.Score += z.Reward
	state.Kills++
	state.emit(EventKill, float64(z.Reward), z.Variant, z.Pos)

	if state.Rand.Float64() < state.Config.Combat.DropChance {
		state.DropRandomItem(z.Pos)
	}
}

// PickupSystem moves dropped items the player is touching into the
// inventory. Items that do not fit stay on the ground.
type PickupSystem struct{}

func (s *PickupSystem) Execute(frame *Frame) {
	state := frame.State
	p := &state.Player
	box := p.Box()

	for h, item := range state.Items.Iter() {
		if !box.Overlaps(item.Box()) {
			continue
		}
		if err := p.Inventory.Add(inventory.Stack{Item: item.Item, Amount: 1}); err != nil {
			continue
		}
		frame.Commands.Delete(state.Items, h)
		state.emit(EventPickup, 1, state.Catalog.Key(item.Item), item.Pos)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
