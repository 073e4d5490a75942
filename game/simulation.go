// Package game is the survival simulation: map, entities, day/night cycle,
// combat and inventory, advanced one fixed tick at a time.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/nightfall/config"
	"github.com/plus3/nightfall/engine"
	"github.com/plus3/nightfall/tilemap"
)

// ErrNotRunning is returned by actions on a paused or finished game.
var ErrNotRunning = errors.New("game: not running")

type options struct {
	seed      uint64
	seeded    bool
	rng       *rand.Rand
	logger    *slog.Logger
	generator tilemap.Generator
}

type Option func(*options)

// WithSeed makes the session reproducible: the same seed and inputs give
// the same game.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithRand supplies the random source directly. It takes precedence over
// WithSeed for the first session; Reset always reseeds.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMapGenerator replaces the generator chosen by the config.
func WithMapGenerator(gen tilemap.Generator) Option {
	return func(o *options) {
		o.generator = gen
	}
}

// Simulation owns one game session and drives its systems. All methods are
// safe to call from multiple goroutines; each tick and each action runs to
// completion under a single lock.
type Simulation struct {
	mu        sync.Mutex
	cfg       *config.Config
	opts      options
	logger    *slog.Logger
	id        uuid.UUID
	seed      uint64
	state     *State
	scheduler *engine.Scheduler[State]

	accumulator time.Duration
	events      eventLog
	seen        observed
}

// observed holds the values last reported to frontends, so changes can be
// turned into events.
type observed struct {
	health    float64
	ammo      int
	score     int
	inventory uint64
	weapon    int
}

// New validates cfg and starts a session.
func New(cfg *config.Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.generator == nil {
		o.generator = generatorFor(cfg.Map)
	}

	sim := &Simulation{
		cfg:    cfg,
		opts:   o,
		logger: o.logger,
	}

	seed := o.seed
	if !o.seeded {
		seed = rand.Uint64()
	}
	rng := o.rng
	if rng == nil {
		rng = newRand(seed)
	}
	if err := sim.start(seed, rng); err != nil {
		return nil, err
	}
	return sim, nil
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func generatorFor(m config.MapConfig) tilemap.Generator {
	if m.Generator == config.GeneratorNoise {
		return tilemap.Noise(m.NoiseThreshold, m.NoiseScale)
	}
	return tilemap.Uniform(m.WallProbability)
}

func (sim *Simulation) start(seed uint64, rng *rand.Rand) error {
	state, err := NewState(sim.cfg, rng, sim.opts.generator)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	scheduler := engine.NewScheduler(state)
	scheduler.Register(&PlayerMovementSystem{})
	scheduler.Register(&ClockSystem{})
	scheduler.Register(&SpawnSystem{})
	scheduler.Register(&ZombieSystem{})
	scheduler.Register(&BulletSystem{})
	scheduler.Register(&PickupSystem{})

	sim.id = uuid.New()
	sim.seed = seed
	sim.state = state
	sim.scheduler = scheduler
	sim.accumulator = 0
	sim.events = eventLog{}
	sim.seen = sim.observe()
	sim.logger = sim.opts.logger.With("session", sim.id.String())

	sim.logger.Info("game started",
		"seed", seed,
		"map", fmt.Sprintf("%dx%d", sim.cfg.Map.Width, sim.cfg.Map.Height),
		"walls", state.Grid.Count(tilemap.Wall),
	)
	return nil
}

// ID identifies the current session. Reset starts a new one.
func (sim *Simulation) ID() uuid.UUID {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.id
}

// Seed is the seed the current session was started from.
func (sim *Simulation) Seed() uint64 {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.seed
}

func (sim *Simulation) Config() *config.Config {
	return sim.cfg
}

func (sim *Simulation) Status() Status {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.state.Status
}

// Step runs one fixed tick. It returns false without doing anything when
// the game is paused or over.
func (sim *Simulation) Step() bool {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.step()
}

func (sim *Simulation) step() bool {
	if sim.state.Status != Running {
		return false
	}
	sim.state.Tick++
	sim.scheduler.Once(sim.cfg.Tick.Seconds())
	sim.collect()

	if sim.state.Status == GameOver {
		r := sim.report()
		sim.logger.Info("game over", "days", r.Days, "kills", r.Kills, "score", r.Score, "ticks", r.Ticks)
	}
	return true
}

// Advance runs as many fixed ticks as elapsed real time covers, carrying
// the remainder to the next call. At most MaxCatchUpTicks run per call;
// time beyond that is dropped. It returns the number of ticks run.
func (sim *Simulation) Advance(elapsed time.Duration) int {
	sim.mu.Lock()
	defer sim.mu.Unlock()

	if sim.state.Status != Running {
		sim.accumulator = 0
		return 0
	}

	sim.accumulator += elapsed
	ticks := 0
	for sim.accumulator >= sim.cfg.Tick {
		if ticks == sim.cfg.MaxCatchUpTicks {
			sim.logger.Debug("dropping simulation time", "behind", sim.accumulator)
			sim.accumulator = 0
			break
		}
		if !sim.step() {
			sim.accumulator = 0
			break
		}
		sim.accumulator -= sim.cfg.Tick
		ticks++
	}
	return ticks
}

// Run advances the simulation in real time, checking every interval, until
// the game ends or ctx is cancelled. A paused game keeps Run waiting.
func (sim *Simulation) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			sim.Advance(now.Sub(last))
			last = now
			if sim.Status() == GameOver {
				return nil
			}
		}
	}
}

// Pause stops ticks and actions until Resume.
func (sim *Simulation) Pause() bool {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	if sim.state.Status != Running {
		return false
	}
	sim.state.Status = Paused
	sim.logger.Info("paused", "tick", sim.state.Tick)
	return true
}

// Resume continues a paused game from exactly where it stopped.
func (sim *Simulation) Resume() bool {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	if sim.state.Status != Paused {
		return false
	}
	sim.state.Status = Running
	sim.accumulator = 0
	sim.logger.Info("resumed", "tick", sim.state.Tick)
	return true
}

// Reset discards the session and starts a new one. When the simulation
// was created WithSeed the same seed is reused, otherwise a fresh one is
// drawn.
func (sim *Simulation) Reset() error {
	seed := rand.Uint64()
	if sim.opts.seeded {
		seed = sim.opts.seed
	}
	return sim.ResetSeed(seed)
}

// ResetSeed discards the session and starts a new one from seed.
func (sim *Simulation) ResetSeed(seed uint64) error {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.start(seed, newRand(seed))
}

// Snapshot copies the current state.
func (sim *Simulation) Snapshot() Snapshot {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.state.Snapshot(sim.id.String())
}

// DrainEvents returns the events since the last call and clears them.
func (sim *Simulation) DrainEvents() []Event {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.events.drain()
}

// DroppedEvents counts events discarded because nobody drained them.
func (sim *Simulation) DroppedEvents() int {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.events.dropped + sim.state.log.dropped
}

// Report summarises the session so far.
func (sim *Simulation) Report() Report {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.report()
}

func (sim *Simulation) report() Report {
	return Report{
		Session:  sim.id.String(),
		Status:   sim.state.Status,
		Days:     sim.state.Clock.Day,
		Kills:    sim.state.Kills,
		Score:    sim.state.Score,
		Ticks:    sim.state.Tick,
		Survived: sim.state.Clock.Total,
	}
}

// Stats returns per-system timing.
func (sim *Simulation) Stats() *engine.SchedulerStats {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.scheduler.GetStats()
}

// Recipes returns the recipe ids in declaration order.
func (sim *Simulation) Recipes() []string {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	all := sim.state.Recipes.All()
	ids := make([]string, len(all))
	for i, r := range all {
		ids[i] = r.ID
	}
	return ids
}

// WithState runs fn with exclusive access to the live state. fn must not
// keep the pointer.
func (sim *Simulation) WithState(fn func(*State)) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	fn(sim.state)
	sim.collect()
}

func (sim *Simulation) observe() observed {
	p := &sim.state.Player
	return observed{
		health:    p.Health,
		ammo:      p.Ammo,
		score:     sim.state.Score,
		inventory: p.Inventory.Version(),
		weapon:    p.Weapon,
	}
}

// collect moves system events into the outgoing log and adds change
// notifications for the values frontends display.
func (sim *Simulation) collect() {
	state := sim.state
	for _, e := range state.log.drain() {
		sim.events.push(e)
		switch e.Kind {
		case EventPhase:
			sim.logger.Info("phase changed", "phase", e.Key, "day", int(e.Value))
		case EventNightBurst:
			sim.logger.Debug("night burst", "zombies", int(e.Value))
		}
	}

	now := sim.observe()
	push := func(kind EventKind, value float64, key string) {
		sim.events.push(Event{Kind: kind, Tick: state.Tick, Value: value, Key: key})
	}
	if now.health != sim.seen.health {
		push(EventHealth, now.health, "")
	}
	if now.ammo != sim.seen.ammo {
		push(EventAmmo, float64(now.ammo), "")
	}
	if now.score != sim.seen.score {
		push(EventScore, float64(now.score), "")
	}
	if now.inventory != sim.seen.inventory {
		push(EventInventory, float64(state.Player.Inventory.Len()), "")
	}
	if now.weapon != sim.seen.weapon {
		push(EventWeapon, float64(now.weapon+1), state.CurrentWeapon().Key)
	}
	sim.seen = now
}
