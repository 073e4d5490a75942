// Package sfx plays short synthesized cues for game events.
package sfx

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/nightfall/game"
)

const sampleRate = beep.SampleRate(44100)

var ErrNoCue = errors.New("sfx: no cue for event")

// Cue describes the sound for one event kind.
type Cue struct {
	// Freq is the tone in Hz. Zero plays noise instead.
	Freq     float64
	Duration time.Duration
	// Volume is in halvings: -1 is half as loud, 0 unchanged.
	Volume float64
}

// DefaultCues covers the events worth hearing.
var DefaultCues = map[game.EventKind]Cue{
	game.EventShot:       {Freq: 660, Duration: 50 * time.Millisecond, Volume: -1},
	game.EventKill:       {Freq: 220, Duration: 120 * time.Millisecond, Volume: -1},
	game.EventPickup:     {Freq: 990, Duration: 80 * time.Millisecond, Volume: -2},
	game.EventCraft:      {Freq: 1320, Duration: 150 * time.Millisecond, Volume: -2},
	game.EventReload:     {Freq: 440, Duration: 100 * time.Millisecond, Volume: -2},
	game.EventHeal:       {Freq: 770, Duration: 200 * time.Millisecond, Volume: -2},
	game.EventGroan:      {Freq: 0, Duration: 250 * time.Millisecond, Volume: -3},
	game.EventNightBurst: {Freq: 80, Duration: 600 * time.Millisecond, Volume: -1},
	game.EventGameOver:   {Freq: 110, Duration: 900 * time.Millisecond},
}

// Player mixes cues into the speaker. Without Start it still builds and
// mixes streams, which is all tests need.
type Player struct {
	mu      sync.Mutex
	cues    map[game.EventKind]Cue
	mixer   *beep.Mixer
	rng     *rand.Rand
	started bool
}

// New returns a player for cues. A nil map means DefaultCues.
func New(cues map[game.EventKind]Cue) *Player {
	if cues == nil {
		cues = DefaultCues
	}
	return &Player{
		cues:  cues,
		mixer: &beep.Mixer{},
		rng:   rand.New(rand.NewPCG(1, 2)),
	}
}

// Start opens the audio device and begins playing the mixer.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("sfx: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Close silences everything queued.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.locked(p.mixer.Clear)
	if p.started {
		speaker.Clear()
	}
	p.started = false
}

// Mixer exposes the mix for offline rendering.
func (p *Player) Mixer() *beep.Mixer {
	return p.mixer
}

// Stream builds the sound for kind. Kinds without a cue return ErrNoCue.
func (p *Player) Stream(kind game.EventKind) (beep.Streamer, error) {
	cue, ok := p.cues[kind]
	if !ok {
		return nil, ErrNoCue
	}

	var src beep.Streamer
	if cue.Freq > 0 {
		tone, err := generators.SineTone(sampleRate, cue.Freq)
		if err != nil {
			return nil, fmt.Errorf("sfx: %s cue: %w", kind, err)
		}
		src = tone
	} else {
		src = p.noise()
	}

	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(cue.Duration), src),
		Base:     2,
		Volume:   cue.Volume,
	}, nil
}

// Handle queues a cue for every event that has one and returns how many
// were queued. A burst of identical events in one batch plays once.
func (p *Player) Handle(events []game.Event) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	seen := make(map[game.EventKind]bool, len(events))
	var queued []beep.Streamer
	for _, e := range events {
		if seen[e.Kind] {
			continue
		}
		seen[e.Kind] = true
		s, err := p.Stream(e.Kind)
		if errors.Is(err, ErrNoCue) {
			continue
		}
		if err != nil {
			return 0, err
		}
		queued = append(queued, s)
	}
	if len(queued) > 0 {
		p.locked(func() { p.mixer.Add(queued...) })
	}
	return len(queued), nil
}

func (p *Player) locked(fn func()) {
	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

func (p *Player) noise() beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := p.rng.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	})
}
