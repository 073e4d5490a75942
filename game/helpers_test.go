package game

import (
	"testing"

	"github.com/plus3/nightfall/config"
	"github.com/plus3/nightfall/tilemap"
	"github.com/stretchr/testify/require"
)

// quietConfig is the default config with every random event switched off:
// no spawns, no groans, no drops and no interior walls.
func quietConfig() *config.Config {
	cfg := config.Default()
	cfg.Zombies.SpawnRateDay = 0
	cfg.Zombies.SpawnRateNight = 0
	cfg.Zombies.GroanChance = 0
	cfg.Combat.DropChance = 0
	cfg.Map.WallProbability = 0
	return cfg
}

func newTestSim(t *testing.T, tweak func(*config.Config)) *Simulation {
	t.Helper()
	cfg := quietConfig()
	if tweak != nil {
		tweak(cfg)
	}
	sim, err := New(cfg, WithSeed(1), WithMapGenerator(tilemap.Uniform(0)))
	require.NoError(t, err)
	return sim
}

func stepN(sim *Simulation, n int) {
	for range n {
		sim.Step()
	}
}

func eventsOf(events []Event, kind EventKind) []Event {
	var out []Event
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
