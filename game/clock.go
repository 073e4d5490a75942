package game

import "time"

type Phase uint8

const (
	Day Phase = iota
	Night
)

func (p Phase) String() string {
	if p == Night {
		return "night"
	}
	return "day"
}

// Status is the lifecycle state of a simulation.
type Status uint8

const (
	Running Status = iota
	Paused
	GameOver
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Clock tracks simulated time and the day/night cycle.
type Clock struct {
	// Elapsed is time spent in the current phase.
	Elapsed time.Duration
	// Total is all simulated time since the game started.
	Total time.Duration
	Day   int
	Phase Phase
}

func (c *Clock) Night() bool { return c.Phase == Night }

// Progress is how far through the current phase the clock is, in [0,1).
func (c *Clock) Progress(phaseLength time.Duration) float64 {
	if phaseLength <= 0 {
		return 0
	}
	return float64(c.Elapsed) / float64(phaseLength)
}
