// Package metrics exports a running simulation to Prometheus.
package metrics

import (
	"net/http"

	"github.com/plus3/nightfall/engine"
	"github.com/plus3/nightfall/game"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nightfall"

// Exporter turns snapshots, events and scheduler stats into metrics. It
// owns its registry so several exporters can live in one process.
type Exporter struct {
	registry *prometheus.Registry

	Zombies prometheus.Gauge
	Bullets prometheus.Gauge
	Items   prometheus.Gauge
	Health  prometheus.Gauge
	Ammo    prometheus.Gauge
	Day     prometheus.Gauge
	Night   prometheus.Gauge
	Score   prometheus.Gauge

	Ticks  prometheus.Counter
	Events *prometheus.CounterVec
	Kills  *prometheus.CounterVec

	SystemDuration *prometheus.HistogramVec

	lastTick       uint64
	lastExecutions map[string]int64
}

func NewExporter() *Exporter {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}

	e := &Exporter{
		registry: prometheus.NewRegistry(),
		Zombies:  gauge("zombies", "Live zombies."),
		Bullets:  gauge("bullets", "Bullets in flight."),
		Items:    gauge("dropped_items", "Items lying on the ground."),
		Health:   gauge("player_health", "Player health."),
		Ammo:     gauge("player_ammo", "Loaded ammo."),
		Day:      gauge("day", "Current day number."),
		Night:    gauge("night", "1 at night, 0 by day."),
		Score:    gauge("score", "Current score."),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Simulation ticks run.",
		}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Game events by kind.",
		}, []string{"kind"}),
		Kills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kills_total",
			Help:      "Zombies killed by variant.",
		}, []string{"variant"}),
		SystemDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "system_duration_seconds",
			Help:      "Last observed execution time per system.",
			Buckets:   []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3},
		}, []string{"system"}),
		lastExecutions: make(map[string]int64),
	}

	e.registry.MustRegister(
		e.Zombies, e.Bullets, e.Items, e.Health, e.Ammo, e.Day, e.Night, e.Score,
		e.Ticks, e.Events, e.Kills, e.SystemDuration,
	)
	return e
}

// Registry exposes the exporter's registry, e.g. for extra collectors.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Handler serves the registry in the Prometheus text format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Observe records one snapshot and the events drained since the previous
// call. Not safe for concurrent use.
func (e *Exporter) Observe(snap game.Snapshot, events []game.Event) {
	e.Zombies.Set(float64(len(snap.Zombies)))
	e.Bullets.Set(float64(len(snap.Bullets)))
	e.Items.Set(float64(len(snap.Items)))
	e.Health.Set(snap.Player.Health)
	e.Ammo.Set(float64(snap.Player.Ammo))
	e.Day.Set(float64(snap.Day))
	e.Score.Set(float64(snap.Score))
	if snap.Night() {
		e.Night.Set(1)
	} else {
		e.Night.Set(0)
	}

	// a reset starts the tick count over
	if snap.Tick < e.lastTick {
		e.lastTick = 0
	}
	e.Ticks.Add(float64(snap.Tick - e.lastTick))
	e.lastTick = snap.Tick

	for _, ev := range events {
		e.Events.WithLabelValues(ev.Kind.String()).Inc()
		if ev.Kind == game.EventKill {
			e.Kills.WithLabelValues(ev.Key).Inc()
		}
	}
}

// ObserveStats records the last duration of every system that ran since
// the previous call.
func (e *Exporter) ObserveStats(stats *engine.SchedulerStats) {
	for _, s := range stats.Systems {
		if s.ExecutionCount == e.lastExecutions[s.Name] {
			continue
		}
		e.lastExecutions[s.Name] = s.ExecutionCount
		e.SystemDuration.WithLabelValues(s.Name).Observe(s.LastDuration.Seconds())
	}
}
