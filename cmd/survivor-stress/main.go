package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/plus3/nightfall/config"
	"github.com/plus3/nightfall/game"
	"github.com/plus3/nightfall/metrics"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	configPath := flag.String("config", "", "Path to a YAML config file. Defaults to $"+config.EnvPath+".")
	seed := flag.Uint64("seed", 1, "Seed of the first session. Each restart uses the next seed.")
	metricsAddr := flag.String("metrics", "", "Serve Prometheus metrics on this address, e.g. :9090.")
	tracePath := flag.String("trace", "", "Write a zstd-compressed msgpack snapshot trace to this file.")
	traceEvery := flag.Int("trace-every", 60, "Record every Nth tick in the trace.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	verbose := flag.Bool("v", false, "Log simulation events at debug level.")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Println("Starting survivor stress test...")

	exporter := metrics.NewExporter()
	if *metricsAddr != "" {
		srv := &http.Server{Addr: *metricsAddr, Handler: exporter.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Metrics server stopped: %v", err)
			}
		}()
		defer srv.Close()
		log.Printf("Serving metrics on %s/metrics\n", *metricsAddr)
	}

	var trace *traceWriter
	if *tracePath != "" {
		f, err := os.Create(*tracePath)
		if err != nil {
			log.Fatalf("Failed to create trace: %v", err)
		}
		trace, err = newTraceWriter(f)
		if err != nil {
			log.Fatalf("Failed to start trace: %v", err)
		}
	}

	sim, err := game.New(cfg, game.WithSeed(*seed), game.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to start simulation: %v", err)
	}

	report := &Report{
		Duration:       *duration,
		Seed:           *seed,
		Tick:           cfg.Tick,
		Systems:        len(sim.Stats().Systems),
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}
	report.CollectHost()

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	pilot := newAutopilot()
	startTime := time.Now()
	var totalUpdates int64
	nextSeed := *seed

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			pilot.Drive(sim)

			updateStart := time.Now()
			sim.Step()
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++

			snap := sim.Snapshot()
			exporter.Observe(snap, sim.DrainEvents())
			exporter.ObserveStats(sim.Stats())

			if trace != nil && (snap.Tick%uint64(max(*traceEvery, 1)) == 0 || snap.Status == game.GameOver) {
				if err := trace.Write(snap); err != nil {
					log.Fatalf("Failed to write trace: %v", err)
				}
			}

			if snap.Status == game.GameOver {
				report.AddSession(sim.Report())
				nextSeed++
				if err := sim.ResetSeed(nextSeed); err != nil {
					log.Fatalf("Failed to reset simulation: %v", err)
				}
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.Unfinished = sim.Report()
	report.SystemStats = sim.Stats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	if trace != nil {
		if err := trace.Close(); err != nil {
			log.Fatalf("Failed to close trace: %v", err)
		}
		report.TraceFrames = trace.Frames()
	}

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
