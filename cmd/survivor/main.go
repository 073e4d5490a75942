package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/nightfall/config"
	"github.com/plus3/nightfall/debugui"
	debugui_ebiten "github.com/plus3/nightfall/debugui/ebiten"
	"github.com/plus3/nightfall/engine"
	"github.com/plus3/nightfall/game"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file. Defaults to $"+config.EnvPath+".")
	seed := flag.Uint64("seed", 0, "Seed for the session. Zero picks a random seed.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug overlay.")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	flag.Parse()

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(*configPath, *seed, *debug, logger); err != nil {
		logger.Error("survivor failed", "err", err)
		os.Exit(1)
	}
}

func run(configPath string, seed uint64, debug bool, logger *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	opts := []game.Option{game.WithLogger(logger)}
	if seed != 0 {
		opts = append(opts, game.WithSeed(seed))
	}
	sim, err := game.New(cfg, opts...)
	if err != nil {
		return err
	}

	width, height := int(cfg.Map.PixelWidth()), int(cfg.Map.PixelHeight())
	g := newGame(sim, width, height)

	if debug {
		backend := debugui_ebiten.NewImguiBackend("Nightfall", width, height)
		timer := debugui.NewFrameTimer()
		overlay := debugui.NewOverlay()
		debugui.SpawnDebugUI(overlay, sim, timer.GetDeltaTime)

		ui := engine.NewScheduler(overlay)
		ui.Register(&debugui.ImguiSystem{})
		g.debug = &debugOverlay{backend: backend, overlay: overlay, scheduler: ui}
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle("Nightfall")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("starting", "session", sim.ID(), "seed", sim.Seed(), "debug", debug)
	return ebiten.RunGame(g)
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid -log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}
