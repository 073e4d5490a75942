// Command survivor-tui plays the game in a terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/nightfall/config"
	"github.com/plus3/nightfall/game"
	"github.com/plus3/nightfall/sfx"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file. Defaults to $"+config.EnvPath+".")
	seed := flag.Uint64("seed", 0, "Seed for the session. Zero picks a random seed.")
	mute := flag.Bool("mute", false, "Disable sound.")
	logFile := flag.String("log", "", "Write logs to this file. The terminal is taken by the game.")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	flag.Parse()

	logger, closeLog, err := newLogger(*logFile, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer closeLog()

	if err := run(*configPath, *seed, *mute, logger); err != nil {
		fmt.Fprintf(os.Stderr, "survivor-tui: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

func run(configPath string, seed uint64, mute bool, logger *slog.Logger) error {
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

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	var sound *sfx.Player
	if !mute {
		sound = sfx.New(sfx.DefaultCues)
		if err := sound.Start(); err != nil {
			// Non-fatal, the game runs without sound.
			logger.Warn("audio init failed", "err", err)
			sound = nil
		} else {
			defer sound.Close()
		}
	}

	t := newTerminal(screen, sim, sound, logger)
	t.run(cfg.Tick)
	return nil
}

func newLogger(path, level string) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("invalid -log-level %q: %w", level, err)
	}
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})), func() { f.Close() }, nil
}

// holdFor is how long a movement key keeps the player moving. Terminals
// report key repeats, not key releases.
const holdFor = 150 * time.Millisecond
