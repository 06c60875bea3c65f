package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// snapshotDir receives PNG snapshots from both frontends.
const snapshotDir = "~/.tetris/snapshots"

// loadConfig reads the config file, applies .env and environment
// overrides, then any flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.TetrisConfig, error) {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg, ""); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Timing.FPS = flagFPS
	}
	if flags.Changed("width") {
		cfg.Window.Width = flagWidth
	}
	if flags.Changed("height") {
		cfg.Window.Height = flagHeight
	}
	if flags.Changed("x") {
		cfg.Window.X = flagX
	}
	if flags.Changed("y") {
		cfg.Window.Y = flagY
	}
	if flags.Changed("fullscreen") {
		cfg.Window.Fullscreen = flagFullscreen
	}
	if flags.Changed("block-size") {
		cfg.Glass.BlockSize = flagBlockSize
	}
	if flags.Changed("wall-kick") {
		cfg.Rules.WallKick = flagWallKick
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// configureGames hands cfg and logger to games the registry creates.
func configureGames(cfg config.TetrisConfig, logger *log.Logger) {
	tetris.SetConfig(cfg)
	tetris.SetLogger(logger)
}

// terminalConfig builds the runtime config for the terminal frontend.
func terminalConfig(cfg config.TetrisConfig) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Timing.FPS,
		Seed:     flagSeed,
	}
}

// openStore opens the history database. Play continues without history
// when it cannot be opened.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		logger.Warn("history disabled", "err", err)
		return nil
	}
	return store
}
