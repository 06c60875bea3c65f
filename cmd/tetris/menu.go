package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// runMenu loops between the variant menu, the history screen and play
// until the user quits.
func runMenu(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	configureGames(cfg, logger)

	snapshots, err := expandHome(snapshotDir)
	if err != nil {
		logger.Warn("snapshots disabled", "err", err)
		snapshots = ""
	}

	store := openStore(logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	rc := terminalConfig(cfg)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		rc = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantHistory {
			goBack, histErr := tui.RunHistory(store, rc.ScreenW, rc.ScreenH)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from history
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh piece order for each game unless a seed was given
		if flagSeed == 0 {
			rc.Seed = time.Now().UnixNano()
		}

		logger.Info("starting", "variant", menuResult.GameID, "seed", rc.Seed)
		if err := tui.Run(game, rc, tui.Options{
			Store:       store,
			Logger:      logger,
			SnapshotDir: snapshots,
			CanvasW:     cfg.Window.Width,
			CanvasH:     cfg.Window.Height,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
