package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/platform/window"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var (
	flagWindow     bool
	flagWidth      int
	flagHeight     int
	flagX          int
	flagY          int
	flagFullscreen bool
	flagBlockSize  int
	flagWallKick   bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: tetris).

Controls:
  Left/A     - Move left
  Right/D    - Move right
  Up/W       - Rotate clockwise
  Space      - Start, drop fast, restart after game over
  Ctrl+S     - Save a PNG snapshot (F12 in the window)
  Q/Esc      - Quit

Examples:
  tetris play
  tetris play tetris_kick
  tetris play --window --block-size 30 --height 900
  tetris play --seed 42 --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWindow, "window", false, "Play in a native window instead of the terminal")
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Window width in pixels")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Window height in pixels")
	playCmd.Flags().IntVar(&flagX, "x", -1, "Window x position (-1 = centered)")
	playCmd.Flags().IntVar(&flagY, "y", -1, "Window y position (-1 = centered)")
	playCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "Start the window fullscreen")
	playCmd.Flags().IntVar(&flagBlockSize, "block-size", 0, "Block size in pixels")
	playCmd.Flags().BoolVar(&flagWallKick, "wall-kick", false, "Let blocked rotations shift sideways")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "tetris"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available variants.")
		os.Exit(1)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(!flagWindow)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	configureGames(cfg, logger)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	snapshots, err := expandHome(snapshotDir)
	if err != nil {
		logger.Warn("snapshots disabled", "err", err)
		snapshots = ""
	}

	store := openStore(logger)
	logger.Info("starting", "variant", gameID, "window", flagWindow, "seed", flagSeed)

	var runErr error
	if flagWindow {
		runErr = window.Run(game, cfg, window.Options{
			Store:       store,
			Logger:      logger,
			SnapshotDir: snapshots,
			Seed:        flagSeed,
		})
	} else {
		runErr = tui.Run(game, terminalConfig(cfg), tui.Options{
			Store:       store,
			Logger:      logger,
			SnapshotDir: snapshots,
			CanvasW:     cfg.Window.Width,
			CanvasH:     cfg.Window.Height,
		})
	}

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game stopped", "err", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
