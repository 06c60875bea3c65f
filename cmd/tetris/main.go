// tetris is a falling-block puzzle game for the terminal or a native window.
//
// Usage:
//
//	tetris                    - Pick a variant from the menu
//	tetris list               - List available variants
//	tetris play [variant]     - Play a variant directly
//	tetris history [variant]  - Show recent play sessions
//
// Global flags:
//
//	--fps <rate>        - Set frame rate (default: from config, 60)
//	--seed <value>      - Set RNG seed for reproducible piece order
//	--db <path>         - Set history database path (default: ~/.tetris/history.db)
//	--config <path>     - Use a custom config YAML
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - a falling-block puzzle in your terminal",
	Long: `Tetris drops one of seven four-block shapes at a time into a
14 x 28 glass. Steer and rotate each piece as it falls; full rows vanish.
The game ends when a new piece has nowhere to go.

Without a command, an interactive menu lets you pick a variant.

Available commands:
  list     - Show all variants
  play     - Play a specific variant directly
  history  - View recent play sessions

Examples:
  tetris
  tetris play
  tetris play tetris_kick --window
  tetris history --limit 20`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/history.db", "Path to play history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (terminal mode default: ~/.tetris/tetris.log)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
}
