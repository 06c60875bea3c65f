package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagClear       bool
)

var historyCmd = &cobra.Command{
	Use:   "history [variant]",
	Short: "Show recent play sessions",
	Long: `Display recent play sessions, newest first. Without a variant,
sessions of every variant are listed.

Examples:
  tetris history
  tetris history tetris_kick --limit 20
  tetris history -i
  tetris history tetris --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse history in a table")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded sessions")
}

func runHistory(cmd *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available variants.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearSessions(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			return
		}
		fmt.Println("History cleared.")
	case flagInteractive:
		cfg := terminalConfig(config.DefaultTetrisConfig())
		if _, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	default:
		if err := printHistory(store, gameID, flagLimit); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		}
	}
}

// printHistory writes the latest sessions and totals to stdout.
func printHistory(store *storage.Store, gameID string, limit int) error {
	sessions, err := store.RecentSessions(gameID, limit)
	if err != nil {
		return err
	}

	title := "all variants"
	if gameID != "" {
		title = gameID
	}
	fmt.Printf("Play History - %s\n", title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tetris play' to start one!")
		return nil
	}

	fmt.Printf("  %-16s  %-12s  %-8s  %-6s  %-6s  %-6s  %s\n", "Date", "Variant", "Frontend", "Length", "Pieces", "Rows", "End")
	fmt.Printf("  %-16s  %-12s  %-8s  %-6s  %-6s  %-6s  %s\n", "----", "-------", "--------", "------", "------", "----", "---")
	for _, s := range sessions {
		end := "quit"
		if s.Finished {
			end = "game over"
		}
		fmt.Printf("  %-16s  %-12s  %-8s  %-6s  %-6d  %-6d  %s\n",
			s.StartedAt.Format("2006-01-02 15:04"), s.GameID, s.Frontend,
			s.Duration().Round(time.Second), s.Pieces, s.Rows, end)
	}

	totals, err := store.Totals(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Total: %d sessions, %d pieces, %d rows, %d game overs\n",
		totals.Sessions, totals.Pieces, totals.Rows, totals.Finished)
	return nil
}
