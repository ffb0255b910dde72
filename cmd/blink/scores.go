package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blink-tac-toe/internal/platform/tui"
	"github.com/vovakirdan/blink-tac-toe/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresReset bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show win tallies",
	Long: `Display how often each seat has won, per mode, difficulty and
category pairing. Only totals are stored, never individual matches.

Examples:
  blink scores
  blink scores --tui
  blink scores --reset`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse tallies in the full-screen scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Delete all tallies")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening tally database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresReset {
		if err := store.ClearTallies(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All tallies deleted.")
		return
	}

	if flagScoresTUI {
		rt := runtimeConfig()
		if err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	entries, err := store.Tallies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving tallies: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Win Tallies")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No matches won yet.")
		fmt.Println()
		fmt.Println("Play 'blink play' to record the first win!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-10s  %-10s  %7s  %7s\n", "Mode", "Level", "Player 1", "Player 2", "P1 wins", "P2 wins")
	fmt.Printf("  %-4s  %-8s  %-10s  %-10s  %7s  %7s\n", "----", "-----", "--------", "--------", "-------", "-------")

	for _, e := range entries {
		level := e.Difficulty
		if level == "" {
			level = "-"
		}
		fmt.Printf("  %-4s  %-8s  %-10s  %-10s  %7d  %7d\n",
			e.Mode, level, e.Player1Category, e.Player2Category, e.Player1Wins, e.Player2Wins)
	}

	totals, err := store.TotalsByMode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving totals: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	for _, mode := range []string{"pvp", "ai"} {
		if t, ok := totals[mode]; ok {
			fmt.Printf("  %-4s  Player 1: %d  Player 2: %d\n", mode, t.Player1Wins, t.Player2Wins)
		}
	}
}
