package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
	"github.com/vovakirdan/blink-tac-toe/internal/registry"
	"github.com/vovakirdan/blink-tac-toe/internal/sim"
)

var (
	flagSimMatches    int
	flagSimPlayer1    string
	flagSimDifficulty string
	flagSimDepth      int
	flagSimMaxPlies   int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play matches headlessly against the computer",
	Long: `Play many matches without a terminal UI and print the results.

Player 1 follows --player1: "random" picks any empty cell, or a
difficulty name plays like that computer tier. Player 2 is always the
computer at --difficulty. With --seed the results are reproducible.

Examples:
  blink sim
  blink sim --matches 5000 --difficulty hard
  blink sim --player1 medium --difficulty hard --seed 42
  blink sim --difficulty hard --depth 5`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimMatches, "matches", 1000, "Number of matches to play")
	simCmd.Flags().StringVar(&flagSimPlayer1, "player1", sim.PolicyRandom, "Player 1 policy: random, easy, medium, hard")
	simCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Computer difficulty (default from config)")
	simCmd.Flags().IntVar(&flagSimDepth, "depth", 0, "Hard search depth (default from config)")
	simCmd.Flags().IntVar(&flagSimMaxPlies, "max-plies", sim.DefaultMaxPlies, "Give up on a match after this many placements")
}

func runSim(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger("blink-sim")

	diffName := cfg.Opponent.Difficulty
	if flagSimDifficulty != "" {
		diffName = flagSimDifficulty
	}
	diff, err := blink.ParseDifficulty(diffName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	depth := cfg.Opponent.SearchDepth
	if flagSimDepth > 0 {
		depth = flagSimDepth
	}

	c1, c2, err := registry.Pair(cfg.Players.Player1, cfg.Players.Player2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	started := time.Now()
	res, err := sim.Run(ctx, sim.Config{
		Matches:     flagSimMatches,
		Player1:     flagSimPlayer1,
		Opponent:    diff,
		SearchDepth: depth,
		MaxPlies:    flagSimMaxPlies,
		Seed:        seed,
		Palette1:    blink.Palette(c1.Symbols),
		Palette2:    blink.Palette(c2.Symbols),
	}, logger)
	if err != nil {
		if res.Matches == 0 {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Stopped early: %v\n", err)
	}

	fmt.Printf("Simulation - %s vs %s computer (seed %d)\n", flagSimPlayer1, diff, seed)
	fmt.Println()
	fmt.Printf("  Matches     %d  (%s)\n", res.Matches, time.Since(started).Round(time.Millisecond))
	fmt.Printf("  Player 1    %d  %s\n", res.Wins.Player1, percent(res.Wins.Player1, res.Matches))
	fmt.Printf("  Computer    %d  %s\n", res.Wins.Player2, percent(res.Wins.Player2, res.Matches))
	fmt.Printf("  Undecided   %d  %s\n", res.Undecided, percent(res.Undecided, res.Matches))
	fmt.Printf("  Avg plies   %.1f\n", res.AveragePlies())
	fmt.Printf("  Evictions   %d\n", res.Evictions)

	if len(res.Lines) == 0 {
		return
	}

	lines := make([][3]int, 0, len(res.Lines))
	for l := range res.Lines {
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool {
		a, b := res.Lines[lines[i]], res.Lines[lines[j]]
		if a != b {
			return a > b
		}
		return lines[i][0]*9+lines[i][1] < lines[j][0]*9+lines[j][1]
	})

	fmt.Println()
	fmt.Println("  Winning lines (cells 1-9)")
	for _, l := range lines {
		fmt.Printf("    %d-%d-%d   %d\n", l[0]+1, l[1]+1, l[2]+1, res.Lines[l])
	}
}

func percent(n, total int) string {
	if total == 0 {
		return ""
	}
	return fmt.Sprintf("(%.1f%%)", 100*float64(n)/float64(total))
}
