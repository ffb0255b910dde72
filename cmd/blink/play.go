package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
	"github.com/vovakirdan/blink-tac-toe/internal/config"
	"github.com/vovakirdan/blink-tac-toe/internal/platform/tui"
	"github.com/vovakirdan/blink-tac-toe/internal/registry"
)

var (
	flagMode       string
	flagDifficulty string
	flagPlayer1    string
	flagPlayer2    string
	flagTurnLimit  int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a match",
	Long: `Start a match straight away. Anything not given on the command line
comes from the config file.

Controls:
  Arrows/hjkl   - Move the cursor
  Space/Enter   - Place under the cursor
  1-9           - Place on a numbered cell
  R             - Play again (after a win)
  C/Esc         - Change categories
  ?             - Rules
  Q/Ctrl+C      - Quit

Difficulty options:
  easy    - Random moves
  medium  - Blocks your lines, otherwise random
  hard    - Blocks, then searches three moves ahead

Examples:
  blink play
  blink play --difficulty hard
  blink play --mode pvp --p1 sports --p2 space
  blink play --turn-limit 0          # no turn clock`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Mode: pvp or ai")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, medium, hard")
	playCmd.Flags().StringVar(&flagPlayer1, "p1", "", "Category for player 1 (see 'blink categories')")
	playCmd.Flags().StringVar(&flagPlayer2, "p2", "", "Category for player 2")
	playCmd.Flags().IntVar(&flagTurnLimit, "turn-limit", -1, "Seconds per turn, 0 disables the clock")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	if flagDifficulty != "" {
		if err := config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if flagTurnLimit >= 0 {
		cfg.Match.TurnLimit = flagTurnLimit
	}

	sel := tui.DefaultSelection(cfg)
	if flagMode != "" {
		mode, err := blink.ParseMode(flagMode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		sel.Mode = mode
	}
	if flagPlayer1 != "" {
		sel.Player1 = flagPlayer1
	}
	if flagPlayer2 != "" {
		sel.Player2 = flagPlayer2
	}

	runSession(cfg, &sel)
}

// runSession runs the TUI until the user quits. A nil sel opens the setup
// menu first.
func runSession(cfg config.Config, sel *tui.Selection) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, closeLog := tuiLogger()
	defer closeLog()

	store := openStore(cfg.Storage.DBPath)

	launcher := &tui.Launcher{
		Config:  cfg,
		Runtime: runtimeConfig(),
		Store:   store,
		Logger:  logger,
	}

	runErr := tui.Run(ctx, launcher, sel)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		if errors.Is(runErr, registry.ErrUnknownCategory) || errors.Is(runErr, registry.ErrSameCategory) {
			fmt.Fprintln(os.Stderr, "Run 'blink categories' to see available categories.")
		}
		os.Exit(1)
	}
}
