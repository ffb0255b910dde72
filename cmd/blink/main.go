// blink is Blink Tac Toe for the terminal: tic-tac-toe where each player
// keeps only their three newest emojis on the board.
//
// Usage:
//
//	blink play               - Start a match straight away
//	blink menu               - Pick categories, mode and difficulty first
//	blink categories         - List emoji categories
//	blink scores             - Show win tallies
//	blink serve              - Start SSH server for remote play
//	blink sim                - Play matches headlessly to compare opponents
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.blink/config.yaml)
//	--seed <value>      - Set RNG seed for reproducible matches
//	--db <path>         - Set database path (default: ~/.blink/blink.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Where match logs go while the TUI runs
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	// Import built-in categories to register them
	_ "github.com/vovakirdan/blink-tac-toe/internal/categories"
	"github.com/vovakirdan/blink-tac-toe/internal/config"
	"github.com/vovakirdan/blink-tac-toe/internal/core"
	"github.com/vovakirdan/blink-tac-toe/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
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
	Use:   "blink",
	Short: "Blink Tac Toe - tic-tac-toe where old moves vanish",
	Long: `Blink Tac Toe is tic-tac-toe with a twist: each player may only have
three emojis on the board. Placing a fourth makes the oldest one vanish,
so there are no draws.

Available commands:
  play        - Start a match with the configured setup
  menu        - Interactive setup: categories, mode, difficulty
  categories  - List emoji categories
  scores      - View win tallies
  serve       - Start SSH server for remote play
  sim         - Headless self-play

Examples:
  blink play
  blink play --mode pvp --p1 sports --p2 space
  blink play --difficulty hard
  blink menu
  blink serve --ssh :2222
  blink sim --matches 1000 --difficulty hard`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to tally database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write match logs to this file while the TUI runs")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// loadConfig loads the config, applies --db and registers custom categories.
// Errors are fatal.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if err := cfg.RegisterCategories(); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering categories: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger returns a stderr logger at --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using warn\n", err)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// tuiLogger returns a logger for the full-screen UI, which owns the
// terminal. Logs go to --log-file, or nowhere when it is unset. The
// returned func closes the file.
func tuiLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return nil, func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return nil, func() {}
	}
	logger := newLogger("blink")
	logger.SetOutput(f)
	return logger, func() { f.Close() }
}

// runtimeConfig reads the terminal size, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the tally database, or returns nil with a warning.
// Matches still work without it.
func openStore(path string) *storage.Store {
	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open tally database: %v\n", err)
		return nil
	}
	return store
}
