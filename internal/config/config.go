// Package config provides YAML-based match configuration loading and
// difficulty presets for Blink Tac Toe.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
	"github.com/vovakirdan/blink-tac-toe/internal/registry"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all settings for a Blink Tac Toe installation.
type Config struct {
	Match      MatchConfig      `yaml:"match"`
	Opponent   OpponentConfig   `yaml:"opponent"`
	Players    PlayersConfig    `yaml:"players"`
	Storage    StorageConfig    `yaml:"storage"`
	Categories []CategoryConfig `yaml:"categories"`
}

// MatchConfig defines the rules every match starts with.
type MatchConfig struct {
	Mode      string `yaml:"mode" env:"BLINK_MODE"`             // "pvp" or "ai"
	TurnLimit int    `yaml:"turn_limit" env:"BLINK_TURN_LIMIT"` // seconds; 0 disables the clock
}

// OpponentConfig defines the computer player.
type OpponentConfig struct {
	Difficulty  string        `yaml:"difficulty" env:"BLINK_DIFFICULTY"`
	SearchDepth int           `yaml:"search_depth" env:"BLINK_SEARCH_DEPTH"`
	ThinkDelay  time.Duration `yaml:"think_delay" env:"BLINK_THINK_DELAY"`
}

// PlayersConfig holds the default category for each seat.
type PlayersConfig struct {
	Player1 string `yaml:"player1" env:"BLINK_P1"`
	Player2 string `yaml:"player2" env:"BLINK_P2"`
}

// StorageConfig locates the tally database.
type StorageConfig struct {
	DBPath string `yaml:"db" env:"BLINK_DB"`
}

// CategoryConfig is a user-defined emoji category.
type CategoryConfig struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Symbols []string `yaml:"symbols"`
}

// Validate checks values the engine cannot work with.
func (c Config) Validate() error {
	if _, err := blink.ParseMode(c.Match.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := blink.ParseDifficulty(c.Opponent.Difficulty); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Match.TurnLimit < 0 {
		return fmt.Errorf("%w: turn_limit %d is negative", ErrInvalidConfig, c.Match.TurnLimit)
	}
	if c.Opponent.SearchDepth < 0 {
		return fmt.Errorf("%w: search_depth %d is negative", ErrInvalidConfig, c.Opponent.SearchDepth)
	}
	if c.Opponent.ThinkDelay < 0 {
		return fmt.Errorf("%w: think_delay %s is negative", ErrInvalidConfig, c.Opponent.ThinkDelay)
	}
	for _, cat := range c.Categories {
		if cat.ID == "" || len(cat.Symbols) == 0 {
			return fmt.Errorf("%w: category %q needs an id and symbols", ErrInvalidConfig, cat.ID)
		}
	}
	return nil
}

// RegisterCategories adds the custom categories to the registry.
// IDs that are already registered are reported as errors.
func (c Config) RegisterCategories() error {
	for _, cat := range c.Categories {
		err := registry.Add(registry.Category{
			ID:      cat.ID,
			Title:   cat.Title,
			Symbols: cat.Symbols,
		})
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// MatchConfig builds the engine configuration for the given palettes.
// Mode and difficulty must already be valid; Validate guarantees that.
func (c Config) MatchConfig(p1, p2 blink.Palette) blink.MatchConfig {
	mode, _ := blink.ParseMode(c.Match.Mode)
	diff, _ := blink.ParseDifficulty(c.Opponent.Difficulty)
	return blink.MatchConfig{
		Player1:     p1,
		Player2:     p2,
		Mode:        mode,
		Difficulty:  diff,
		TurnLimit:   c.Match.TurnLimit,
		SearchDepth: c.Opponent.SearchDepth,
	}
}
