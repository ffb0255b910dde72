package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyMedium DifficultyPreset = "medium"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Tier returns the opponent tier for a preset.
func (p DifficultyPreset) Tier() (blink.Difficulty, error) {
	return blink.ParseDifficulty(string(p))
}

// ApplyPreset sets the opponent difficulty and its think delay. A search
// depth already set in cfg is kept; hard fills in DefaultSearchDepth when
// none is set.
func ApplyPreset(cfg *Config, preset DifficultyPreset) error {
	tier, err := preset.Tier()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	cfg.Opponent.Difficulty = tier.String()
	switch tier {
	case blink.Easy:
		cfg.Opponent.ThinkDelay = 400 * time.Millisecond
	case blink.Medium:
		cfg.Opponent.ThinkDelay = 600 * time.Millisecond
	case blink.Hard:
		if cfg.Opponent.SearchDepth == 0 {
			cfg.Opponent.SearchDepth = blink.DefaultSearchDepth
		}
		cfg.Opponent.ThinkDelay = 800 * time.Millisecond
	}
	return nil
}
