package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
)

//go:embed defaults/blink.yaml
var defaultBlinkYAML []byte

// DefaultDBPath is where tallies are stored unless configured otherwise.
const DefaultDBPath = "~/.blink/blink.db"

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Match: MatchConfig{
			Mode:      "ai",
			TurnLimit: blink.DefaultTurnLimit,
		},
		Opponent: OpponentConfig{
			Difficulty:  "medium",
			SearchDepth: blink.DefaultSearchDepth,
			ThinkDelay:  600 * time.Millisecond,
		},
		Players: PlayersConfig{
			Player1: "animals",
			Player2: "food",
		},
		Storage: StorageConfig{
			DBPath: DefaultDBPath,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBlinkYAML
}
