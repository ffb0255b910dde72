package sim

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
)

func testConfig() Config {
	return Config{
		Matches:  50,
		Player1:  PolicyRandom,
		Opponent: blink.Medium,
		Seed:     11,
		Palette1: blink.Palette{"🐶", "🐱", "🐵", "🐰"},
		Palette2: blink.Palette{"🍕", "🍟", "🍔", "🍩"},
	}
}

func TestRunIsDeterministic(t *testing.T) {
	a, err := Run(context.Background(), testConfig(), nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	b, err := Run(context.Background(), testConfig(), nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed gave different results:\n%+v\n%+v", a, b)
	}
}

func TestRunAccountsForEveryMatch(t *testing.T) {
	for _, policy := range []string{PolicyRandom, "easy", "hard"} {
		t.Run(policy, func(t *testing.T) {
			cfg := testConfig()
			cfg.Player1 = policy
			cfg.Opponent = blink.Hard

			res, err := Run(context.Background(), cfg, nil)
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}

			decided := res.Wins.Player1 + res.Wins.Player2
			if res.Matches != cfg.Matches || decided+res.Undecided != cfg.Matches {
				t.Errorf("matches %d, decided %d, undecided %d", res.Matches, decided, res.Undecided)
			}

			// A line takes at least three marks for the winner and two for
			// the loser.
			if res.Plies < 5*decided {
				t.Errorf("plies = %d for %d decided matches", res.Plies, decided)
			}

			lines := 0
			for line, n := range res.Lines {
				if !blink.HasLine(line[:]) {
					t.Errorf("recorded %v is not a line", line)
				}
				lines += n
			}
			if lines != decided {
				t.Errorf("line counts sum to %d, expected %d", lines, decided)
			}
		})
	}
}

func TestRunStopsAtMaxPlies(t *testing.T) {
	cfg := testConfig()
	cfg.MaxPlies = 2

	res, err := Run(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Undecided != cfg.Matches {
		t.Errorf("undecided = %d, expected every match", res.Undecided)
	}
	if res.AveragePlies() != 2 {
		t.Errorf("AveragePlies() = %v, expected 2", res.AveragePlies())
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Matches = 0
	if _, err := Run(context.Background(), cfg, nil); !errors.Is(err, ErrNoMatches) {
		t.Errorf("Run() error = %v, expected ErrNoMatches", err)
	}

	cfg = testConfig()
	cfg.Player1 = "genius"
	if _, err := Run(context.Background(), cfg, nil); !errors.Is(err, ErrInvalidPolicy) {
		t.Errorf("Run() error = %v, expected ErrInvalidPolicy", err)
	}

	cfg = testConfig()
	cfg.Palette2 = nil
	if _, err := Run(context.Background(), cfg, nil); !errors.Is(err, blink.ErrConfigurationIncomplete) {
		t.Errorf("Run() error = %v, expected ErrConfigurationIncomplete", err)
	}
}

func TestRunHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, testConfig(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
	if res.Matches != 0 {
		t.Errorf("played %d matches after cancel", res.Matches)
	}
}
