// Package sim plays Blink Tac Toe matches without a terminal. The first
// seat follows a policy and the computer replies synchronously, so many
// matches can be played back to back to compare opponent tiers.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
	"github.com/vovakirdan/blink-tac-toe/internal/match"
)

// PolicyRandom plays a uniformly random empty cell.
const PolicyRandom = "random"

// DefaultMaxPlies caps a match; without draws two careful players could
// otherwise go on forever.
const DefaultMaxPlies = 200

var (
	// ErrNoMatches is returned when Config.Matches is not positive.
	ErrNoMatches = errors.New("sim: at least one match is required")
	// ErrInvalidPolicy is returned for an unknown first-seat policy.
	ErrInvalidPolicy = errors.New("sim: unknown policy")
)

// Config describes a batch of matches.
type Config struct {
	Matches     int
	Player1     string           // PolicyRandom or a difficulty name
	Opponent    blink.Difficulty // plays Seat2
	SearchDepth int
	MaxPlies    int // per match; zero means DefaultMaxPlies
	Seed        int64
	Palette1    blink.Palette
	Palette2    blink.Palette
}

// Result aggregates a batch.
type Result struct {
	Matches   int
	Wins      match.Tally
	Undecided int // reached MaxPlies without a line
	Plies     int
	Evictions int
	Lines     map[[3]int]int // how often each line decided a match
}

// AveragePlies returns the mean number of placements per match.
func (r Result) AveragePlies() float64 {
	if r.Matches == 0 {
		return 0
	}
	return float64(r.Plies) / float64(r.Matches)
}

// policy picks a cell for Seat1.
type policy func(snap blink.Snapshot, rng *rand.Rand) (int, error)

func newPolicy(name string, depth int) (policy, error) {
	if name == "" || name == PolicyRandom {
		return func(snap blink.Snapshot, rng *rand.Rand) (int, error) {
			empty := snap.Grid().Empty()
			if len(empty) == 0 {
				return -1, blink.ErrNoEmptyCell
			}
			return empty[rng.Intn(len(empty))], nil
		}, nil
	}

	d, err := blink.ParseDifficulty(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrInvalidPolicy, name)
	}
	opp := blink.NewOpponent(d, depth)
	return func(snap blink.Snapshot, rng *rand.Rand) (int, error) {
		return opp.ChooseMove(snap.Grid().Swapped(), snap.Fading(blink.Seat2), rng)
	}, nil
}

// Run plays cfg.Matches matches. The same config and seed always give the
// same result. Cancelling ctx stops between matches and returns what was
// played so far.
func Run(ctx context.Context, cfg Config, logger *log.Logger) (Result, error) {
	res := Result{Lines: make(map[[3]int]int)}
	if cfg.Matches <= 0 {
		return res, ErrNoMatches
	}
	if cfg.MaxPlies <= 0 {
		cfg.MaxPlies = DefaultMaxPlies
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	choose, err := newPolicy(cfg.Player1, cfg.SearchDepth)
	if err != nil {
		return res, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	for n := 0; n < cfg.Matches; n++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := playOne(cfg, choose, rng, &res); err != nil {
			return res, err
		}
	}

	logger.Debug("simulation finished",
		"matches", res.Matches,
		"p1", res.Wins.Player1,
		"p2", res.Wins.Player2,
		"undecided", res.Undecided,
	)
	return res, nil
}

func playOne(cfg Config, choose policy, rng *rand.Rand, res *Result) error {
	var (
		plies     int
		evictions int
		won       *blink.MatchWon
	)

	engine, err := blink.NewMatch(blink.MatchConfig{
		Player1:     cfg.Palette1,
		Player2:     cfg.Palette2,
		Mode:        blink.ModeVsAI,
		Difficulty:  cfg.Opponent,
		SearchDepth: cfg.SearchDepth,
	},
		blink.WithRand(rand.New(rand.NewSource(rng.Int63()))),
		blink.WithInstantOpponent(),
		blink.WithListener(func(evt blink.Event) {
			switch e := evt.(type) {
			case blink.MovePlaced:
				plies++
				if e.Evicted >= 0 {
					evictions++
				}
			case blink.MatchWon:
				won = &e
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("sim: %w", err)
	}

	for won == nil && plies < cfg.MaxPlies {
		idx, err := choose(engine.Snapshot(), rng)
		if err != nil {
			return fmt.Errorf("sim: %w", err)
		}
		if err := engine.SubmitMove(idx); err != nil {
			return fmt.Errorf("sim: move %d rejected: %w", idx, err)
		}
	}

	res.Matches++
	res.Plies += plies
	res.Evictions += evictions
	if won == nil {
		res.Undecided++
		return nil
	}
	res.Wins.Add(won.Seat)
	res.Lines[won.Line]++
	return nil
}
