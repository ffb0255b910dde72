package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
	"github.com/vovakirdan/blink-tac-toe/internal/config"
	"github.com/vovakirdan/blink-tac-toe/internal/core"
	"github.com/vovakirdan/blink-tac-toe/internal/match"
	"github.com/vovakirdan/blink-tac-toe/internal/registry"
	"github.com/vovakirdan/blink-tac-toe/internal/storage"
)

// Selection is what the setup menu produces.
type Selection struct {
	Mode       blink.Mode
	Difficulty blink.Difficulty
	Player1    string // category ID
	Player2    string // category ID
}

// DefaultSelection reads the configured mode, difficulty and categories.
// Unparseable values fall back to the zero value; Config.Validate has
// normally rejected them already.
func DefaultSelection(cfg config.Config) Selection {
	mode, _ := blink.ParseMode(cfg.Match.Mode)
	diff, _ := blink.ParseDifficulty(cfg.Opponent.Difficulty)
	return Selection{
		Mode:       mode,
		Difficulty: diff,
		Player1:    cfg.Players.Player1,
		Player2:    cfg.Players.Player2,
	}
}

// Launcher builds and starts matches for a front end.
type Launcher struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional, can be nil
	Logger  *log.Logger    // Optional, discards when nil
}

// LiveMatch is a running match together with the categories it uses.
type LiveMatch struct {
	Runner    *match.Runner
	Selection Selection
	Player1   registry.Category
	Player2   registry.Category
}

// Stop ends the match loop. The session stays open.
func (lm *LiveMatch) Stop() {
	lm.Runner.Stop()
}

// Category returns the category a seat plays.
func (lm *LiveMatch) Category(seat blink.Seat) registry.Category {
	if seat == blink.Seat2 {
		return lm.Player2
	}
	return lm.Player1
}

// Start builds a match for sel and runs it on its own goroutine, sending
// events to session. The runner stops when ctx is cancelled, the session
// closes or the returned match is stopped.
func (l *Launcher) Start(ctx context.Context, session match.SessionHandle, sel Selection) (*LiveMatch, error) {
	c1, c2, err := registry.Pair(sel.Player1, sel.Player2)
	if err != nil {
		return nil, err
	}

	cfg := l.Config
	if sel.Difficulty.String() != cfg.Opponent.Difficulty {
		if err := config.ApplyPreset(&cfg, config.DifficultyPreset(sel.Difficulty.String())); err != nil {
			return nil, err
		}
	}

	mc := cfg.MatchConfig(blink.Palette(c1.Symbols), blink.Palette(c2.Symbols))
	mc.Mode = sel.Mode
	mc.Difficulty = sel.Difficulty

	engine, err := blink.NewMatch(mc, blink.WithSeed(l.Runtime.ResolvedSeed()))
	if err != nil {
		return nil, fmt.Errorf("cannot create match: %w", err)
	}

	logger := l.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rc := match.DefaultRunnerConfig()
	rc.ThinkDelay = cfg.Opponent.ThinkDelay
	rc.Player1Category = c1.ID
	rc.Player2Category = c2.ID
	rc.Logger = logger
	if l.Store != nil {
		rc.Saver = l.Store
	}

	runner := match.NewRunner(engine, session, rc)
	go func() {
		if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("match loop ended", "err", err)
		}
	}()

	return &LiveMatch{
		Runner:    runner,
		Selection: sel,
		Player1:   c1,
		Player2:   c2,
	}, nil
}
