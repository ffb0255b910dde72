package match

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
)

// RunnerConfig holds configuration for a runner.
type RunnerConfig struct {
	ThinkDelay   time.Duration // Cosmetic pause before the computer moves
	TickInterval time.Duration // Length of one clock second; shortened in tests

	// Category IDs, recorded with results.
	Player1Category string
	Player2Category string

	Saver  ResultSaver // Optional, can be nil
	Logger *log.Logger // Optional, discards when nil
}

// DefaultRunnerConfig returns sensible defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		ThinkDelay:   600 * time.Millisecond,
		TickInterval: time.Second,
	}
}

type intentKind int

const (
	intentMove intentKind = iota
	intentReset
)

type intent struct {
	kind intentKind
	cell int
}

// Runner drives one engine on its own goroutine. Every engine call, and
// every listener callback, happens inside Run.
type Runner struct {
	id      MatchID
	cfg     RunnerConfig
	engine  *blink.Engine
	session SessionHandle
	logger  *log.Logger

	intents chan intent
	done    chan struct{}
	stop    sync.Once

	ticker     *time.Ticker
	think      *time.Timer
	thinkToken uint64
	tally      Tally
}

// NewRunner wraps engine for session. The runner takes ownership of the
// engine: callers must not touch it afterwards.
func NewRunner(engine *blink.Engine, session SessionHandle, cfg RunnerConfig) *Runner {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	id := NewMatchID()
	r := &Runner{
		id:      id,
		cfg:     cfg,
		engine:  engine,
		session: session,
		logger:  logger.With("match", string(id)),
		intents: make(chan intent, 16),
		done:    make(chan struct{}),
	}
	engine.Subscribe(r.onEngineEvent)
	return r
}

// ID returns the match identifier.
func (r *Runner) ID() MatchID {
	return r.id
}

// Move asks to place a mark for the seat to move. Non-blocking.
func (r *Runner) Move(cell int) {
	r.send(intent{kind: intentMove, cell: cell})
}

// Reset asks to play again with the same categories. Non-blocking.
func (r *Runner) Reset() {
	r.send(intent{kind: intentReset})
}

func (r *Runner) send(in intent) {
	select {
	case r.intents <- in:
	case <-r.done:
	default:
		// Channel full, drop input (only under key-repeat floods)
		r.logger.Warn("intent dropped", "kind", in.kind)
	}
}

// Run is the authoritative match loop. It returns when ctx is cancelled,
// the session ends or Stop is called.
func (r *Runner) Run(ctx context.Context) error {
	r.ticker = time.NewTicker(r.cfg.TickInterval)
	defer r.ticker.Stop()
	defer r.stopThinking()

	r.logger.Debug("match started", "mode", r.engine.Config().Mode)
	r.session.Send(SnapshotEvent{MatchID: r.id, Snapshot: r.engine.Snapshot()})

	for {
		select {
		case <-ctx.Done():
			r.Stop()
			return ctx.Err()

		case <-r.done:
			return nil

		case <-r.session.Done():
			r.logger.Debug("session gone")
			r.Stop()
			return nil

		case <-r.ticker.C:
			r.engine.Tick()

		case in := <-r.intents:
			r.apply(in)

		case <-r.thinkC():
			r.think = nil
			if err := r.engine.ResolveOpponent(r.thinkToken); err != nil {
				r.logger.Debug("opponent move skipped", "err", err)
			}
		}
	}
}

// Stop ends the loop. Safe to call multiple times and from any goroutine.
func (r *Runner) Stop() {
	r.stop.Do(func() {
		close(r.done)
	})
}

// Done closes once the runner has been stopped.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) apply(in intent) {
	switch in.kind {
	case intentMove:
		if err := r.engine.SubmitMove(in.cell); err != nil {
			r.logger.Debug("move rejected", "cell", in.cell, "err", err)
			r.session.Send(MoveRejectedEvent{MatchID: r.id, Cell: in.cell, Err: err})
		}
	case intentReset:
		r.engine.Reset()
	}
}

// onEngineEvent runs synchronously inside an engine call on the Run
// goroutine, so it may use the ticker and timers but never the engine.
func (r *Runner) onEngineEvent(evt blink.Event) {
	switch e := evt.(type) {
	case blink.StateChanged:
		r.session.Send(SnapshotEvent{MatchID: r.id, Snapshot: e.Snapshot})

	case blink.MovePlaced:
		r.logger.Debug("placed", "seat", e.Seat, "cell", e.Index, "evicted", e.Evicted, "forced", e.Forced)

	case blink.TurnPassed:
		r.restartClock()

	case blink.TurnTimedOut:
		r.logger.Debug("turn timed out", "seat", e.Seat)
		r.session.Send(TurnTimedOutEvent{MatchID: r.id, Seat: e.Seat})

	case blink.OpponentThinking:
		r.stopThinking()
		r.thinkToken = e.Token
		r.think = time.NewTimer(r.cfg.ThinkDelay)

	case blink.MatchWon:
		r.stopThinking()
		r.tally.Add(e.Seat)
		r.logger.Debug("match won", "seat", e.Seat, "line", e.Line)
		r.save(e.Seat)
		r.session.Send(MatchEndedEvent{MatchID: r.id, Winner: e.Seat, Line: e.Line, Tally: r.tally})

	case blink.MatchReset:
		r.stopThinking()
		r.restartClock()
		r.logger.Debug("match reset")
	}
}

// restartClock realigns clock seconds with the start of a turn.
func (r *Runner) restartClock() {
	if r.ticker != nil {
		r.ticker.Reset(r.cfg.TickInterval)
	}
}

func (r *Runner) thinkC() <-chan time.Time {
	if r.think == nil {
		return nil
	}
	return r.think.C
}

func (r *Runner) stopThinking() {
	if r.think != nil {
		r.think.Stop()
		r.think = nil
	}
}

func (r *Runner) save(winner blink.Seat) {
	if r.cfg.Saver == nil {
		return
	}

	cfg := r.engine.Config()
	rec := WinRecord{
		MatchID:         r.id,
		Mode:            cfg.Mode,
		Player1Category: r.cfg.Player1Category,
		Player2Category: r.cfg.Player2Category,
		Winner:          winner,
	}
	if cfg.Mode == blink.ModeVsAI {
		rec.Difficulty = cfg.Difficulty.String()
	}

	if err := r.cfg.Saver.RecordWin(rec); err != nil {
		r.logger.Error("cannot record win", "err", err)
	}
}
