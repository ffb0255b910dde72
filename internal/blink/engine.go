// Package blink implements the Blink Tac Toe engine: tic-tac-toe where each
// seat keeps at most three marks and a fourth placement evicts the oldest.
//
// The engine is a single-threaded state machine with no timers and no
// rendering. A scheduler drives it through SubmitMove, Tick, Timeout,
// ResolveOpponent and Reset, and observes it through listeners.
package blink

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Mode selects who plays Seat2.
type Mode int

const (
	ModeTwoPlayer Mode = iota
	ModeVsAI
)

func (m Mode) String() string {
	switch m {
	case ModeTwoPlayer:
		return "pvp"
	case ModeVsAI:
		return "ai"
	default:
		return "unknown"
	}
}

// ParseMode converts "pvp" or "ai" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pvp", "two-player", "2p":
		return ModeTwoPlayer, nil
	case "ai", "cpu", "vs-ai":
		return ModeVsAI, nil
	default:
		return ModeTwoPlayer, fmt.Errorf("blink: unknown mode %q", s)
	}
}

// DefaultTurnLimit is the number of seconds a seat has to move.
const DefaultTurnLimit = 10

// MatchConfig is fixed for the lifetime of a match.
type MatchConfig struct {
	Player1     Palette
	Player2     Palette
	Mode        Mode
	Difficulty  Difficulty // VsAI only
	TurnLimit   int        // seconds per turn; zero disables the clock
	SearchDepth int        // Hard only; zero means DefaultSearchDepth
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRand injects the random source used for symbols, forced moves and
// the opponent.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithInstantOpponent makes the opponent move as soon as its turn begins
// instead of waiting for ResolveOpponent.
func WithInstantOpponent() Option {
	return func(e *Engine) {
		e.instant = true
	}
}

// WithListener subscribes l before the match starts.
func WithListener(l Listener) Option {
	return func(e *Engine) {
		e.Subscribe(l)
	}
}

// Engine owns the match state. It is not safe for concurrent use.
type Engine struct {
	cfg      MatchConfig
	board    *Board
	clock    *Clock
	opponent *Opponent
	rng      *rand.Rand

	active     Seat
	phase      Phase
	winner     Seat
	line       [3]int
	lastPlaced int

	thinking bool
	token    uint64 // bumped to invalidate pending opponent intents
	instant  bool

	listeners []Listener
}

// NewMatch validates cfg and returns an engine in its initial state:
// Seat1 to move, clock running.
func NewMatch(cfg MatchConfig, opts ...Option) (*Engine, error) {
	if len(cfg.Player1) == 0 || len(cfg.Player2) == 0 {
		return nil, ErrConfigurationIncomplete
	}

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	board, err := NewBoard(cfg.Player1, cfg.Player2, e.rng)
	if err != nil {
		return nil, err
	}
	e.board = board
	e.clock = NewClock(cfg.TurnLimit, e.expire)

	if cfg.Mode == ModeVsAI {
		e.opponent = NewOpponent(cfg.Difficulty, cfg.SearchDepth)
	}

	e.start()
	return e, nil
}

// start puts the engine into the canonical initial state.
func (e *Engine) start() {
	e.board.Clear()
	e.active = Seat1
	e.phase = PhaseInProgress
	e.winner = NoSeat
	e.line = [3]int{}
	e.lastPlaced = -1
	e.thinking = false
	e.token++
	e.clock.Restart()
}

// Subscribe adds a listener. Listeners must not call back into the engine.
func (e *Engine) Subscribe(l Listener) {
	if l != nil {
		e.listeners = append(e.listeners, l)
	}
}

// Config returns the match configuration.
func (e *Engine) Config() MatchConfig {
	return e.cfg
}

// Active returns the seat to move.
func (e *Engine) Active() Seat {
	return e.active
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Winner returns the winning seat, or NoSeat.
func (e *Engine) Winner() Seat {
	return e.winner
}

// PendingOpponent returns the token of an opponent move awaiting
// ResolveOpponent.
func (e *Engine) PendingOpponent() (uint64, bool) {
	return e.token, e.thinking
}

// SubmitMove places a mark for the active seat. Rejected moves return an
// advisory error and leave the match untouched.
func (e *Engine) SubmitMove(index int) error {
	if e.phase == PhaseWon {
		return ErrMatchDecided
	}
	if e.isOpponent(e.active) {
		return ErrNotYourTurn
	}
	return e.play(index, false)
}

// Tick counts one second off the active seat's clock. When the clock runs
// out the timeout policy is applied.
func (e *Engine) Tick() {
	if e.phase != PhaseInProgress || !e.clock.Running() {
		return
	}
	if !e.clock.Tick() {
		e.publish()
	}
}

// Timeout applies the timeout policy to the active seat. In two-player
// mode a random empty cell is played for it; against the computer the
// human simply loses the turn.
func (e *Engine) Timeout() error {
	if e.phase == PhaseWon {
		return ErrMatchDecided
	}
	if e.isOpponent(e.active) {
		return ErrNotYourTurn
	}

	e.clock.Suspend()
	e.emit(TurnTimedOut{Seat: e.active})

	if e.cfg.Mode == ModeVsAI {
		e.passTurn()
		return nil
	}

	empty := e.board.Empty()
	if len(empty) == 0 {
		e.passTurn()
		return nil
	}
	return e.play(empty[e.rng.Intn(len(empty))], true)
}

// ResolveOpponent lets the computer play the move announced by an
// OpponentThinking event. Stale tokens are ignored.
func (e *Engine) ResolveOpponent(token uint64) error {
	if !e.thinking || token != e.token {
		return ErrStaleIntent
	}
	e.thinking = false

	idx, err := e.opponent.ChooseMove(e.board.Grid(), e.board.Fading(e.opponent.Seat().Other()), e.rng)
	if err != nil {
		e.passTurn()
		return err
	}
	return e.play(idx, false)
}

// Reset starts the match over. Palettes, mode and difficulty are kept and
// any pending opponent move is cancelled.
func (e *Engine) Reset() {
	e.start()
	e.emit(MatchReset{})
	e.publish()
}

// play is the one placement path shared by humans, timeouts and the
// opponent.
func (e *Engine) play(index int, forced bool) error {
	placed, err := e.board.TryPlace(index, e.active)
	if err != nil {
		return err
	}
	e.lastPlaced = index
	e.emit(MovePlaced{Placement: placed, Forced: forced})

	// Eviction can break an earlier line, so always check the live ledger.
	if line, ok := WinningLine(e.board.Indices(e.active)); ok {
		e.phase = PhaseWon
		e.winner = e.active
		e.line = line
		e.thinking = false
		e.token++
		e.clock.Suspend()
		e.emit(MatchWon{Seat: e.winner, Line: line})
		e.publish()
		return nil
	}

	e.passTurn()
	return nil
}

func (e *Engine) passTurn() {
	from := e.active
	e.active = from.Other()
	e.emit(TurnPassed{From: from, To: e.active})

	if !e.isOpponent(e.active) {
		e.clock.Restart()
		e.publish()
		return
	}

	// The clock does not run while the computer thinks.
	e.clock.Suspend()
	e.token++
	e.thinking = true
	e.emit(OpponentThinking{Token: e.token})
	e.publish()

	if e.instant {
		_ = e.ResolveOpponent(e.token)
	}
}

func (e *Engine) expire() {
	_ = e.Timeout()
}

func (e *Engine) isOpponent(s Seat) bool {
	return e.opponent != nil && s == e.opponent.Seat()
}

func (e *Engine) emit(evt Event) {
	for _, l := range e.listeners {
		l(evt)
	}
}

func (e *Engine) publish() {
	if len(e.listeners) == 0 {
		return
	}
	e.emit(StateChanged{Snapshot: e.Snapshot()})
}
