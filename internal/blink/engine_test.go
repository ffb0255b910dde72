package blink

import (
	"errors"
	"reflect"
	"testing"
)

func newTestMatch(t *testing.T, cfg MatchConfig, opts ...Option) *Engine {
	t.Helper()
	if cfg.Player1 == nil {
		cfg.Player1 = animals
	}
	if cfg.Player2 == nil {
		cfg.Player2 = food
	}
	e, err := NewMatch(cfg, append([]Option{WithSeed(42)}, opts...)...)
	if err != nil {
		t.Fatalf("NewMatch() failed: %v", err)
	}
	return e
}

func play(t *testing.T, e *Engine, moves ...int) {
	t.Helper()
	for _, m := range moves {
		if err := e.SubmitMove(m); err != nil {
			t.Fatalf("SubmitMove(%d) failed: %v", m, err)
		}
	}
}

func TestNewMatchInitialState(t *testing.T) {
	e := newTestMatch(t, MatchConfig{TurnLimit: DefaultTurnLimit})
	s := e.Snapshot()

	if s.Active != Seat1 || s.Phase != PhaseInProgress || s.Winner != NoSeat {
		t.Errorf("initial state = %v/%v/%v", s.Active, s.Phase, s.Winner)
	}
	if s.TimeRemaining != DefaultTurnLimit {
		t.Errorf("TimeRemaining = %d, expected %d", s.TimeRemaining, DefaultTurnLimit)
	}
	if s.LastPlaced != -1 {
		t.Errorf("LastPlaced = %d, expected -1", s.LastPlaced)
	}
	for i, c := range s.Board {
		if !c.Empty() {
			t.Errorf("cell %d not empty", i)
		}
	}
}

func TestNewMatchRequiresPalettes(t *testing.T) {
	if _, err := NewMatch(MatchConfig{Player1: animals}); !errors.Is(err, ErrConfigurationIncomplete) {
		t.Errorf("NewMatch() error = %v, expected ErrConfigurationIncomplete", err)
	}
}

func TestTwoMovesAlternateTurns(t *testing.T) {
	e := newTestMatch(t, MatchConfig{})
	play(t, e, 4, 0)

	s := e.Snapshot()
	if s.Owned(Seat1)+s.Owned(Seat2) != 2 {
		t.Errorf("occupied cells = %d, expected 2", s.Owned(Seat1)+s.Owned(Seat2))
	}
	if s.Board[4].Owner != Seat1 || s.Board[0].Owner != Seat2 {
		t.Errorf("owners = %v/%v, expected Player 1/Player 2", s.Board[4].Owner, s.Board[0].Owner)
	}
	if s.Active != Seat1 || s.Phase != PhaseInProgress {
		t.Errorf("state = %v/%v, expected Player 1/in_progress", s.Active, s.Phase)
	}
}

func TestRowWinEndsMatch(t *testing.T) {
	e := newTestMatch(t, MatchConfig{TurnLimit: 5})
	play(t, e, 0, 3, 1, 4, 2)

	s := e.Snapshot()
	if s.Phase != PhaseWon || s.Winner != Seat1 {
		t.Fatalf("state = %v/%v, expected won by Player 1", s.Phase, s.Winner)
	}
	if s.Line != [3]int{0, 1, 2} {
		t.Errorf("Line = %v, expected [0 1 2]", s.Line)
	}

	if err := e.SubmitMove(5); !errors.Is(err, ErrMatchDecided) {
		t.Errorf("SubmitMove after win error = %v, expected ErrMatchDecided", err)
	}
	if err := e.Timeout(); !errors.Is(err, ErrMatchDecided) {
		t.Errorf("Timeout after win error = %v, expected ErrMatchDecided", err)
	}
	for i := 0; i < 10; i++ {
		e.Tick()
	}
	if after := e.Snapshot(); !reflect.DeepEqual(after, s) {
		t.Error("decided match changed")
	}
}

func TestEvictionVacatesOldestCell(t *testing.T) {
	e := newTestMatch(t, MatchConfig{})
	// Player 1 builds 0,1,3 while Player 2 stays off every line.
	play(t, e, 0, 4, 1, 8, 3, 2)

	if err := e.SubmitMove(6); err != nil {
		t.Fatalf("SubmitMove(6) failed: %v", err)
	}

	s := e.Snapshot()
	if !s.Board[0].Empty() {
		t.Error("cell 0 should be vacated")
	}
	got := make([]int, 0, 3)
	for _, m := range s.Ledgers[Seat1] {
		got = append(got, m.Index)
	}
	if !reflect.DeepEqual(got, []int{1, 3, 6}) {
		t.Errorf("ledger = %v, expected [1 3 6]", got)
	}
	if s.Phase != PhaseInProgress {
		t.Error("evicted line should not count as a win")
	}
	if s.Oldest(Seat1) != 1 {
		t.Errorf("Oldest = %d, expected 1", s.Oldest(Seat1))
	}

	// Player 2 may take the vacated cell right away.
	if err := e.SubmitMove(0); err != nil {
		t.Errorf("SubmitMove(0) after eviction failed: %v", err)
	}
}

func TestRejectedMovesLeaveStateUnchanged(t *testing.T) {
	e := newTestMatch(t, MatchConfig{TurnLimit: 5})
	play(t, e, 4)
	before := e.Snapshot()

	tests := []struct {
		name  string
		index int
		want  error
	}{
		{"occupied", 4, ErrCellOccupied},
		{"negative", -3, ErrInvalidIndex},
		{"too large", 9, ErrInvalidIndex},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := e.SubmitMove(tc.index); !errors.Is(err, tc.want) {
				t.Errorf("SubmitMove(%d) error = %v, expected %v", tc.index, err, tc.want)
			}
			if after := e.Snapshot(); !reflect.DeepEqual(after, before) {
				t.Error("rejected move changed the match")
			}
		})
	}
}

func TestTwoPlayerTimeoutForcesOneMove(t *testing.T) {
	var forced []MovePlaced
	e := newTestMatch(t, MatchConfig{TurnLimit: 3}, WithListener(func(evt Event) {
		if mp, ok := evt.(MovePlaced); ok && mp.Forced {
			forced = append(forced, mp)
		}
	}))
	play(t, e, 4)

	e.Tick()
	e.Tick()
	if e.Snapshot().TimeRemaining != 1 {
		t.Fatalf("TimeRemaining = %d, expected 1", e.Snapshot().TimeRemaining)
	}
	e.Tick()

	if len(forced) != 1 {
		t.Fatalf("forced moves = %d, expected 1", len(forced))
	}
	if forced[0].Seat != Seat2 || forced[0].Index == 4 {
		t.Errorf("forced move = %+v", forced[0].Placement)
	}

	s := e.Snapshot()
	if s.Owned(Seat2) != 1 {
		t.Errorf("Player 2 owns %d cells, expected 1", s.Owned(Seat2))
	}
	if s.Active != Seat1 || s.TimeRemaining != 3 {
		t.Errorf("after timeout: active %v, remaining %d", s.Active, s.TimeRemaining)
	}
}

func TestVsAITimeoutPassesTurn(t *testing.T) {
	e := newTestMatch(t, MatchConfig{Mode: ModeVsAI, Difficulty: Easy, TurnLimit: 2})

	e.Tick()
	e.Tick()

	s := e.Snapshot()
	if s.Owned(Seat1) != 0 {
		t.Error("timed-out human should not get a forced move")
	}
	if s.Active != Seat2 || !s.Thinking {
		t.Fatalf("state = %v thinking %v, expected computer thinking", s.Active, s.Thinking)
	}

	token, pending := e.PendingOpponent()
	if !pending {
		t.Fatal("expected a pending opponent move")
	}
	if err := e.ResolveOpponent(token); err != nil {
		t.Fatalf("ResolveOpponent() failed: %v", err)
	}

	s = e.Snapshot()
	if s.Owned(Seat2) != 1 || s.Active != Seat1 || s.TimeRemaining != 2 {
		t.Errorf("after opponent: owned %d, active %v, remaining %d", s.Owned(Seat2), s.Active, s.TimeRemaining)
	}
}

func TestClockSuspendedWhileOpponentThinks(t *testing.T) {
	e := newTestMatch(t, MatchConfig{Mode: ModeVsAI, TurnLimit: 2})
	play(t, e, 4)

	for i := 0; i < 5; i++ {
		e.Tick()
	}
	if _, pending := e.PendingOpponent(); !pending {
		t.Fatal("ticks while thinking should not change the turn")
	}
	if e.Snapshot().Owned(Seat2) != 0 {
		t.Error("opponent moved without being resolved")
	}
}

func TestHumanCannotMoveForComputer(t *testing.T) {
	e := newTestMatch(t, MatchConfig{Mode: ModeVsAI})
	play(t, e, 4)

	if err := e.SubmitMove(0); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("SubmitMove during opponent turn error = %v, expected ErrNotYourTurn", err)
	}
	if err := e.Timeout(); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("Timeout during opponent turn error = %v, expected ErrNotYourTurn", err)
	}
}

func TestStaleOpponentTokens(t *testing.T) {
	e := newTestMatch(t, MatchConfig{Mode: ModeVsAI})
	play(t, e, 4)
	token, _ := e.PendingOpponent()

	e.Reset()

	if err := e.ResolveOpponent(token); !errors.Is(err, ErrStaleIntent) {
		t.Errorf("ResolveOpponent after reset error = %v, expected ErrStaleIntent", err)
	}
	if e.Snapshot().Owned(Seat2) != 0 {
		t.Error("stale intent placed a mark")
	}

	play(t, e, 0)
	token, _ = e.PendingOpponent()
	if err := e.ResolveOpponent(token + 1); !errors.Is(err, ErrStaleIntent) {
		t.Errorf("ResolveOpponent with wrong token error = %v, expected ErrStaleIntent", err)
	}
	if err := e.ResolveOpponent(token); err != nil {
		t.Errorf("ResolveOpponent with current token failed: %v", err)
	}
	if err := e.ResolveOpponent(token); !errors.Is(err, ErrStaleIntent) {
		t.Errorf("second ResolveOpponent error = %v, expected ErrStaleIntent", err)
	}
}

func TestInstantOpponent(t *testing.T) {
	e := newTestMatch(t, MatchConfig{Mode: ModeVsAI, Difficulty: Medium}, WithInstantOpponent())
	play(t, e, 4)

	s := e.Snapshot()
	if s.Owned(Seat2) != 1 {
		t.Errorf("computer owns %d cells, expected 1", s.Owned(Seat2))
	}
	if s.Active != Seat1 || s.Thinking {
		t.Errorf("state = %v thinking %v, expected human to move", s.Active, s.Thinking)
	}
}

func TestMediumOpponentBlocksInMatch(t *testing.T) {
	e := newTestMatch(t, MatchConfig{Mode: ModeVsAI, Difficulty: Medium})
	e.board.TryPlace(0, Seat1)
	e.board.TryPlace(1, Seat1)
	e.board.TryPlace(4, Seat2)
	e.passTurn()

	token, _ := e.PendingOpponent()
	if err := e.ResolveOpponent(token); err != nil {
		t.Fatalf("ResolveOpponent() failed: %v", err)
	}
	if e.Snapshot().Board[2].Owner != Seat2 {
		t.Error("medium opponent did not block at 2")
	}
}

func TestMediumOpponentBlocksRealThreatAfterEviction(t *testing.T) {
	e := newTestMatch(t, MatchConfig{Mode: ModeVsAI, Difficulty: Medium})
	for _, i := range []int{0, 1, 7} {
		e.board.TryPlace(i, Seat1)
	}
	e.board.TryPlace(3, Seat2)
	e.board.TryPlace(6, Seat2)
	if got := e.board.Fading(Seat1); got != 0 {
		t.Fatalf("Fading(Seat1) = %d, expected 0", got)
	}
	e.passTurn()

	token, _ := e.PendingOpponent()
	if err := e.ResolveOpponent(token); err != nil {
		t.Fatalf("ResolveOpponent() failed: %v", err)
	}
	if e.Snapshot().Board[4].Owner != Seat2 {
		t.Fatalf("medium opponent did not block at 4")
	}

	// With 4 taken the human can no longer complete 1-4-7.
	play(t, e, 2)
	if s := e.Snapshot(); s.Phase != PhaseInProgress {
		t.Errorf("phase = %v after the human played 2, expected in_progress", s.Phase)
	}
}

func TestHardOpponentMisreadsEviction(t *testing.T) {
	e := newTestMatch(t, MatchConfig{Mode: ModeVsAI, Difficulty: Hard})
	for _, i := range []int{0, 1, 5} {
		e.board.TryPlace(i, Seat2)
	}
	for _, i := range []int{3, 4, 8} {
		e.board.TryPlace(i, Seat1)
	}
	e.passTurn()

	token, _ := e.PendingOpponent()
	if err := e.ResolveOpponent(token); err != nil {
		t.Fatalf("ResolveOpponent() failed: %v", err)
	}

	// The search expected 0-1-2, but placing 2 evicted 0.
	s := e.Snapshot()
	if s.Board[2].Owner != Seat2 || !s.Board[0].Empty() {
		t.Errorf("cells 0/2 = %v/%v", s.Board[0].Owner, s.Board[2].Owner)
	}
	if s.Phase != PhaseInProgress || s.Active != Seat1 {
		t.Errorf("state = %v/%v, expected in_progress with Player 1 to move", s.Phase, s.Active)
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	e := newTestMatch(t, MatchConfig{TurnLimit: 7})
	initial := e.Snapshot()
	play(t, e, 0, 3, 1, 4, 2)
	e.Reset()

	if after := e.Snapshot(); !reflect.DeepEqual(after, initial) {
		t.Errorf("Reset() state = %+v, expected %+v", after, initial)
	}
	cfg := e.Config()
	if !reflect.DeepEqual(cfg.Player1, animals) || !reflect.DeepEqual(cfg.Player2, food) {
		t.Error("Reset() changed the palettes")
	}
}

func TestEventOrder(t *testing.T) {
	var kinds []string
	e := newTestMatch(t, MatchConfig{}, WithListener(func(evt Event) {
		switch evt.(type) {
		case MovePlaced:
			kinds = append(kinds, "placed")
		case TurnPassed:
			kinds = append(kinds, "passed")
		case MatchWon:
			kinds = append(kinds, "won")
		case MatchReset:
			kinds = append(kinds, "reset")
		case StateChanged:
			kinds = append(kinds, "state")
		}
	}))

	play(t, e, 0, 3, 1, 4, 2)
	e.Reset()

	want := []string{
		"placed", "passed", "state",
		"placed", "passed", "state",
		"placed", "passed", "state",
		"placed", "passed", "state",
		"placed", "won", "state",
		"reset", "state",
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("events = %v, expected %v", kinds, want)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"pvp", ModeTwoPlayer, true},
		{"AI", ModeVsAI, true},
		{"solo", ModeTwoPlayer, false},
	}
	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if (err == nil) != tc.ok || got != tc.want {
			t.Errorf("ParseMode(%q) = (%v, %v)", tc.in, got, err)
		}
	}
}
