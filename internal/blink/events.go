package blink

// Event is something a listener is told about after the engine mutates.
type Event interface {
	blinkEvent()
}

// Listener receives engine events synchronously, on the caller's goroutine.
type Listener func(Event)

// MovePlaced is sent for every accepted placement. Forced is set when the
// engine played the move for a seat whose turn timed out.
type MovePlaced struct {
	Placement
	Forced bool
}

func (MovePlaced) blinkEvent() {}

// MatchWon is sent once when a seat completes a line.
type MatchWon struct {
	Seat Seat
	Line [3]int
}

func (MatchWon) blinkEvent() {}

// TurnPassed is sent whenever the active seat changes.
type TurnPassed struct {
	From Seat
	To   Seat
}

func (TurnPassed) blinkEvent() {}

// TurnTimedOut is sent when the turn clock expires for Seat.
type TurnTimedOut struct {
	Seat Seat
}

func (TurnTimedOut) blinkEvent() {}

// OpponentThinking asks the scheduler to call ResolveOpponent with Token
// after its cosmetic delay. Reset or a win invalidates the token.
type OpponentThinking struct {
	Token uint64
}

func (OpponentThinking) blinkEvent() {}

// MatchReset is sent after Reset.
type MatchReset struct{}

func (MatchReset) blinkEvent() {}

// StateChanged carries the observable state after a mutation.
type StateChanged struct {
	Snapshot Snapshot
}

func (StateChanged) blinkEvent() {}
