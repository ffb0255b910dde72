package match

import "github.com/vovakirdan/blink-tac-toe/internal/blink"

// SessionEvent represents an event sent from a runner to a session.
type SessionEvent interface {
	sessionEvent()
}

// SnapshotEvent carries the match state after every change.
type SnapshotEvent struct {
	MatchID  MatchID
	Snapshot blink.Snapshot
}

func (SnapshotEvent) sessionEvent() {}

// MoveRejectedEvent is sent when a submitted move was refused.
// The match is unchanged.
type MoveRejectedEvent struct {
	MatchID MatchID
	Cell    int
	Err     error
}

func (MoveRejectedEvent) sessionEvent() {}

// TurnTimedOutEvent is sent when a seat's clock runs out.
type TurnTimedOutEvent struct {
	MatchID MatchID
	Seat    blink.Seat
}

func (TurnTimedOutEvent) sessionEvent() {}

// MatchEndedEvent is sent when a seat completes a line.
type MatchEndedEvent struct {
	MatchID MatchID
	Winner  blink.Seat
	Line    [3]int
	Tally   Tally
}

func (MatchEndedEvent) sessionEvent() {}
