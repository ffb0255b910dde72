// Package match runs Blink Tac Toe matches for a session. A Runner owns one
// engine on one goroutine and turns the engine's timer intents into real
// timers, so front ends only ever send intents and receive events.
package match

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// MatchID uniquely identifies a match. It survives Play Again resets.
type MatchID string

// NewMatchID returns a random match identifier.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// NewSessionID returns a random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Tally counts wins per seat for the lifetime of a runner.
type Tally struct {
	Player1 int
	Player2 int
}

// Add credits one win to seat. Other values are ignored.
func (t *Tally) Add(seat blink.Seat) {
	switch seat {
	case blink.Seat1:
		t.Player1++
	case blink.Seat2:
		t.Player2++
	}
}

// Wins returns the win count for seat.
func (t Tally) Wins(seat blink.Seat) int {
	switch seat {
	case blink.Seat1:
		return t.Player1
	case blink.Seat2:
		return t.Player2
	default:
		return 0
	}
}

// WinRecord describes a decided match for aggregate persistence.
type WinRecord struct {
	MatchID         MatchID
	Mode            blink.Mode
	Difficulty      string // empty in two-player mode
	Player1Category string
	Player2Category string
	Winner          blink.Seat
}

// ResultSaver persists decided matches.
// This allows the runner to save results without depending on the storage package.
type ResultSaver interface {
	RecordWin(rec WinRecord) error
}
