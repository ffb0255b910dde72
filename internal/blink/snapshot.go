package blink

// Phase is the coarse match state.
type Phase int

const (
	PhaseInProgress Phase = iota
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in_progress"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Board         [BoardCells]Cell
	Active        Seat
	Phase         Phase
	Winner        Seat   // NoSeat while in progress
	Line          [3]int // winning cells, valid when Phase is PhaseWon
	TimeRemaining int
	TurnLimit     int
	LastPlaced    int // -1 before the first move
	Thinking      bool
	Mode          Mode
	Difficulty    Difficulty
	Ledgers       map[Seat][]Mark
}

// Oldest returns the cell holding seat's oldest live mark, or -1.
// That mark vanishes on the seat's next placement once it holds three.
func (s Snapshot) Oldest(seat Seat) int {
	marks := s.Ledgers[seat]
	if len(marks) == 0 {
		return -1
	}
	return marks[0].Index
}

// Fading returns the cell seat loses on its next placement, or -1 while
// the seat holds fewer than MaxLiveMarks marks.
func (s Snapshot) Fading(seat Seat) int {
	if len(s.Ledgers[seat]) < MaxLiveMarks {
		return -1
	}
	return s.Oldest(seat)
}

// Owned returns how many cells seat holds.
func (s Snapshot) Owned(seat Seat) int {
	n := 0
	for _, c := range s.Board {
		if c.Owner == seat {
			n++
		}
	}
	return n
}

// InLine reports whether index is part of the winning line.
func (s Snapshot) InLine(index int) bool {
	if s.Phase != PhaseWon {
		return false
	}
	for _, i := range s.Line {
		if i == index {
			return true
		}
	}
	return false
}

// Snapshot captures the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Board:         e.board.Cells(),
		Active:        e.active,
		Phase:         e.phase,
		Winner:        e.winner,
		Line:          e.line,
		TimeRemaining: e.clock.Remaining(),
		TurnLimit:     e.clock.Limit(),
		LastPlaced:    e.lastPlaced,
		Thinking:      e.thinking,
		Mode:          e.cfg.Mode,
		Difficulty:    e.cfg.Difficulty,
		Ledgers: map[Seat][]Mark{
			Seat1: e.board.Ledger(Seat1),
			Seat2: e.board.Ledger(Seat2),
		},
	}
}

// Grid returns the ownership view of the captured board.
func (s Snapshot) Grid() Grid {
	var g Grid
	for i, c := range s.Board {
		g[i] = c.Owner
	}
	return g
}
