package blink

// MaxLiveMarks is how many marks a seat may have on the board at once.
const MaxLiveMarks = 3

// Mark is one live placement: the cell it occupies and the symbol drawn there.
type Mark struct {
	Index  int
	Symbol string
}

// Ledger records a seat's live marks in placement order.
// Pushing past MaxLiveMarks evicts the oldest entry (FIFO).
type Ledger struct {
	marks []Mark
}

// Len returns the number of live marks.
func (l *Ledger) Len() int {
	return len(l.marks)
}

// Marks returns a copy of the live marks, oldest first.
func (l *Ledger) Marks() []Mark {
	out := make([]Mark, len(l.marks))
	copy(out, l.marks)
	return out
}

// Indices returns the occupied cell indices, oldest first.
func (l *Ledger) Indices() []int {
	out := make([]int, len(l.marks))
	for i, m := range l.marks {
		out[i] = m.Index
	}
	return out
}

// Symbols returns the symbols currently on the board for this seat.
func (l *Ledger) Symbols() []string {
	out := make([]string, len(l.marks))
	for i, m := range l.marks {
		out[i] = m.Symbol
	}
	return out
}

// Oldest returns the mark that would vanish on the next overflow.
func (l *Ledger) Oldest() (Mark, bool) {
	if len(l.marks) == 0 {
		return Mark{}, false
	}
	return l.marks[0], true
}

// Full reports whether the next push will evict.
func (l *Ledger) Full() bool {
	return len(l.marks) >= MaxLiveMarks
}

// Push appends m. If the ledger was full the front entry is removed first
// and returned as evicted.
func (l *Ledger) Push(m Mark) (evicted Mark, ok bool) {
	if l.Full() {
		evicted = l.marks[0]
		ok = true
		l.marks = append(l.marks[:0], l.marks[1:]...)
	}
	l.marks = append(l.marks, m)
	return evicted, ok
}

// Clear drops all marks.
func (l *Ledger) Clear() {
	l.marks = l.marks[:0]
}
