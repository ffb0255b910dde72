package blink

import (
	"fmt"
	"math/rand"
)

// BoardCells is the number of cells on the 3x3 board, indexed row-major.
const BoardCells = 9

// Seat identifies a player slot. In VsAI mode Seat2 is the computer.
type Seat int

const (
	NoSeat Seat = iota
	Seat1
	Seat2
)

// Other returns the opposing seat.
func (s Seat) Other() Seat {
	switch s {
	case Seat1:
		return Seat2
	case Seat2:
		return Seat1
	default:
		return NoSeat
	}
}

// Valid reports whether s is Seat1 or Seat2.
func (s Seat) Valid() bool {
	return s == Seat1 || s == Seat2
}

func (s Seat) String() string {
	switch s {
	case Seat1:
		return "Player 1"
	case Seat2:
		return "Player 2"
	default:
		return "nobody"
	}
}

// Cell is one board square. The zero value is empty.
type Cell struct {
	Owner  Seat
	Symbol string
}

// Empty reports whether nobody owns the cell.
func (c Cell) Empty() bool {
	return c.Owner == NoSeat
}

// Palette is the ordered set of symbols a seat draws from.
type Palette []string

// validate checks that p is usable for a match.
func (p Palette) validate() error {
	if len(p) == 0 {
		return ErrConfigurationIncomplete
	}
	seen := make(map[string]bool, len(p))
	for _, s := range p {
		if s == "" {
			return fmt.Errorf("%w: empty symbol", ErrInvalidPalette)
		}
		if seen[s] {
			return fmt.Errorf("%w: %q", ErrInvalidPalette, s)
		}
		seen[s] = true
	}
	return nil
}

// Grid is an ownership-only view of the board, used by the opponent search.
type Grid [BoardCells]Seat

// Empty returns the empty indices in ascending order.
func (g Grid) Empty() []int {
	out := make([]int, 0, BoardCells)
	for i, s := range g {
		if s == NoSeat {
			out = append(out, i)
		}
	}
	return out
}

// Full reports whether every cell is owned.
func (g Grid) Full() bool {
	for _, s := range g {
		if s == NoSeat {
			return false
		}
	}
	return true
}

// Indices returns the cells owned by seat.
func (g Grid) Indices(seat Seat) []int {
	var out []int
	for i, s := range g {
		if s == seat {
			out = append(out, i)
		}
	}
	return out
}

// Swapped returns g with Seat1 and Seat2 exchanged, so an Opponent can
// choose moves for Seat1.
func (g Grid) Swapped() Grid {
	for i, s := range g {
		g[i] = s.Other()
	}
	return g
}

// Placement describes an accepted placement.
type Placement struct {
	Seat    Seat
	Index   int
	Symbol  string
	Evicted int // cell vacated by the seat's oldest mark, or -1
}

// Board is the 3x3 grid derived from both seats' ledgers.
type Board struct {
	cells    [BoardCells]Cell
	ledgers  [3]Ledger // indexed by Seat; slot 0 unused
	palettes [3]Palette
	rng      *rand.Rand
}

// NewBoard creates an empty board. Both palettes must be non-empty.
func NewBoard(p1, p2 Palette, rng *rand.Rand) (*Board, error) {
	for _, p := range []Palette{p1, p2} {
		if err := p.validate(); err != nil {
			return nil, err
		}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	b := &Board{rng: rng}
	b.palettes[Seat1] = append(Palette(nil), p1...)
	b.palettes[Seat2] = append(Palette(nil), p2...)
	return b, nil
}

// TryPlace puts a mark for seat at index. It fails without side effects when
// the index is out of range or the cell is owned by anyone.
func (b *Board) TryPlace(index int, seat Seat) (Placement, error) {
	if index < 0 || index >= BoardCells {
		return Placement{}, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	if !seat.Valid() {
		return Placement{}, ErrNotYourTurn
	}
	if !b.cells[index].Empty() {
		return Placement{}, fmt.Errorf("%w: %d", ErrCellOccupied, index)
	}

	symbol := b.pickSymbol(seat)
	placed := Placement{Seat: seat, Index: index, Symbol: symbol, Evicted: -1}

	ledger := &b.ledgers[seat]
	if evicted, ok := ledger.Push(Mark{Index: index, Symbol: symbol}); ok {
		// The vacated cell is cleared before the new mark lands.
		b.cells[evicted.Index] = Cell{}
		placed.Evicted = evicted.Index
	}
	b.cells[index] = Cell{Owner: seat, Symbol: symbol}

	return placed, nil
}

// pickSymbol draws uniformly from the palette symbols the seat is not
// currently showing, falling back to the full palette when all are live.
func (b *Board) pickSymbol(seat Seat) string {
	palette := b.palettes[seat]

	live := make(map[string]bool, MaxLiveMarks)
	for _, s := range b.ledgers[seat].Symbols() {
		live[s] = true
	}

	fresh := make([]string, 0, len(palette))
	for _, s := range palette {
		if !live[s] {
			fresh = append(fresh, s)
		}
	}
	if len(fresh) == 0 {
		fresh = palette
	}
	return fresh[b.rng.Intn(len(fresh))]
}

// Cell returns the cell at index; out-of-range indices read as empty.
func (b *Board) Cell(index int) Cell {
	if index < 0 || index >= BoardCells {
		return Cell{}
	}
	return b.cells[index]
}

// Cells returns a copy of all nine cells.
func (b *Board) Cells() [BoardCells]Cell {
	return b.cells
}

// Grid returns the ownership view of the board.
func (b *Board) Grid() Grid {
	var g Grid
	for i, c := range b.cells {
		g[i] = c.Owner
	}
	return g
}

// Empty returns the empty indices in ascending order.
func (b *Board) Empty() []int {
	return b.Grid().Empty()
}

// IsFull reports whether all nine cells are occupied. The sliding window
// keeps this false in real play; the opponent search relies on it.
func (b *Board) IsFull() bool {
	return b.Grid().Full()
}

// Ledger returns the live marks of seat, oldest first.
func (b *Board) Ledger(seat Seat) []Mark {
	if !seat.Valid() {
		return nil
	}
	return b.ledgers[seat].Marks()
}

// Indices returns the cells seat currently owns, in placement order.
func (b *Board) Indices(seat Seat) []int {
	if !seat.Valid() {
		return nil
	}
	return b.ledgers[seat].Indices()
}

// Fading returns the cell seat loses on its next placement, or -1 while
// the seat holds fewer than MaxLiveMarks marks.
func (b *Board) Fading(seat Seat) int {
	if !seat.Valid() || !b.ledgers[seat].Full() {
		return -1
	}
	m, _ := b.ledgers[seat].Oldest()
	return m.Index
}

// Palette returns a copy of the seat's palette.
func (b *Board) Palette(seat Seat) Palette {
	if !seat.Valid() {
		return nil
	}
	return append(Palette(nil), b.palettes[seat]...)
}

// Clear empties the board and both ledgers. Palettes are kept.
func (b *Board) Clear() {
	b.cells = [BoardCells]Cell{}
	b.ledgers[Seat1].Clear()
	b.ledgers[Seat2].Clear()
}
