// Package core provides fundamental types and utilities for the terminal
// front end. It contains no external dependencies (especially no Bubble Tea)
// so that input handling stays pure and testable.
package core

// BoardSide is the number of rows and columns on the board.
const BoardSide = 3

// Cursor is a position on the 3x3 board.
type Cursor struct {
	Row, Col int
}

// CursorAt returns the cursor for a row-major board index.
// Out-of-range indices are clamped onto the board.
func CursorAt(index int) Cursor {
	index = Clamp(index, 0, BoardSide*BoardSide-1)
	return Cursor{Row: index / BoardSide, Col: index % BoardSide}
}

// Index returns the row-major board index under the cursor.
func (c Cursor) Index() int {
	return c.Row*BoardSide + c.Col
}

// Move returns the cursor shifted by one cell for a directional action.
// Movement stops at the edges; non-directional actions are ignored.
func (c Cursor) Move(a Action) Cursor {
	switch a {
	case ActionUp:
		c.Row--
	case ActionDown:
		c.Row++
	case ActionLeft:
		c.Col--
	case ActionRight:
		c.Col++
	}
	c.Row = Clamp(c.Row, 0, BoardSide-1)
	c.Col = Clamp(c.Col, 0, BoardSide-1)
	return c
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Wrap returns val modulo n, always in [0, n). Used for menu selections.
func Wrap(val, n int) int {
	if n <= 0 {
		return 0
	}
	val %= n
	if val < 0 {
		val += n
	}
	return val
}
