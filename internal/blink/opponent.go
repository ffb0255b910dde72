package blink

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Difficulty selects the opponent's move strategy.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DefaultSearchDepth is the number of plies the hard opponent looks ahead,
// counting its own candidate move.
const DefaultSearchDepth = 3

// Leaf scores used by the minimax search.
const (
	scoreWin  = 10
	scoreLoss = -10
	scoreDraw = 0
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty converts a name like "hard" into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium", "normal":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return Easy, fmt.Errorf("blink: unknown difficulty %q", s)
	}
}

// Opponent picks moves for the computer seat.
type Opponent struct {
	difficulty Difficulty
	depth      int
	seat       Seat
}

// NewOpponent creates an opponent playing Seat2. A depth below one falls
// back to DefaultSearchDepth; only Hard uses it.
func NewOpponent(d Difficulty, depth int) *Opponent {
	if depth < 1 {
		depth = DefaultSearchDepth
	}
	return &Opponent{
		difficulty: d,
		depth:      depth,
		seat:       Seat2,
	}
}

// Difficulty returns the configured tier.
func (o *Opponent) Difficulty() Difficulty {
	return o.difficulty
}

// Seat returns the seat the opponent plays.
func (o *Opponent) Seat() Seat {
	return o.seat
}

// ChooseMove returns the cell the opponent wants to play on g. fading is
// the human cell that vanishes on the human's next placement, or -1; see
// Board.Fading.
func (o *Opponent) ChooseMove(g Grid, fading int, rng *rand.Rand) (int, error) {
	empty := g.Empty()
	if len(empty) == 0 {
		return -1, ErrNoEmptyCell
	}

	switch o.difficulty {
	case Medium:
		if idx, ok := BlockingMove(g, o.seat.Other(), fading); ok {
			return idx, nil
		}
	case Hard:
		if idx, ok := BlockingMove(g, o.seat.Other(), fading); ok {
			return idx, nil
		}
		return o.bestMove(g), nil
	}

	return empty[rng.Intn(len(empty))], nil
}

// BlockingMove finds the first line, in Lines order, where threat holds two
// cells and the third is empty. It returns that empty cell. A line through
// fading is no threat: threat's next placement clears that cell before the
// new mark lands, so the line can't be completed.
func BlockingMove(g Grid, threat Seat, fading int) (int, bool) {
	for _, line := range Lines {
		if fading >= 0 && (line[0] == fading || line[1] == fading || line[2] == fading) {
			continue
		}
		owned, free := 0, -1
		for _, i := range line {
			switch g[i] {
			case threat:
				owned++
			case NoSeat:
				free = i
			}
		}
		if owned == 2 && free >= 0 {
			return free, true
		}
	}
	return -1, false
}

// bestMove runs the depth-limited search. The lookahead treats the game as
// classic tic-tac-toe: simulated marks are never evicted.
func (o *Opponent) bestMove(g Grid) int {
	best, bestScore := -1, math.MinInt
	for _, i := range g.Empty() {
		g[i] = o.seat
		score := o.minimax(g, o.depth-1, false)
		g[i] = NoSeat

		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func (o *Opponent) minimax(g Grid, depth int, maximizing bool) int {
	switch {
	case HasLine(g.Indices(o.seat)):
		return scoreWin
	case HasLine(g.Indices(o.seat.Other())):
		return scoreLoss
	case g.Full(), depth <= 0:
		return scoreDraw
	}

	if maximizing {
		best := math.MinInt
		for _, i := range g.Empty() {
			g[i] = o.seat
			best = max(best, o.minimax(g, depth-1, false))
			g[i] = NoSeat
		}
		return best
	}

	best := math.MaxInt
	for _, i := range g.Empty() {
		g[i] = o.seat.Other()
		best = min(best, o.minimax(g, depth-1, true))
		g[i] = NoSeat
	}
	return best
}
