package blink

import (
	"math/rand"
	"testing"
)

// grid builds a Grid from human (Seat1) and computer (Seat2) cells.
func grid(human, computer []int) Grid {
	var g Grid
	for _, i := range human {
		g[i] = Seat1
	}
	for _, i := range computer {
		g[i] = Seat2
	}
	return g
}

func TestBlockingMove(t *testing.T) {
	tests := []struct {
		name     string
		g        Grid
		fading   int
		expected int
		ok       bool
	}{
		{"row 0 threat", grid([]int{0, 1}, []int{4}), -1, 2, true},
		{"column threat", grid([]int{2, 8}, []int{0}), -1, 5, true},
		{"diagonal threat", grid([]int{2, 6}, []int{0}), -1, 4, true},
		{"already blocked", grid([]int{0, 1}, []int{2}), -1, -1, false},
		{"no threat", grid([]int{0, 5}, []int{4}), -1, -1, false},
		// Rows come before columns: 0,1 (row) beats 3,6 (column).
		{"first line wins tie", grid([]int{0, 1, 3}, []int{4}), -1, 2, true},
		{"column before diagonal", grid([]int{1, 4}, []int{0}), -1, 7, true},
		// 0 vanishes on the next placement, so 0-1-2 is no threat but 1-4-7 is.
		{"skips line through fading cell", grid([]int{0, 1, 7}, []int{3, 6}), 0, 4, true},
		{"only threat is fading", grid([]int{0, 1, 5}, []int{4}), 0, -1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			idx, ok := BlockingMove(tc.g, Seat1, tc.fading)
			if ok != tc.ok || idx != tc.expected {
				t.Errorf("BlockingMove() = (%d, %v), expected (%d, %v)", idx, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestMediumIgnoresThreatThatFades(t *testing.T) {
	// Human ledger is 0,1,7 with 0 oldest. Playing 4 evicts 0 and completes
	// 1-4-7, so 4 is the cell to block, not 2.
	o := NewOpponent(Medium, 0)
	g := grid([]int{0, 1, 7}, []int{3, 6})

	for seed := int64(0); seed < 20; seed++ {
		idx, err := o.ChooseMove(g, 0, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("ChooseMove() failed: %v", err)
		}
		if idx != 4 {
			t.Fatalf("seed %d: medium chose %d, expected 4", seed, idx)
		}
	}
}

func TestEasyPicksEmptyCells(t *testing.T) {
	o := NewOpponent(Easy, 0)
	rng := rand.New(rand.NewSource(1))
	g := grid([]int{0, 1}, []int{4})

	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		idx, err := o.ChooseMove(g, -1, rng)
		if err != nil {
			t.Fatalf("ChooseMove() failed: %v", err)
		}
		if g[idx] != NoSeat {
			t.Fatalf("ChooseMove() picked occupied cell %d", idx)
		}
		seen[idx] = true
	}
	if len(seen) != len(g.Empty()) {
		t.Errorf("easy opponent used %d of %d empty cells", len(seen), len(g.Empty()))
	}
}

func TestMediumBlocks(t *testing.T) {
	o := NewOpponent(Medium, 0)
	g := grid([]int{0, 1}, []int{4})

	for seed := int64(0); seed < 20; seed++ {
		idx, err := o.ChooseMove(g, -1, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("ChooseMove() failed: %v", err)
		}
		if idx != 2 {
			t.Fatalf("seed %d: medium chose %d, expected 2", seed, idx)
		}
	}
}

func TestMediumWithoutThreatIsRandom(t *testing.T) {
	o := NewOpponent(Medium, 0)
	g := grid([]int{4}, nil)

	seen := make(map[int]bool)
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		idx, _ := o.ChooseMove(g, -1, rng)
		seen[idx] = true
	}
	if len(seen) < 2 {
		t.Errorf("medium without a threat always chose %v", seen)
	}
}

func TestHardBlocksBeforeSearching(t *testing.T) {
	// The computer could win at 5 (3,4,5), but the block override on row 0
	// takes priority.
	o := NewOpponent(Hard, 0)
	g := grid([]int{0, 1}, []int{3, 4})

	idx, err := o.ChooseMove(g, -1, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("ChooseMove() failed: %v", err)
	}
	if idx != 2 {
		t.Errorf("hard chose %d, expected block at 2", idx)
	}
}

func TestHardPrefersLowestIndexAmongEqualScores(t *testing.T) {
	// Computer at 3,4; human at 0,8 with no threat. Cell 1 creates a double
	// threat (3-4-5 and 1-4-7) and already scores +10, so the search keeps
	// it over the immediate win at 5.
	o := NewOpponent(Hard, 0)
	g := grid([]int{0, 8}, []int{3, 4})

	idx, err := o.ChooseMove(g, -1, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("ChooseMove() failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("hard chose %d, expected 1", idx)
	}
}

func TestHardSearchIgnoresEviction(t *testing.T) {
	// Computer holds 0,1,5 with 0 oldest. In the real game playing 2 evicts
	// 0 and wins nothing; the lookahead does not model eviction and still
	// scores 0-1-2 as a win.
	o := NewOpponent(Hard, 0)
	g := grid([]int{3, 4, 8}, []int{0, 1, 5})

	if _, ok := BlockingMove(g, Seat1, -1); ok {
		t.Fatal("fixture should not contain a human threat")
	}

	idx, err := o.ChooseMove(g, -1, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("ChooseMove() failed: %v", err)
	}
	if idx != 2 {
		t.Errorf("hard chose %d, expected 2", idx)
	}
}

func TestHardDepthOneOnlySeesImmediateWins(t *testing.T) {
	// With one ply every non-winning move scores 0; the win at 5 is the
	// only strictly better score.
	o := NewOpponent(Hard, 1)
	g := grid([]int{0, 8}, []int{3, 4})

	idx, _ := o.ChooseMove(g, -1, rand.New(rand.NewSource(1)))
	if idx != 5 {
		t.Errorf("depth-1 hard chose %d, expected 5", idx)
	}
}

func TestChooseMoveOnFullGrid(t *testing.T) {
	var g Grid
	for i := range g {
		g[i] = Seat1
	}
	if _, err := NewOpponent(Hard, 0).ChooseMove(g, -1, rand.New(rand.NewSource(1))); err != ErrNoEmptyCell {
		t.Errorf("ChooseMove() error = %v, expected ErrNoEmptyCell", err)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
		ok   bool
	}{
		{"easy", Easy, true},
		{"Medium", Medium, true},
		{" hard ", Hard, true},
		{"insane", Easy, false},
	}
	for _, tc := range tests {
		got, err := ParseDifficulty(tc.in)
		if (err == nil) != tc.ok || got != tc.want {
			t.Errorf("ParseDifficulty(%q) = (%v, %v)", tc.in, got, err)
		}
	}
}
