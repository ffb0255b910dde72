package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
	_ "github.com/vovakirdan/blink-tac-toe/internal/categories"
	"github.com/vovakirdan/blink-tac-toe/internal/core"
)

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func pressMenu(m MenuModel, msgs ...tea.KeyMsg) MenuModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

func newTestMenu(p1, p2 string) MenuModel {
	return NewMenuModel(Selection{Mode: blink.ModeTwoPlayer, Player1: p1, Player2: p2}, core.DefaultConfig())
}

func TestMenuSkipsCategoryHeldByOtherSeat(t *testing.T) {
	m := newTestMenu("animals", "food")
	m = pressMenu(m, keyDown, keyDown)
	if m.field != fieldPlayer2 {
		t.Fatalf("field = %v, expected player 2", m.field)
	}

	// Stepping back from food would land on animals, which player 1 holds.
	m = pressMenu(m, keyLeft)
	if got := m.Selection().Player2; got == "animals" || got == "" {
		t.Errorf("player 2 picked %q, expected a free category", got)
	}

	for i := 0; i < 10; i++ {
		m = pressMenu(m, keyRight)
		if m.Selection().Player2 == m.Selection().Player1 {
			t.Fatalf("step %d: both seats hold %q", i, m.Selection().Player1)
		}
	}
}

func TestMenuDropsClashingPreselection(t *testing.T) {
	m := newTestMenu("animals", "animals")
	if m.Selection().Player2 != "" {
		t.Errorf("player 2 = %q, expected unpicked", m.Selection().Player2)
	}

	// Mode, Player 1, Player 2, Start.
	m = pressMenu(m, keyDown, keyDown, keyDown, keyEnter)
	if _, ok := m.Chosen(); ok {
		t.Error("match started without a category for player 2")
	}
	if m.message == "" {
		t.Error("expected a message asking both players to pick")
	}

	m = pressMenu(m, keyUp, keyRight, keyDown, keyEnter)
	sel, ok := m.Chosen()
	if !ok {
		t.Fatalf("match did not start, message %q", m.message)
	}
	if sel.Player1 != "animals" || sel.Player2 == "animals" || sel.Player2 == "" {
		t.Errorf("Chosen() = %+v", sel)
	}
}

func TestMenuDifficultyOnlyAgainstComputer(t *testing.T) {
	m := newTestMenu("animals", "food")
	for _, f := range m.fields() {
		if f == fieldDifficulty {
			t.Fatal("difficulty shown in two-player mode")
		}
	}

	m = pressMenu(m, keyRight)
	if m.mode != blink.ModeVsAI {
		t.Fatalf("mode = %v, expected ai", m.mode)
	}

	m = pressMenu(m, keyDown)
	if m.field != fieldDifficulty {
		t.Fatalf("field = %v, expected difficulty", m.field)
	}

	start := m.difficulty
	m = pressMenu(m, keyRight, keyRight, keyRight)
	if m.difficulty != start {
		t.Errorf("difficulty after a full cycle = %v, expected %v", m.difficulty, start)
	}
}

func TestMenuStartsWithSelection(t *testing.T) {
	m := newTestMenu("sports", "space")
	m = pressMenu(m, keyDown, keyDown, keyDown, keyEnter)

	sel, ok := m.Chosen()
	if !ok {
		t.Fatal("Chosen() = false, expected a selection")
	}
	expected := Selection{Mode: blink.ModeTwoPlayer, Difficulty: blink.Easy, Player1: "sports", Player2: "space"}
	if sel != expected {
		t.Errorf("Chosen() = %+v, expected %+v", sel, expected)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := pressMenu(newTestMenu("animals", "food"), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	m = pressMenu(newTestMenu("animals", "food"), runes("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}
