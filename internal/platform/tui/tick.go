// Package tui provides the Bubble Tea front end for Blink Tac Toe.
// It handles the terminal UI loop, input mapping and match orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTTL is how long a flashed status line stays visible.
const statusTTL = 2 * time.Second

// clearStatusMsg clears the status line if nothing newer replaced it.
type clearStatusMsg struct {
	seq int
}

// clearStatusAfter returns a command that sends a clearStatusMsg after statusTTL.
func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
