package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
	"github.com/vovakirdan/blink-tac-toe/internal/core"
	"github.com/vovakirdan/blink-tac-toe/internal/registry"
)

// Board layout constants
const (
	cellWidth  = 6 // Inner width of a cell; an emoji takes two columns
	boardWidth = core.BoardSide * (cellWidth + 2)
)

var (
	colorBorder  = lipgloss.Color("240")
	colorCursor  = lipgloss.Color("229")
	colorLine    = lipgloss.Color("57")
	colorPlayer1 = lipgloss.Color("212")
	colorPlayer2 = lipgloss.Color("86")
	colorMuted   = lipgloss.Color("241")

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCursor)

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// BoardView holds what RenderBoard needs besides the snapshot.
type BoardView struct {
	Cursor     core.Cursor
	ShowCursor bool
}

// RenderBoard draws the 3x3 grid. Empty cells show the digit that places
// on them; the active seat's oldest mark is dimmed once it holds three,
// since that mark vanishes on the seat's next placement.
func RenderBoard(snap blink.Snapshot, view BoardView) string {
	fading := -1
	if snap.Phase == blink.PhaseInProgress && snap.Owned(snap.Active) == blink.MaxLiveMarks {
		fading = snap.Oldest(snap.Active)
	}

	rows := make([]string, 0, core.BoardSide)
	for r := 0; r < core.BoardSide; r++ {
		cells := make([]string, 0, core.BoardSide)
		for c := 0; c < core.BoardSide; c++ {
			i := r*core.BoardSide + c
			cells = append(cells, renderCell(snap, i, view.ShowCursor && view.Cursor.Index() == i, i == fading))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(snap blink.Snapshot, i int, cursor, fading bool) string {
	cell := snap.Board[i]
	style := cellStyle

	content := mutedStyle.Render(fmt.Sprintf("%d", i+1))
	if !cell.Empty() {
		content = cell.Symbol
	}

	switch {
	case snap.InLine(i):
		style = style.Background(colorLine).BorderForeground(seatColor(snap.Winner))
	case cursor:
		style = style.BorderForeground(colorCursor).Bold(true)
	case !cell.Empty():
		style = style.BorderForeground(seatColor(cell.Owner))
	}
	if fading {
		style = style.Faint(true)
	}
	return style.Render(content)
}

func seatColor(seat blink.Seat) lipgloss.Color {
	switch seat {
	case blink.Seat1:
		return colorPlayer1
	case blink.Seat2:
		return colorPlayer2
	default:
		return colorBorder
	}
}

// seatName returns the display name for a seat in the given mode.
func seatName(seat blink.Seat, mode blink.Mode) string {
	if seat == blink.Seat2 && mode == blink.ModeVsAI {
		return "Computer"
	}
	if seat == blink.Seat1 && mode == blink.ModeVsAI {
		return "You"
	}
	return seat.String()
}

// seatLabel renders "Player 1 🐶 Animals" in the seat's colour.
func seatLabel(seat blink.Seat, mode blink.Mode, cat registry.Category) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(seatColor(seat))
	first := ""
	if len(cat.Symbols) > 0 {
		first = cat.Symbols[0] + " "
	}
	return style.Render(seatName(seat, mode)) + " " + first + cat.Title
}

// clockBar renders the remaining turn time as a bar, e.g. "██████░░░░ 6s".
func clockBar(remaining, limit int) string {
	if limit <= 0 {
		return ""
	}
	remaining = core.Clamp(remaining, 0, limit)
	const width = 10
	filled := remaining * width / limit

	color := lipgloss.Color("78")
	if remaining*3 <= limit {
		color = lipgloss.Color("203")
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %ds", bar, remaining)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// centerBlock centers a multi-line block within width.
func centerBlock(block string, width int) string {
	if width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
