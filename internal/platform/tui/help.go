package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// rules is the text of the help overlay.
var rules = []string{
	"Get three of your emojis in a row, column or diagonal to win.",
	"Each player may have only three emojis on the board at once.",
	"Placing a fourth makes your oldest emoji vanish (it is shown dimmed).",
	"A vanished emoji frees its cell for either player.",
	"There are no draws: play continues until someone wins.",
	"If your clock runs out a random move is played for you.",
	"Against the computer a timed-out turn is skipped instead.",
}

var helpBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorCursor).
	Padding(1, 2)

// renderRules renders the rules box, wrapping to width.
func renderRules(width int) string {
	inner := 60
	if width > 0 && width-8 < inner {
		inner = max(width-8, 20)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("How to play"))
	b.WriteString("\n\n")
	for _, r := range rules {
		b.WriteString(lipgloss.NewStyle().Width(inner).Render("• " + r))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or esc to close"))

	return helpBoxStyle.Render(b.String())
}
