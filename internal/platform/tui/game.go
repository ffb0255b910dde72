package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
	"github.com/vovakirdan/blink-tac-toe/internal/core"
	"github.com/vovakirdan/blink-tac-toe/internal/match"
)

// GameModel shows one live match and forwards input to its runner.
// Match state only ever arrives as session events; the model never
// touches the engine.
type GameModel struct {
	live      *LiveMatch
	keyMapper *KeyMapper
	help      help.Model
	spinner   spinner.Model
	config    core.RuntimeConfig

	snap   blink.Snapshot
	ready  bool // Set once the first snapshot arrived
	cursor core.Cursor
	tally  match.Tally

	status    string
	statusSeq int // Guards against clearing a newer status
	winText   string
	showRules bool

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for a started match.
func NewGameModel(live *LiveMatch, cfg core.RuntimeConfig) GameModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPlayer2)

	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		live:      live,
		keyMapper: NewKeyMapper(),
		help:      h,
		spinner:   s,
		config:    cfg,
		cursor:    core.CursorAt(4),
	}
}

// Init starts the spinner animation.
func (m GameModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles key presses and session events.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case match.SnapshotEvent:
		if msg.MatchID == m.live.Runner.ID() {
			m.snap = msg.Snapshot
			m.ready = true
			switch {
			case m.snap.Phase == blink.PhaseInProgress:
				m.winText = ""
			case m.winText == "":
				m.winText = m.winMessage(m.snap.Winner)
			}
		}
		return m, nil

	case match.MatchEndedEvent:
		if msg.MatchID == m.live.Runner.ID() {
			m.tally = msg.Tally
			m.winText = m.winMessage(msg.Winner)
		}
		return m, nil

	case match.TurnTimedOutEvent:
		if msg.MatchID == m.live.Runner.ID() {
			return m.flash(fmt.Sprintf("⏰ %s ran out of time", seatName(msg.Seat, m.live.Selection.Mode)))
		}
		return m, nil

	case match.MoveRejectedEvent:
		if msg.MatchID == m.live.Runner.ID() {
			return m.flash(rejectionText(msg.Err))
		}
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.keyMapper.MapKey(msg)

	if in.Action == core.ActionQuit {
		m.live.Stop()
		m.quitting = true
		return m, tea.Quit
	}

	if m.showRules {
		if in.Action == core.ActionHelp || in.Action == core.ActionBack {
			m.showRules = false
		}
		return m, nil
	}

	switch in.Action {
	case core.ActionHelp:
		m.showRules = true

	case core.ActionBack:
		m.live.Stop()
		m.backToMenu = true

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.cursor = m.cursor.Move(in.Action)

	case core.ActionPlace:
		return m.submit(m.cursor.Index())

	case core.ActionCell:
		m.cursor = core.CursorAt(in.Cell)
		return m.submit(in.Cell)

	case core.ActionRestart:
		if m.snap.Phase != blink.PhaseWon {
			return m.flash("Finish this match first")
		}
		m.live.Runner.Reset()
		m.status = ""
	}

	return m, nil
}

// submit sends a move to the runner. The runner answers with a snapshot or
// a MoveRejectedEvent.
func (m GameModel) submit(cell int) (tea.Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	if m.snap.Phase == blink.PhaseWon {
		return m.flash("The match is over: press r to play again")
	}
	m.live.Runner.Move(cell)
	return m, nil
}

// flash shows a status line that clears itself after a moment.
func (m GameModel) flash(text string) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	return m, clearStatusAfter(m.statusSeq)
}

func (m GameModel) winMessage(winner blink.Seat) string {
	if m.live.Selection.Mode == blink.ModeVsAI {
		if winner == blink.Seat1 {
			return "🎉 You win!"
		}
		return "🤖 The computer wins"
	}
	return fmt.Sprintf("🎉 %s wins!", winner)
}

func rejectionText(err error) string {
	switch {
	case errors.Is(err, blink.ErrCellOccupied):
		return "That cell is taken"
	case errors.Is(err, blink.ErrInvalidIndex):
		return "There is no such cell"
	case errors.Is(err, blink.ErrMatchDecided):
		return "The match is over: press r to play again"
	case errors.Is(err, blink.ErrNotYourTurn):
		return "Wait for the computer to move"
	case err != nil:
		return err.Error()
	default:
		return ""
	}
}

// View renders the match.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	width := m.config.ScreenW

	if m.showRules {
		return lipgloss.Place(width, m.config.ScreenH, lipgloss.Center, lipgloss.Center, renderRules(width))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("B L I N K   T A C   T O E"), width))
	b.WriteString("\n\n")

	if !m.ready {
		b.WriteString(centerText(m.spinner.View()+" Starting match...", width))
		return b.String()
	}

	b.WriteString(centerText(m.renderHeader(), width))
	b.WriteString("\n\n")
	board := RenderBoard(m.snap, BoardView{
		Cursor:     m.cursor,
		ShowCursor: m.snap.Phase == blink.PhaseInProgress,
	})
	b.WriteString(centerBlock(board, width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTurn(), width))
	b.WriteString("\n")
	b.WriteString(centerText(m.status, width))
	b.WriteString("\n\n")
	b.WriteString(centerText(mutedStyle.Render(m.help.View(m.keyMapper.Keys())), width))

	return b.String()
}

// renderHeader shows both seats, the active marker and the session tally.
func (m GameModel) renderHeader() string {
	mode := m.live.Selection.Mode
	left := seatLabel(blink.Seat1, mode, m.live.Player1)
	right := seatLabel(blink.Seat2, mode, m.live.Player2)

	if m.snap.Phase == blink.PhaseInProgress {
		if m.snap.Active == blink.Seat1 {
			left = "▶ " + left
		} else {
			right = right + " ◀"
		}
	}

	score := titleStyle.Render(fmt.Sprintf("%d : %d", m.tally.Player1, m.tally.Player2))
	return left + "    " + score + "    " + right
}

// renderTurn shows whose turn it is, the clock, or the result.
func (m GameModel) renderTurn() string {
	if m.snap.Phase == blink.PhaseWon {
		win := lipgloss.NewStyle().Bold(true).Foreground(seatColor(m.snap.Winner)).Render(m.winText)
		return win + "  " + mutedStyle.Render("r: play again · c: change categories")
	}

	if m.snap.Thinking {
		return m.spinner.View() + " The computer is thinking..."
	}

	who := seatName(m.snap.Active, m.snap.Mode)
	turn := who + "'s turn"
	if who == "You" {
		turn = "Your turn"
	}
	if bar := clockBar(m.snap.TimeRemaining, m.snap.TurnLimit); bar != "" {
		turn += "   " + bar
	}
	return turn
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Tally returns the session tally shown in the header.
func (m GameModel) Tally() match.Tally {
	return m.tally
}
