package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
	"github.com/vovakirdan/blink-tac-toe/internal/registry"
	"github.com/vovakirdan/blink-tac-toe/internal/storage"
)

// scoreTab filters the tally table by mode.
type scoreTab struct {
	title string
	mode  string // empty for every mode
}

var scoreTabs = []scoreTab{
	{title: "All", mode: ""},
	{title: "Two players", mode: blink.ModeTwoPlayer.String()},
	{title: "vs Computer", mode: blink.ModeVsAI.String()},
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the win tally screen.
type ScoreboardModel struct {
	store     *storage.Store
	entries   []storage.TallyEntry
	totals    map[string]storage.ModeTotals
	err       error
	tab       int
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the screen.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Player 1", Width: 12},
		{Title: "Player 2", Width: 12},
		{Title: "Level", Width: 8},
		{Title: "P1 wins", Width: 8},
		{Title: "P2 wins", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)), // Leave room for title, tabs, totals and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorCursor).
		Background(colorLine).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads every tally from the store.
func (m *ScoreboardModel) load() {
	m.entries, m.totals, m.err = nil, nil, nil
	if m.store != nil {
		if m.entries, m.err = m.store.Tallies(); m.err == nil {
			m.totals, m.err = m.store.TotalsByMode()
		}
	}
	m.updateTableRows()
}

// visible returns the entries matching the current tab.
func (m ScoreboardModel) visible() []storage.TallyEntry {
	mode := scoreTabs[m.tab].mode
	if mode == "" {
		return m.entries
	}
	out := make([]storage.TallyEntry, 0, len(m.entries))
	for _, e := range m.entries {
		if e.Mode == mode {
			out = append(out, e)
		}
	}
	return out
}

// updateTableRows updates the table with the current tab's tallies.
func (m *ScoreboardModel) updateTableRows() {
	entries := m.visible()
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		level := e.Difficulty
		if level == "" {
			level = "-"
		}
		rows[i] = table.Row{
			categoryTitle(e.Player1Category),
			categoryTitle(e.Player2Category),
			level,
			fmt.Sprintf("%d", e.Player1Wins),
			fmt.Sprintf("%d", e.Player2Wins),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// categoryTitle shows the registered title, or the raw ID for categories
// that are no longer configured.
func categoryTitle(id string) string {
	if c, err := registry.Lookup(id); err == nil {
		return c.Title
	}
	return id
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % len(scoreTabs)
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + len(scoreTabs) - 1) % len(scoreTabs)
			m.updateTableRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("WIN TALLIES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	switch {
	case m.store == nil:
		b.WriteString(centerText("No database configured.", m.width))
	case m.err != nil:
		b.WriteString(centerText(fmt.Sprintf("Cannot read tallies: %v", m.err), m.width))
	case len(m.visible()) == 0:
		b.WriteString(centerText("No matches won yet.", m.width))
	default:
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
		b.WriteString(centerBlock(tableStyle.Render(m.table.View()), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(m.renderTotals(), m.width))
	}

	b.WriteString("\n\n")
	b.WriteString(centerText(mutedStyle.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

// renderTabs renders the mode tabs.
func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().Foreground(colorMuted)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorCursor).
		Background(colorLine).
		Padding(0, 1)

	tabs := make([]string, len(scoreTabs))
	for i, t := range scoreTabs {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(t.title)
		} else {
			tabs[i] = tabStyle.Render(" " + t.title + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderTotals sums the seats across the current tab.
func (m ScoreboardModel) renderTotals() string {
	var p1, p2 int
	for mode, t := range m.totals {
		if want := scoreTabs[m.tab].mode; want != "" && want != mode {
			continue
		}
		p1 += t.Player1Wins
		p2 += t.Player2Wins
	}
	return mutedStyle.Render(fmt.Sprintf("Total  Player 1: %d  ·  Player 2: %d", p1, p2))
}

// IsQuitting returns true if user requested to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// GoingBack returns true if user pressed back.
func (m ScoreboardModel) GoingBack() bool {
	return m.goingBack
}

// RunScoreboard runs the scoreboard as a standalone program.
func RunScoreboard(store *storage.Store, width, height int) error {
	model := NewScoreboardModel(store, width, height)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
