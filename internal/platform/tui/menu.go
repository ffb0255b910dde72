package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
	"github.com/vovakirdan/blink-tac-toe/internal/core"
	"github.com/vovakirdan/blink-tac-toe/internal/registry"
)

// menuField is one row of the setup menu.
type menuField int

const (
	fieldMode menuField = iota
	fieldDifficulty
	fieldPlayer1
	fieldPlayer2
	fieldStart
)

// difficultyCount is the number of opponent tiers.
const difficultyCount = 3

// MenuModel is the Bubble Tea model for the match setup screen. Each seat
// picks a category; a category held by one seat cannot be picked by the
// other.
type MenuModel struct {
	categories     []registry.Category
	mode           blink.Mode
	difficulty     blink.Difficulty
	p1, p2         int // Index into categories, -1 while unpicked
	field          menuField
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	message        string
	showRules      bool
	quitting       bool
	chosen         *Selection // Set when the user starts a match
	openScoreboard bool       // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a setup menu preselected from sel. Unknown or
// clashing categories start unpicked.
func NewMenuModel(sel Selection, cfg core.RuntimeConfig) MenuModel {
	cats := registry.List()
	m := MenuModel{
		categories: cats,
		mode:       sel.Mode,
		difficulty: sel.Difficulty,
		p1:         categoryIndex(cats, sel.Player1),
		p2:         categoryIndex(cats, sel.Player2),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
	if m.p2 == m.p1 {
		m.p2 = -1
	}
	return m
}

func categoryIndex(cats []registry.Category, id string) int {
	for i, c := range cats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.showRules {
		switch action {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionHelp, MenuActionBack, MenuActionSelect:
			m.showRules = false
		}
		return m, nil
	}

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.field = m.step(-1)

	case MenuActionDown:
		m.field = m.step(1)

	case MenuActionLeft:
		m.change(-1)

	case MenuActionRight:
		m.change(1)

	case MenuActionSelect:
		if m.field == fieldStart {
			m.start()
		} else {
			m.field = m.step(1)
		}

	case MenuActionScoreboard:
		m.openScoreboard = true

	case MenuActionHelp:
		m.showRules = true
	}

	return m, nil
}

// fields returns the visible rows. Difficulty only applies against the
// computer.
func (m MenuModel) fields() []menuField {
	if m.mode == blink.ModeVsAI {
		return []menuField{fieldMode, fieldDifficulty, fieldPlayer1, fieldPlayer2, fieldStart}
	}
	return []menuField{fieldMode, fieldPlayer1, fieldPlayer2, fieldStart}
}

// step returns the field dir rows away from the current one, clamped.
func (m MenuModel) step(dir int) menuField {
	fields := m.fields()
	pos := 0
	for i, f := range fields {
		if f == m.field {
			pos = i
		}
	}
	return fields[core.Clamp(pos+dir, 0, len(fields)-1)]
}

// change cycles the value of the focused row.
func (m *MenuModel) change(dir int) {
	m.message = ""
	switch m.field {
	case fieldMode:
		if m.mode == blink.ModeVsAI {
			m.mode = blink.ModeTwoPlayer
		} else {
			m.mode = blink.ModeVsAI
		}
	case fieldDifficulty:
		m.difficulty = blink.Difficulty(core.Wrap(int(m.difficulty)+dir, difficultyCount))
	case fieldPlayer1:
		m.p1 = m.nextCategory(m.p1, m.p2, dir)
	case fieldPlayer2:
		m.p2 = m.nextCategory(m.p2, m.p1, dir)
	}
}

// nextCategory returns the next index from cur in direction dir that is
// not taken by the other seat. It returns cur when nothing else is free.
func (m MenuModel) nextCategory(cur, taken, dir int) int {
	n := len(m.categories)
	if n == 0 {
		return cur
	}
	start := cur
	if start < 0 && dir < 0 {
		start = n
	}
	for step := 1; step <= n; step++ {
		i := core.Wrap(start+dir*step, n)
		if i != taken {
			return i
		}
	}
	return cur
}

// start validates the picks and records the selection.
func (m *MenuModel) start() {
	if m.p1 < 0 || m.p2 < 0 {
		m.message = "Both players must pick a category"
		return
	}
	if m.p1 == m.p2 {
		m.message = "Players must pick different categories"
		return
	}
	m.chosen = &Selection{
		Mode:       m.mode,
		Difficulty: m.difficulty,
		Player1:    m.categories[m.p1].ID,
		Player2:    m.categories[m.p2].ID,
	}
}

// View renders the menu.
func (m MenuModel) View() string {
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
	b.WriteString(centerText("Set up a match", width))
	b.WriteString("\n\n")

	rows := make([]string, 0, len(m.fields()))
	for _, f := range m.fields() {
		rows = append(rows, m.renderField(f))
	}
	b.WriteString(centerBlock(strings.Join(rows, "\n"), width))
	b.WriteString("\n\n")

	b.WriteString(centerBlock(m.renderCategories(), width))
	b.WriteString("\n\n")

	if m.message != "" {
		warn := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
		b.WriteString(centerText(warn.Render(m.message), width))
		b.WriteString("\n\n")
	}

	controls := "↑/↓: Move  |  ←/→: Change  |  Enter: Start  |  Tab: Scores  |  ?: Rules  |  Q: Quit"
	b.WriteString(centerText(mutedStyle.Render(controls), width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) renderField(f menuField) string {
	cursor := "  "
	style := lipgloss.NewStyle()
	if f == m.field {
		cursor = "> "
		style = style.Bold(true).Foreground(colorCursor)
	}

	var label, value string
	switch f {
	case fieldMode:
		label = "Mode"
		value = "Two players"
		if m.mode == blink.ModeVsAI {
			value = "Against the computer"
		}
	case fieldDifficulty:
		label = "Difficulty"
		value = m.difficulty.String()
	case fieldPlayer1:
		label = seatName(blink.Seat1, m.mode)
		value = m.categoryName(m.p1)
	case fieldPlayer2:
		label = seatName(blink.Seat2, m.mode)
		value = m.categoryName(m.p2)
	case fieldStart:
		return cursor + style.Render("[ Start ]")
	}

	return cursor + style.Render(fmt.Sprintf("%-12s < %s >", label, value))
}

func (m MenuModel) categoryName(i int) string {
	if i < 0 || i >= len(m.categories) {
		return "pick a category"
	}
	c := m.categories[i]
	return c.Title + "  " + c.Preview()
}

// renderCategories lists every category with the seat holding it; a held
// category is greyed out for the other seat.
func (m MenuModel) renderCategories() string {
	var b strings.Builder
	for i, c := range m.categories {
		owner := "    "
		style := lipgloss.NewStyle()
		switch i {
		case m.p1:
			owner = lipgloss.NewStyle().Foreground(colorPlayer1).Render(" P1 ")
			style = style.Faint(m.field == fieldPlayer2)
		case m.p2:
			owner = lipgloss.NewStyle().Foreground(colorPlayer2).Render(" P2 ")
			style = style.Faint(m.field == fieldPlayer1)
		}
		b.WriteString(owner + style.Render(fmt.Sprintf("%-10s %s", c.Title, c.Preview())))
		if i < len(m.categories)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Chosen returns the selection once the user started a match.
func (m MenuModel) Chosen() (Selection, bool) {
	if m.chosen == nil {
		return Selection{}, false
	}
	return *m.chosen, true
}

// Selection returns the current, possibly incomplete, picks.
func (m MenuModel) Selection() Selection {
	sel := Selection{Mode: m.mode, Difficulty: m.difficulty}
	if m.p1 >= 0 {
		sel.Player1 = m.categories[m.p1].ID
	}
	if m.p2 >= 0 {
		sel.Player2 = m.categories[m.p2].ID
	}
	return sel
}

// SetMessage shows a warning below the menu, e.g. when a match failed to start.
func (m *MenuModel) SetMessage(msg string) {
	m.message = msg
	m.chosen = nil
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}
