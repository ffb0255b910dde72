package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blink-tac-toe/internal/core"
	"github.com/vovakirdan/blink-tac-toe/internal/match"
)

// sessionClosedMsg is sent when the session's event stream ends.
type sessionClosedMsg struct{}

type appState int

const (
	stateMenu appState = iota
	stateGame
	stateScores
)

// AppModel manages the full session flow: setup -> match -> setup.
// This is the top-level model for local play and for SSH sessions.
//
// One ChannelSession carries the events of every match the session plays,
// and AppModel is its only reader. Events from a match that has since been
// left are dropped by GameModel's match ID check.
type AppModel struct {
	ctx      context.Context
	launcher *Launcher
	session  *match.ChannelSession
	config   core.RuntimeConfig
	state    appState
	menu     MenuModel
	game     *GameModel
	scores   ScoreboardModel
	quitting bool
}

// NewAppModel creates a session model that opens on the setup menu.
func NewAppModel(ctx context.Context, l *Launcher, session *match.ChannelSession) AppModel {
	return AppModel{
		ctx:      ctx,
		launcher: l,
		session:  session,
		config:   l.Runtime,
		menu:     NewMenuModel(DefaultSelection(l.Config), l.Runtime),
	}
}

// StartMatch starts a match straight away, skipping the setup menu.
func (m AppModel) StartMatch(sel Selection) (AppModel, error) {
	live, err := m.launcher.Start(m.ctx, m.session, sel)
	if err != nil {
		return m, err
	}
	game := NewGameModel(live, m.config)
	m.game = &game
	m.state = stateGame
	m.menu = NewMenuModel(sel, m.config)
	return m, nil
}

// Init starts reading session events.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForEvent()}
	if m.game != nil {
		cmds = append(cmds, m.game.Init())
	}
	return tea.Batch(cmds...)
}

// waitForEvent returns a command that blocks for the next session event.
func (m AppModel) waitForEvent() tea.Cmd {
	events, done := m.session.Events(), m.session.Done()
	return func() tea.Msg {
		select {
		case evt := <-events:
			return evt
		case <-done:
			return sessionClosedMsg{}
		}
	}
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case sessionClosedMsg:
		return m.quit()

	case match.SessionEvent:
		wait := m.waitForEvent()
		if m.state != stateGame || m.game == nil {
			return m, wait
		}
		next, cmd := m.updateGame(msg)
		return next, tea.Batch(wait, cmd)
	}

	switch m.state {
	case stateGame:
		return m.updateGame(msg)
	case stateScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		return m.quit()
	}

	if m.menu.WantsScoreboard() {
		m.scores = NewScoreboardModel(m.launcher.Store, m.config.ScreenW, m.config.ScreenH)
		m.menu = NewMenuModel(m.menu.Selection(), m.config)
		m.state = stateScores
		return m, m.scores.Init()
	}

	if sel, ok := m.menu.Chosen(); ok {
		next, err := m.StartMatch(sel)
		if err != nil {
			m.menu.SetMessage(err.Error())
			return m, nil
		}
		return next, next.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		return m.quit()
	}

	if m.game.BackToMenu() {
		m.menu = NewMenuModel(m.game.live.Selection, m.config)
		m.game = nil
		m.state = stateMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scores, ok := newScores.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		return m.quit()
	}

	// The scoreboard quits its own program when run standalone; here it
	// just returns to the menu.
	if m.scores.GoingBack() {
		m.state = stateMenu
		return m, nil
	}

	return m, cmd
}

// quit stops the current match and closes the session.
func (m AppModel) quit() (tea.Model, tea.Cmd) {
	if m.game != nil {
		m.game.live.Stop()
	}
	m.session.Close()
	m.quitting = true
	return m, tea.Quit
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateGame:
		if m.game != nil {
			return m.game.View()
		}
	case stateScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// Run starts a local session. With sel set the match starts straight away;
// otherwise the setup menu opens first.
func Run(ctx context.Context, l *Launcher, sel *Selection) error {
	session := match.NewChannelSession(match.NewSessionID(), 64)
	defer session.Close()

	model := NewAppModel(ctx, l, session)
	if sel != nil {
		var err error
		if model, err = model.StartMatch(*sel); err != nil {
			return err
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
