package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScoreboard
)

// SessionModel manages the full arcade flow: menu -> game or scores -> menu.
// It is the top-level model for SSH sessions and `flappy menu`.
type SessionModel struct {
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	screen     sessionScreen
	menu       MenuModel
	game       *Model
	scoreboard *ScoreboardModel
	errMsg     string
	quitting   bool
}

// NewSessionModel creates a session for player.
// persistName controls whether renames in the menu update the stored default.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, player string, persistName bool, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	menu := NewMenuModel(store, cfg, player, persistName)
	menu.embedded = true

	return SessionModel{
		store:  store,
		logger: logger,
		config: cfg,
		menu:   menu,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		sb := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH, m.menu.Player())
		sb.embedded = true
		m.scoreboard = &sb
		m.screen = screenScoreboard
		return m, nil
	}

	if selected := m.menu.Selected(); selected != nil {
		m.errMsg = ""
		game, err := registry.Create(selected.GameID)
		if err == nil {
			var gm Model
			gm, err = NewModel(game, m.store, m.config,
				WithPlayer(m.menu.Player()),
				WithLogger(m.logger),
				WithBackToMenu(),
			)
			if err == nil {
				m.game = &gm
				m.screen = screenGame
				return m, m.game.Init()
			}
		}
		m.logger.Error("cannot start game", "game", selected.GameID, "error", err)
		m.errMsg = err.Error()
		m.resetMenu()
		return m, nil
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.resetMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates when browsing scores.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scoreboard.IsGoingBack() {
		m.scoreboard = nil
		m.resetMenu()
		return m, nil
	}

	return m, cmd
}

// resetMenu returns to a fresh menu, keeping the player name.
func (m *SessionModel) resetMenu() {
	player, persist := m.menu.Player(), m.menu.persistName
	m.menu = NewMenuModel(m.store, m.config, player, persist)
	m.menu.embedded = true
	m.menu.status = m.errMsg
	m.screen = screenMenu
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) error {
	model := NewSessionModel(store, cfg, player, true, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
