package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

const (
	minWidthForStats = 80  // below this the stats panel is stacked under the table
	statsPanelWidth  = 24
	leaderboardLimit = 100
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTabStyle   = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the leaderboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Switch}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Switch: key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right"), key.WithHelp("tab", "hitbox")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the top scores of one variant at a time, with
// aggregate stats and the current player's standing.
type ScoreboardModel struct {
	boards []registry.GameInfo
	board  int
	store  *storage.Store
	scores []storage.ScoreEntry
	stats  *storage.GameStats
	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int
	player string // marked in the table and summarized below it

	embedded  bool // running inside a SessionModel; back never emits tea.Quit
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a leaderboard for every registered variant.
// player may be empty, in which case no personal summary is shown.
func NewScoreboardModel(store *storage.Store, width, height int, player string) ScoreboardModel {
	m := ScoreboardModel{
		boards: registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
		player: player,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForStats
}

func (m ScoreboardModel) newTable() table.Model {
	nameWidth := 12
	avail := m.width - 4
	if m.wide() {
		avail -= statsPanelWidth + 4
	}
	if avail > 50 {
		nameWidth = min(avail-36, storage.MaxPlayerNameLen)
	}

	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: nameWidth},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// BoardID returns the variant currently shown, or "" if none are registered.
func (m ScoreboardModel) BoardID() string {
	if len(m.boards) == 0 {
		return ""
	}
	return m.boards[m.board].ID
}

// load refreshes scores and stats for the current board.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if id := m.BoardID(); m.store != nil && id != "" {
		if scores, err := m.store.TopScores(id, leaderboardLimit); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

// rows builds table rows. Equal scores share a rank, matching Store.PlayerRank.
func (m ScoreboardModel) rows() []table.Row {
	rows := make([]table.Row, len(m.scores))
	rank := 0
	for i, s := range m.scores {
		if i == 0 || s.Score != m.scores[i-1].Score {
			rank = i + 1
		}
		name := s.Player
		if m.player != "" && s.Player == m.player {
			name = "* " + name
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", rank),
			name,
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Switch):
			if len(m.boards) > 1 {
				step := 1
				if msg.String() == "shift+tab" || msg.String() == "left" {
					step = len(m.boards) - 1
				}
				m.board = (m.board + step) % len(m.boards)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.newTable()
		m.table.SetRows(m.rows())
		m.table.SetCursor(cursor)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText("LEADERBOARD", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	board := boardFrameStyle.Render(m.tableView())
	if m.wide() {
		stats := boardFrameStyle.Width(statsPanelWidth).Render(m.statsView())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", stats))
	} else {
		b.WriteString(board)
		b.WriteString("\n")
		b.WriteString(boardDimStyle.Render(strings.ReplaceAll(m.statsView(), "\n", "  ")))
	}
	b.WriteString("\n")

	if summary := m.playerSummary(); summary != "" {
		b.WriteString("\n")
		b.WriteString(centerText(summary, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.boards))
	for i, g := range m.boards {
		if i == m.board {
			parts[i] = boardTabStyle.Render(g.Title)
		} else {
			parts[i] = boardDimStyle.Render(" " + g.Title + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (m ScoreboardModel) tableView() string {
	if len(m.scores) == 0 {
		return boardDimStyle.Italic(true).Padding(2, 4).
			Render("No scores recorded yet.\nClear a pipe to get on the board!")
	}
	return m.table.View()
}

func (m ScoreboardModel) statsView() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "No games played"
	}
	lines := []string{
		fmt.Sprintf("Games    %d", m.stats.GamesCount),
		fmt.Sprintf("Players  %d", m.stats.Players),
		fmt.Sprintf("Best     %d", m.stats.HighScore),
		fmt.Sprintf("Average  %.1f", m.stats.AvgScore),
	}
	if !m.stats.LastPlayed.IsZero() {
		lines = append(lines, "Last     "+m.stats.LastPlayed.Format("Jan 02"))
	}
	return strings.Join(lines, "\n")
}

// playerSummary describes the player's best score and rank on the current board.
func (m ScoreboardModel) playerSummary() string {
	id := m.BoardID()
	if m.player == "" || m.store == nil || id == "" {
		return ""
	}
	rank, err := m.store.PlayerRank(id, m.player)
	if err != nil || rank == 0 {
		return ""
	}
	best, err := m.store.PlayerBest(id, m.player)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s: best %d, rank #%d", m.player, best, rank)
}

// IsGoingBack reports whether the user left with back rather than quit.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the leaderboard as its own program.
// It returns true if the user went back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int, player string) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height, player), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
