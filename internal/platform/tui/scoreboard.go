package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcane-flight/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the character sidebar
	sidebarWidth       = 20  // Width of the character sidebar
	maxScores          = 100 // Max scores to load
)

// allTab is the tab label for every character at once.
const allTab = "All"

// ScoreSource is what the scoreboard reads from.
type ScoreSource interface {
	TopScores(gameID, character string, limit int) ([]storage.ScoreEntry, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Quit},
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
			key.WithHelp("tab", "next witch"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev witch"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the best runs of one game, one tab per character.
type ScoreboardModel struct {
	source      ScoreSource
	gameID      string
	title       string
	tabs        []string // allTab first, then character IDs
	cursor      int
	scores      []storage.ScoreEntry
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard for gameID. A nil source shows an empty board.
func NewScoreboardModel(source ScoreSource, gameID, title string, characters []string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		source:      source,
		gameID:      gameID,
		title:       title,
		tabs:        append([]string{allTab}, characters...),
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadScores()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Witch", Width: 8},
		{Title: "Date", Width: 14},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if tableWidth > 44 {
		columns[3].Width = min(tableWidth-28, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
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

// character returns the filter for the current tab; empty means every character.
func (m ScoreboardModel) character() string {
	if m.tabs[m.cursor] == allTab {
		return ""
	}
	return m.tabs[m.cursor]
}

func (m *ScoreboardModel) loadScores() {
	m.scores, m.loadErr = nil, nil
	if m.source != nil {
		m.scores, m.loadErr = m.source.TopScores(m.gameID, m.character(), maxScores)
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		who := s.Character
		if who == "" {
			who = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			who,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
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

		case key.Matches(msg, m.keys.NextTab):
			m.cursor = (m.cursor + 1) % len(m.tabs)
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.cursor = (m.cursor - 1 + len(m.tabs)) % len(m.tabs)
			m.loadScores()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText(fmt.Sprintf("HIGH SCORES - %s", m.title), m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

func (m ScoreboardModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Witches\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, tab := range m.tabs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncateText(tab, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	sidebarRendered := boxStyle.Width(sidebarWidth).Render(sidebar.String())
	tableRendered := boxStyle.Render(m.renderTableContent())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		name := truncateText(tab, 10)
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.tabs[m.cursor])
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")
	b.WriteString(boxStyle.Render(m.renderTableContent()))

	return b.String()
}

func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Scores unavailable:\n" + m.loadErr.Error())
	case len(m.scores) == 0:
		return emptyStyle.Render("No runs recorded yet.\nFly to set a high score!")
	}
	return m.table.View()
}

// Rows returns the rendered table rows, mostly for tests.
func (m ScoreboardModel) Rows() []table.Row {
	return m.table.Rows()
}

// Tab returns the label of the selected tab.
func (m ScoreboardModel) Tab() string {
	return m.tabs[m.cursor]
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(source ScoreSource, gameID, title string, characters []string, width, height int) error {
	model := NewScoreboardModel(source, gameID, title, characters, width, height)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "."
}
