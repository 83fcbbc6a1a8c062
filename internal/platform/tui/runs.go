package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-physics/internal/registry"
	"github.com/vovakirdan/arcade-physics/internal/storage"
)

// Runs board layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the scene sidebar
	sidebarWidth       = 20  // Width of scene sidebar
	maxRuns            = 100 // Max runs to load
)

// RunsKeyMap defines the key bindings for the runs board.
type RunsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextScene key.Binding
	PrevScene key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScene, k.PrevScene, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScene, k.PrevScene},
		{k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScene: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scene"),
		),
		PrevScene: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scene"),
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

// RunsModel is the Bubble Tea model listing recorded headless runs.
type RunsModel struct {
	scenes      []registry.Info
	cursor      int
	store       *storage.Store
	runs        []storage.Run
	table       table.Model
	help        help.Model
	keys        RunsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRunsModel creates a new runs board.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	h := help.New()
	h.Width = width

	m := RunsModel{
		scenes:      registry.List(),
		store:       store,
		keys:        DefaultRunsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

// createTable creates a new table sized for the current layout.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Steps", Width: 8},
		{Title: "Contacts", Width: 9},
		{Title: "Hash", Width: 16},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
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

// reload loads the runs of the selected scene.
func (m *RunsModel) reload() {
	m.runs = nil
	if m.store != nil && len(m.scenes) > 0 {
		if runs, err := m.store.RecentRuns(m.scenes[m.cursor].ID, maxRuns); err == nil {
			m.runs = runs
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%d", r.Steps),
			fmt.Sprintf("%d", r.Contacts),
			fmt.Sprintf("%016x", r.Hash),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the runs board.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs board.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.NextScene):
			if len(m.scenes) > 0 {
				m.cursor = (m.cursor + 1) % len(m.scenes)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevScene):
			if len(m.scenes) > 0 {
				m.cursor = (m.cursor - 1 + len(m.scenes)) % len(m.scenes)
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.reload()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the runs board.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RECORDED RUNS"
	if len(m.scenes) > 0 {
		title = fmt.Sprintf("RECORDED RUNS - %s", m.scenes[m.cursor].Title)
	}
	b.WriteString(centerText(menuTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := boxStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content))
	} else {
		b.WriteString(content)
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders the scene list.
func (m RunsModel) renderSidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Scenes\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, s := range m.scenes {
		line := "  " + s.ID
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + s.ID)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return style.Render(sb.String())
}

// renderTableContent renders the table or empty message.
func (m RunsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No runs recorded yet.\nUse 'arcadephys simulate --record' to add one.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// RunRuns runs the runs board.
// Returns true if user wants to go back to menu, false if quitting.
func RunRuns(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewRunsModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
