package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-physics/internal/core"
	"github.com/vovakirdan/arcade-physics/internal/registry"
)

var helpBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for viewing a running scene.
type Model struct {
	sim        registry.Simulation
	screen     *core.Screen
	config     core.RuntimeConfig
	logger     *log.Logger
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	state      core.SimState
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given simulation.
// The last terminal row is kept for the help bar.
func NewModel(sim registry.Simulation, cfg core.RuntimeConfig, logger *log.Logger) Model {
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		sim:        sim,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		config:     cfg,
		logger:     logger,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

// Init builds the scene and starts the tick loop.
func (m Model) Init() tea.Cmd {
	if err := m.sim.Reset(m.config); err != nil && m.logger != nil {
		m.logger.Error("reset failed", "scene", m.sim.ID(), "error", err)
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleTick runs one viewer tick with the actions collected since the last one.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.sim.Step(m.inputFrame)
	m.state = result.State
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.sim.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcadephys", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.sim.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil && m.logger != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
	}
}

// View renders the current frame and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.sim.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpBarStyle.Render(m.help.View(m.keyMapper.Keys))
}

// State returns the state reported by the last tick.
func (m Model) State() core.SimState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for the given simulation.
// Returns true if the user asked to go back rather than quit.
func Run(sim registry.Simulation, cfg core.RuntimeConfig, logger *log.Logger) (goBack bool, err error) {
	p := tea.NewProgram(
		NewModel(sim, cfg, logger),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
