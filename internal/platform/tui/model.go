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

	"github.com/vovakirdan/stc/internal/engine"
)

// Model is the Bubble Tea model driving one engine session.
// The game must already be initialized with platform.
type Model struct {
	game     *engine.Game
	platform *Platform
	keys     KeyMap
	help     help.Model
	tickRate int
	width    int
	height   int
	quitting bool
}

// NewModel creates a model that updates game tickRate times per second.
func NewModel(game *engine.Game, platform *Platform, tickRate int) Model {
	return Model{
		game:     game,
		platform: platform,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		tickRate: tickRate,
		width:    platform.maxW,
		height:   platform.maxH,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues the event of a key for the next tick. Quit goes through
// the engine too, so the session ends with ErrPlayerQuits.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if ev := m.keys.Event(msg); ev != engine.EventNone {
		m.platform.Press(ev)
	}
	return m, nil
}

// handleTick runs one engine Update at time t.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	m.platform.Sample(t)
	m.game.Update()

	if m.game.ErrorCode() != engine.ErrNone {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.tickRate)
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	dir := filepath.Join(os.Getenv("HOME"), ".stc", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("stc_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.platform.Screen().String()), 0o600)
}

// View renders the screen buffer, centered in the window once its size is
// known. The help goes below the screen when the window has rows to spare.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	content := RenderScreen(m.platform.Screen())
	helpView := m.help.View(m.keys)
	if m.height == 0 || lipgloss.Height(content)+lipgloss.Height(helpView) <= m.height {
		content = lipgloss.JoinVertical(lipgloss.Left, content, helpView)
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
