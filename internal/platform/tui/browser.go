package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stc/internal/core"
	"github.com/vovakirdan/stc/internal/engine"
	"github.com/vovakirdan/stc/internal/storage"
)

// BrowserKeyMap defines the key bindings for the replay browser.
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Select, k.Delete, k.Quit},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowserModel is the Bubble Tea model listing stored replays.
type BrowserModel struct {
	store    *storage.Store
	limit    int
	entries  []storage.ReplayEntry
	err      error
	table    table.Model
	help     help.Model
	keys     BrowserKeyMap
	width    int
	height   int
	selected int64
	quitting bool
}

// NewBrowserModel creates a browser over the newest limit replays of store.
func NewBrowserModel(store *storage.Store, limit, width, height int) BrowserModel {
	m := BrowserModel{
		store:  store,
		limit:  limit,
		keys:   DefaultBrowserKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *BrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Date", Width: 14},
		{Title: "Target", Width: 10},
		{Title: "Score", Width: 10},
		{Title: "Lines", Width: 6},
		{Title: "Level", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "End", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-6, 3)), // Leave room for title and help
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

// load reads the replay list from the store and refreshes the table.
func (m *BrowserModel) load() {
	m.entries, m.err = nil, nil
	if m.store != nil {
		m.entries, m.err = m.store.ListReplays(m.limit)
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			fmt.Sprint(e.ID),
			e.CreatedAt.Format("Jan 02 15:04"),
			e.Target,
			fmt.Sprint(e.Final.Score),
			fmt.Sprint(e.Final.Lines),
			fmt.Sprint(e.Final.Level),
			fmt.Sprintf("%d fr", e.Frames),
			endLabel(e),
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(core.Clamp(m.table.Cursor(), 0, max(len(rows)-1, 0)))
}

func endLabel(e storage.ReplayEntry) string {
	switch {
	case e.Final.State == engine.StateGameOver:
		return "game over"
	case e.Final.Code == engine.ErrPlayerQuits:
		return "quit"
	case e.Final.Code.IsFailure():
		return "failed"
	}
	return "stopped"
}

// current returns the entry under the cursor.
func (m BrowserModel) current() (storage.ReplayEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return storage.ReplayEntry{}, false
	}
	return m.entries[i], true
}

// Init initializes the browser model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if e, ok := m.current(); ok {
				m.selected = e.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if e, ok := m.current(); ok && m.store != nil {
				if err := m.store.DeleteReplay(e.ID); err != nil {
					m.err = err
					return m, nil
				}
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting || m.selected != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("REPLAYS (%d)", len(m.entries))))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error()))
	case len(m.entries) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No replays recorded yet.\nRun 'stc play --record' to keep one.")))
	default:
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Selected returns the ID picked with enter, or 0.
func (m BrowserModel) Selected() int64 {
	return m.selected
}

// RunBrowser runs the replay browser and returns the picked replay ID, or 0
// when the user quit without picking one.
func RunBrowser(store *storage.Store, limit, width, height int) (int64, error) {
	p := tea.NewProgram(
		NewBrowserModel(store, limit, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, err
	}

	m, ok := finalModel.(BrowserModel)
	if !ok {
		return 0, nil
	}
	return m.Selected(), nil
}
