package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stc/internal/engine"
)

// KeyMap defines the key bindings of the terminal host.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Down       key.Binding
	Rotate     key.Binding
	Drop       key.Binding
	Pause      key.Binding
	Preview    key.Binding
	Shadow     key.Binding
	Restart    key.Binding
	Quit       key.Binding
	Screenshot key.Binding
	Help       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Rotate, k.Drop, k.Pause, k.Quit, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Down, k.Rotate, k.Drop},
		{k.Pause, k.Preview, k.Shadow, k.Restart},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the bindings of the SDL port: arrows or WASD to move
// and rotate, function keys for the toggles.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "soft drop"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "rotate"),
		),
		Drop: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "drop"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "f1"),
			key.WithHelp("p/F1", "pause"),
		),
		Preview: key.NewBinding(
			key.WithKeys("n", "f2"),
			key.WithHelp("n/F2", "next piece"),
		),
		Shadow: key.NewBinding(
			key.WithKeys("g", "f3"),
			key.WithHelp("g/F3", "ghost"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r/F5", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// Event translates a key to the engine event it triggers, or EventNone.
func (k KeyMap) Event(msg tea.KeyMsg) engine.Event {
	for _, b := range []struct {
		binding key.Binding
		event   engine.Event
	}{
		{k.Left, engine.EventMoveLeft},
		{k.Right, engine.EventMoveRight},
		{k.Down, engine.EventMoveDown},
		{k.Rotate, engine.EventRotateCW},
		{k.Drop, engine.EventDrop},
		{k.Pause, engine.EventPause},
		{k.Preview, engine.EventShowNext},
		{k.Shadow, engine.EventShowShadow},
		{k.Restart, engine.EventRestart},
		{k.Quit, engine.EventQuit},
	} {
		if key.Matches(msg, b.binding) {
			return b.event
		}
	}
	return engine.EventNone
}
