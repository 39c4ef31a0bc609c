package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcane-flight/internal/core"
)

// KeyMap holds the in-game key bindings.
type KeyMap struct {
	Flap       key.Binding
	Restart    key.Binding
	ChooseA    key.Binding
	ChooseB    key.Binding
	Back       key.Binding
	Pause      key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default in-game bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Flap: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/up/w", "flap"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		ChooseA: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "first witch"),
		),
		ChooseB: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "second witch"),
		),
		Back: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "witches"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flap, k.Pause, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Flap, k.Restart, k.Pause},
		{k.ChooseA, k.ChooseB, k.Back},
		{k.Screenshot, k.Quit},
	}
}

// Action translates a key to a game action.
// Quit and Screenshot are handled by the host, so they map to ActionNone here.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Flap):
		return core.ActionJump
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.ChooseA):
		return core.ActionChooseA
	case key.Matches(msg, k.ChooseB):
		return core.ActionChooseB
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	}
	return core.ActionNone
}
