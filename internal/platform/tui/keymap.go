package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a normalized input derived from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionRotateCCW
	ActionRotateCW
	ActionLaunch
	ActionPause
	ActionRestart
	ActionQuit
)

// KeyMap holds the key bindings. Centralized so the help line and the
// dispatch logic cannot drift apart.
type KeyMap struct {
	RotateCCW key.Binding
	RotateCW  key.Binding
	Launch    key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		RotateCCW: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "rotate left"),
		),
		RotateCW: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "rotate right"),
		),
		Launch: key.NewBinding(
			key.WithKeys(" ", "enter", "w", "up"),
			key.WithHelp("space", "launch"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to an action.
func (km KeyMap) MapKey(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, km.Quit):
		return ActionQuit
	case key.Matches(msg, km.RotateCCW):
		return ActionRotateCCW
	case key.Matches(msg, km.RotateCW):
		return ActionRotateCW
	case key.Matches(msg, km.Launch):
		return ActionLaunch
	case key.Matches(msg, km.Pause):
		return ActionPause
	case key.Matches(msg, km.Restart):
		return ActionRestart
	}
	return ActionNone
}
