package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// axisStep is the trackball displacement of one key press.
const axisStep = 0.25

// KeyMap holds the match key bindings.
type KeyMap struct {
	RedLeft   key.Binding
	RedRight  key.Binding
	BlueLeft  key.Binding
	BlueRight key.Binding
	Pause     key.Binding
	Mute      key.Binding
	Restart   key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.BlueLeft, k.BlueRight, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.BlueLeft, k.BlueRight, k.RedLeft, k.RedRight},
		{k.Pause, k.Mute, k.Restart},
		{k.Back, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default match bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		RedLeft: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "red left"),
		),
		RedRight: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "red right"),
		),
		BlueLeft: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "blue left"),
		),
		BlueRight: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "blue right"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p/space", "pause"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings, for help views.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to a match action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.RedLeft):
		return core.ActionRedLeft, false
	case key.Matches(msg, k.RedRight):
		return core.ActionRedRight, false
	case key.Matches(msg, k.BlueLeft):
		return core.ActionBlueLeft, false
	case key.Matches(msg, k.BlueRight):
		return core.ActionBlueRight, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Mute):
		return core.ActionMute, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	case key.Matches(msg, k.Help):
		return core.ActionHelp, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) core.Action {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit
	case "w", "up", "k": // vim-style k for up
		return core.ActionUp
	case "s", "down", "j": // vim-style j for down
		return core.ActionDown
	case "enter", " ":
		return core.ActionConfirm
	case "b", "esc":
		return core.ActionBack
	case "tab", "h":
		return core.ActionHistory
	}
	return core.ActionNone
}
