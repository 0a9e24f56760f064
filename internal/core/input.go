package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the match to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionRedLeft          // J - nudge the top paddle left
	ActionRedRight         // L - nudge the top paddle right
	ActionBlueLeft         // Left arrow, A - nudge the bottom paddle left
	ActionBlueRight        // Right arrow, D - nudge the bottom paddle right
	ActionPause            // P, Space - pause/unpause
	ActionMute             // M - toggle sound
	ActionRestart          // R - start a new game
	ActionUp               // Up, K - menu up
	ActionDown             // Down - menu down
	ActionConfirm          // Enter - confirm selection in menu
	ActionBack             // B, Escape - go back to menu
	ActionHelp             // ? - toggle full help
	ActionHistory          // Tab - open match history
	ActionQuit             // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRedLeft:
		return "RedLeft"
	case ActionRedRight:
		return "RedRight"
	case ActionBlueLeft:
		return "BlueLeft"
	case ActionBlueRight:
		return "BlueRight"
	case ActionPause:
		return "Pause"
	case ActionMute:
		return "Mute"
	case ActionRestart:
		return "Restart"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionHelp:
		return "Help"
	case ActionHistory:
		return "History"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions pressed between two simulation ticks.
// Repeated presses of the same action are counted.
type InputFrame struct {
	Actions map[Action]int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]int),
	}
}

// Set records one press of a.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]int)
	}
	f.Actions[a]++
}

// Has returns true if a was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a] > 0
}

// Count returns how many times a was pressed this frame.
func (f InputFrame) Count(a Action) int {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
