// Package tui provides the Bubble Tea front end for pong.
// It handles the terminal UI loop, input mapping, and match orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a match tick.
type TickMsg time.Time

// tickCmd schedules the next TickMsg after delay. A spent frame still waits
// a millisecond so the update loop can drain input.
func tickCmd(delay time.Duration) tea.Cmd {
	if delay < time.Millisecond {
		delay = time.Millisecond
	}
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
