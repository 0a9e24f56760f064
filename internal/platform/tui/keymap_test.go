package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"j", runeKey('j'), core.ActionRedLeft, false},
		{"l", runeKey('l'), core.ActionRedRight, false},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionBlueLeft, false},
		{"a", runeKey('a'), core.ActionBlueLeft, false},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionBlueRight, false},
		{"d", runeKey('d'), core.ActionBlueRight, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionPause, false},
		{"m", runeKey('m'), core.ActionMute, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"?", runeKey('?'), core.ActionHelp, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey() = (%v, %v), expected (%v, %v)", action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapKeyToFrame(runeKey('j'), &frame)
	km.MapKeyToFrame(runeKey('j'), &frame)
	if quit := km.MapKeyToFrame(runeKey('z'), &frame); quit {
		t.Error("MapKeyToFrame() reported quit for an unbound key")
	}
	if quit := km.MapKeyToFrame(runeKey('q'), &frame); !quit {
		t.Error("MapKeyToFrame() should report quit for q")
	}

	if got := frame.Count(core.ActionRedLeft); got != 2 {
		t.Errorf("Count(RedLeft) = %d, expected 2", got)
	}
	if frame.Has(core.ActionNone) {
		t.Error("ActionNone should never be queued")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"k", runeKey('k'), core.ActionUp},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{"j", runeKey('j'), core.ActionDown},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionHistory},
		{"h", runeKey('h'), core.ActionHistory},
		{"q", runeKey('q'), core.ActionQuit},
		{"x", runeKey('x'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
				t.Errorf("MapKeyToMenuAction() = %v, expected %v", got, tc.want)
			}
		})
	}
}
