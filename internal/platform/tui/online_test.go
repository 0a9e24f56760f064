package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/multiplayer"
	"github.com/vovakirdan/tui-pong/internal/pong"
)

type fakeSender struct {
	sent []multiplayer.CoordinatorMessage
}

func (f *fakeSender) Send(msg multiplayer.CoordinatorMessage) { f.sent = append(f.sent, msg) }

func (f *fakeSender) last(t *testing.T) multiplayer.CoordinatorMessage {
	t.Helper()
	if len(f.sent) == 0 {
		t.Fatal("nothing sent to the coordinator")
	}
	return f.sent[len(f.sent)-1]
}

func newTestOnline(t *testing.T) (OnlineModel, *fakeSender, *multiplayer.ChannelSession) {
	t.Helper()
	sender := &fakeSender{}
	session := multiplayer.NewChannelSession("alice", 8)
	return NewOnlineModel(sender, session, 80, 24), sender, session
}

func updateOnline(t *testing.T, m OnlineModel, msgs ...tea.Msg) OnlineModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(OnlineModel); !ok {
			t.Fatalf("Update() returned %T, expected OnlineModel", next)
		}
	}
	return m
}

func TestOnlineHostFlow(t *testing.T) {
	m, sender, _ := newTestOnline(t)

	m = updateOnline(t, m, runeKey('h'))
	if msg, ok := sender.last(t).(multiplayer.CreateLobbyMsg); !ok || msg.SessionID != "alice" {
		t.Errorf("sent %#v, expected CreateLobbyMsg from alice", sender.last(t))
	}

	m = updateOnline(t, m, multiplayer.LobbyCreatedEvent{Code: "ABCDEF"})
	if m.State() != OnlineStateHostWaiting {
		t.Errorf("State() = %v, expected %v", m.State(), OnlineStateHostWaiting)
	}
	if !strings.Contains(m.View(), "[ ABCDEF ]") {
		t.Error("View() should show the join code")
	}

	m = updateOnline(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	cancel, ok := sender.last(t).(multiplayer.CancelLobbyMsg)
	if !ok || cancel.Code != "ABCDEF" {
		t.Errorf("sent %#v, expected CancelLobbyMsg for ABCDEF", sender.last(t))
	}
	if m.State() != OnlineStateChooseMode {
		t.Errorf("State() = %v, expected %v", m.State(), OnlineStateChooseMode)
	}
	if m.BackToMenu() {
		t.Error("cancelling a lobby should stay in the online screen")
	}
}

func TestOnlineLobbyExpired(t *testing.T) {
	m, _, _ := newTestOnline(t)
	m = updateOnline(t, m,
		multiplayer.LobbyCreatedEvent{Code: "ABCDEF"},
		multiplayer.LobbyErrorEvent{Message: "Lobby expired"},
	)

	if m.State() != OnlineStateChooseMode {
		t.Errorf("State() = %v, expected %v", m.State(), OnlineStateChooseMode)
	}
	if !strings.Contains(m.View(), "Error: Lobby expired") {
		t.Error("View() should show the error")
	}
}

func TestOnlineJoinCodeInput(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.Msg
		want string
	}{
		{"uppercases", []tea.Msg{runeKey('a'), runeKey('b'), runeKey('2')}, "AB2"},
		{"backspace", []tea.Msg{runeKey('a'), runeKey('b'), tea.KeyMsg{Type: tea.KeyBackspace}}, "A"},
		{"ignores symbols", []tea.Msg{runeKey('-'), runeKey('x')}, "X"},
		{"caps length", []tea.Msg{
			runeKey('a'), runeKey('b'), runeKey('c'), runeKey('d'),
			runeKey('e'), runeKey('f'), runeKey('g'),
		}, "ABCDEF"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, _, _ := newTestOnline(t)
			m = updateOnline(t, m, runeKey('j'))
			m = updateOnline(t, m, tc.keys...)
			if m.joinCodeInput != tc.want {
				t.Errorf("joinCodeInput = %q, expected %q", m.joinCodeInput, tc.want)
			}
		})
	}
}

func TestOnlineJoinFlow(t *testing.T) {
	m, sender, _ := newTestOnline(t)
	m = updateOnline(t, m, runeKey('j'), runeKey('q'), runeKey('7'))

	// Empty input is not sent; typed input is.
	m = updateOnline(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	join, ok := sender.last(t).(multiplayer.JoinLobbyMsg)
	if !ok || join.Code != "Q7" {
		t.Errorf("sent %#v, expected JoinLobbyMsg for Q7", sender.last(t))
	}
	if m.State() != OnlineStateJoinWaiting {
		t.Errorf("State() = %v, expected %v", m.State(), OnlineStateJoinWaiting)
	}

	m = updateOnline(t, m, multiplayer.LobbyErrorEvent{Message: "Lobby not found"})
	if m.State() != OnlineStateJoinEnterCode {
		t.Errorf("State() = %v, expected %v", m.State(), OnlineStateJoinEnterCode)
	}
	if !strings.Contains(m.View(), "Error: Lobby not found") {
		t.Error("View() should show the join error")
	}

	m = updateOnline(t, m, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc from the mode screen should go back to the menu")
	}
}

func startedOnline(t *testing.T, side pong.Side) (OnlineModel, *fakeSender) {
	t.Helper()
	m, sender, _ := newTestOnline(t)
	m = updateOnline(t, m, multiplayer.MatchStartedEvent{MatchID: "m1", Side: side, Code: "ABCDEF"})
	if m.State() != OnlineStateInMatch {
		t.Fatalf("State() = %v, expected %v", m.State(), OnlineStateInMatch)
	}
	return m, sender
}

func TestOnlineMatchInput(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want float64
	}{
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, -axisStep},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, axisStep},
		{"j", runeKey('j'), -axisStep},
		{"l", runeKey('l'), axisStep},
		{"d", runeKey('d'), axisStep},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, sender := startedOnline(t, pong.SideRed)
			updateOnline(t, m, tc.key)

			in, ok := sender.last(t).(multiplayer.PlayerInputMsg)
			if !ok {
				t.Fatalf("sent %#v, expected PlayerInputMsg", sender.last(t))
			}
			if in.Axis != tc.want || in.MatchID != "m1" || in.SessionID != "alice" {
				t.Errorf("PlayerInputMsg = %+v, expected axis %v for m1", in, tc.want)
			}
		})
	}
}

func TestOnlineMatchSnapshots(t *testing.T) {
	m, _ := startedOnline(t, pong.SideRed)
	if !strings.Contains(m.View(), "you play red") {
		t.Error("View() before the first frame should name the side")
	}

	s := newTestMatch(t).Snapshot()
	m = updateOnline(t, m, multiplayer.SnapshotEvent{MatchID: "other", Snapshot: s})
	if m.snapshot != nil {
		t.Error("snapshots from another match should be ignored")
	}

	m = updateOnline(t, m, multiplayer.SnapshotEvent{MatchID: "m1", Snapshot: s})
	view := m.View()
	for _, want := range []string{"RED ●●● YOU", "OPP ●●● BLUE"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestOnlineMatchEnded(t *testing.T) {
	tests := []struct {
		name   string
		event  multiplayer.MatchEndedEvent
		want   string
		reason bool
	}{
		{"win by forfeit", multiplayer.MatchEndedEvent{MatchID: "m1", Reason: multiplayer.MatchEndReasonDisconnect, Winner: pong.SideBlue}, "YOU WIN", true},
		{"loss", multiplayer.MatchEndedEvent{MatchID: "m1", Reason: multiplayer.MatchEndReasonCompleted, Winner: pong.SideRed}, "YOU LOSE", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := startedOnline(t, pong.SideBlue)
			s := newTestMatch(t).Snapshot()
			m = updateOnline(t, m, multiplayer.SnapshotEvent{MatchID: "m1", Snapshot: s}, tc.event)

			if m.State() != OnlineStateMatchEnded {
				t.Fatalf("State() = %v, expected %v", m.State(), OnlineStateMatchEnded)
			}
			view := m.View()
			if !strings.Contains(view, tc.want) {
				t.Errorf("View() missing %q", tc.want)
			}
			if got := strings.Contains(view, "Opponent disconnected"); got != tc.reason {
				t.Errorf("View() shows reason = %v, expected %v", got, tc.reason)
			}

			m = updateOnline(t, m, runeKey('r'))
			if m.State() != OnlineStateChooseMode {
				t.Errorf("State() = %v, expected %v", m.State(), OnlineStateChooseMode)
			}
		})
	}
}

func TestOnlineStaleMatchEnded(t *testing.T) {
	m, _ := startedOnline(t, pong.SideBlue)
	m = updateOnline(t, m, multiplayer.MatchEndedEvent{MatchID: "old"})
	if m.State() != OnlineStateInMatch {
		t.Errorf("State() = %v, expected %v", m.State(), OnlineStateInMatch)
	}
}

func TestOnlineLeaveMatch(t *testing.T) {
	m, sender := startedOnline(t, pong.SideBlue)
	m = updateOnline(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	leave, ok := sender.last(t).(multiplayer.LeaveMatchMsg)
	if !ok || leave.MatchID != "m1" {
		t.Errorf("sent %#v, expected LeaveMatchMsg for m1", sender.last(t))
	}
	if !m.BackToMenu() {
		t.Error("esc during a match should go back to the menu")
	}

	m, sender = startedOnline(t, pong.SideBlue)
	next, cmd := m.Update(runeKey('q'))
	if !next.(OnlineModel).IsQuitting() || cmd == nil {
		t.Error("q during a match should quit")
	}
	if _, ok := sender.last(t).(multiplayer.LeaveMatchMsg); !ok {
		t.Errorf("sent %#v, expected LeaveMatchMsg", sender.last(t))
	}
}

func TestOnlineWaitForEvent(t *testing.T) {
	m, _, session := newTestOnline(t)

	session.Send(multiplayer.LobbyCreatedEvent{Code: "ABCDEF"})
	if got, ok := m.Init()().(multiplayer.LobbyCreatedEvent); !ok || got.Code != "ABCDEF" {
		t.Errorf("waitForEvent() = %#v, expected the queued event", got)
	}

	session.Close()
	if got := m.Init()(); got != nil {
		t.Errorf("waitForEvent() = %#v after close, expected nil", got)
	}
}

func TestOnlineResize(t *testing.T) {
	m, _, _ := newTestOnline(t)
	m = updateOnline(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, expected 100x29", m.screen.Width(), m.screen.Height())
	}
}

func TestSessionOnlineMenu(t *testing.T) {
	sender := &fakeSender{}
	session := multiplayer.NewChannelSession("alice", 8)
	s := NewSessionModel(nil, testConfig, testSetup(), nil).WithOnline(sender, session)

	if !strings.Contains(s.View(), "Online") {
		t.Error("menu should offer online play")
	}

	down := tea.KeyMsg{Type: tea.KeyDown}
	for i := 0; i < 3; i++ {
		s = updateSession(t, s, down)
	}
	s = updateSession(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	if s.online == nil {
		t.Fatal("selecting Online should open the online screen")
	}

	s = updateSession(t, s, runeKey('h'))
	if _, ok := sender.last(t).(multiplayer.CreateLobbyMsg); !ok {
		t.Errorf("sent %#v, expected CreateLobbyMsg", sender.last(t))
	}

	s = updateSession(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	if s.online != nil {
		t.Error("esc should return to the menu")
	}

	// Events that arrive after leaving are dropped.
	s = updateSession(t, s, multiplayer.LobbyCreatedEvent{Code: "ABCDEF"})
	if s.online != nil || s.menu.Selected() != nil {
		t.Error("stale events should not change the menu")
	}
}

func TestSessionWithoutOnline(t *testing.T) {
	s := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, testSetup(), nil)
	if strings.Contains(s.View(), "Online") {
		t.Error("local sessions should not offer online play")
	}
}

func TestStoreSaver(t *testing.T) {
	store := openStore(t)
	saver := storeSaver{store: store}

	err := saver.SaveResult(multiplayer.MatchResult{
		MatchID:   "m1",
		Reason:    multiplayer.MatchEndReasonCompleted,
		Winner:    pong.SideRed,
		RedLives:  2,
		BlueLives: 0,
		Ticks:     900,
		Seed:      5,
	})
	if err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}

	recs, err := store.RecentMatches(1)
	if err != nil || len(recs) != 1 {
		t.Fatalf("RecentMatches() = %v, %v", recs, err)
	}
	got := recs[0]
	if got.Winner != "red" || got.Strategy != "online" || got.Players() != 2 || got.Ticks != 900 {
		t.Errorf("record = %+v, expected a red online win over 900 ticks", got)
	}
}
