package multiplayer

import "testing"

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession("alice", 2)

	s.Send(LobbyCreatedEvent{Code: "AAAAAA"})
	s.Send(LobbyCreatedEvent{Code: "BBBBBB"})
	s.Send(LobbyCreatedEvent{Code: "CCCCCC"})

	var got []string
	for len(s.Events()) > 0 {
		got = append(got, (<-s.Events()).(LobbyCreatedEvent).Code)
	}
	if len(got) != 2 || got[0] != "BBBBBB" || got[1] != "CCCCCC" {
		t.Errorf("events = %v, expected [BBBBBB CCCCCC]", got)
	}
}

func TestChannelSessionClose(t *testing.T) {
	s := NewChannelSession("alice", 0)

	s.Close()
	s.Close()
	s.Send(LobbyErrorEvent{Message: "late"})

	select {
	case <-s.Done():
	default:
		t.Error("Done() should be closed")
	}
	if len(s.Events()) != 0 {
		t.Error("a closed session should not queue events")
	}
}

func TestSessionRegistry(t *testing.T) {
	reg := NewSessionRegistry()
	a := NewChannelSession("a", 1)
	b := NewChannelSession("b", 1)

	reg.Register(a)
	reg.Register(b)
	if reg.Count() != 2 {
		t.Errorf("Count() = %d, expected 2", reg.Count())
	}

	got, ok := reg.Get("a")
	if !ok || got.ID() != "a" {
		t.Errorf("Get(a) = %v, %v", got, ok)
	}

	reg.Unregister("a")
	if _, ok := reg.Get("a"); ok {
		t.Error("Get() should miss after Unregister")
	}
	if reg.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", reg.Count())
	}
}

func TestMatchEndReasonString(t *testing.T) {
	tests := []struct {
		reason MatchEndReason
		want   string
	}{
		{MatchEndReasonCompleted, "Match completed"},
		{MatchEndReasonDisconnect, "Opponent disconnected"},
		{MatchEndReason(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.reason.String(); got != tc.want {
			t.Errorf("String() = %q, expected %q", got, tc.want)
		}
	}
}
