package multiplayer

import "github.com/vovakirdan/tui-pong/internal/pong"

// SessionEvent represents an event sent from the coordinator to a session.
type SessionEvent interface {
	sessionEvent()
}

// LobbyCreatedEvent is sent when a lobby is successfully created.
type LobbyCreatedEvent struct {
	Code string
}

func (LobbyCreatedEvent) sessionEvent() {}

// LobbyErrorEvent is sent when a lobby operation fails.
type LobbyErrorEvent struct {
	Message string
}

func (LobbyErrorEvent) sessionEvent() {}

// MatchStartedEvent is sent to both players when the match begins.
type MatchStartedEvent struct {
	MatchID MatchID
	Side    pong.Side // The paddle this session controls
	Code    string
}

func (MatchStartedEvent) sessionEvent() {}

// SnapshotEvent carries the state after one tick.
type SnapshotEvent struct {
	MatchID  MatchID
	Snapshot pong.Snapshot
}

func (SnapshotEvent) sessionEvent() {}

// MatchEndedEvent is sent when the match ends.
type MatchEndedEvent struct {
	MatchID   MatchID
	Reason    MatchEndReason
	Winner    pong.Side // SideNone when nobody won
	RedLives  int
	BlueLives int
}

func (MatchEndedEvent) sessionEvent() {}

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonCompleted  MatchEndReason = iota // A paddle ran out of lives
	MatchEndReasonDisconnect                       // Opponent disconnected or left
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonCompleted:
		return "Match completed"
	case MatchEndReasonDisconnect:
		return "Opponent disconnected"
	default:
		return "Unknown"
	}
}

// CoordinatorMessage represents a message from a session to the coordinator.
type CoordinatorMessage interface {
	coordinatorMessage()
}

// CreateLobbyMsg requests creation of a new lobby.
type CreateLobbyMsg struct {
	SessionID SessionID
}

func (CreateLobbyMsg) coordinatorMessage() {}

// JoinLobbyMsg requests joining an existing lobby.
type JoinLobbyMsg struct {
	SessionID SessionID
	Code      string
}

func (JoinLobbyMsg) coordinatorMessage() {}

// CancelLobbyMsg closes a hosted lobby, or withdraws a joiner from one.
type CancelLobbyMsg struct {
	SessionID SessionID
	Code      string
}

func (CancelLobbyMsg) coordinatorMessage() {}

// LeaveMatchMsg forfeits an active match.
type LeaveMatchMsg struct {
	SessionID SessionID
	MatchID   MatchID
}

func (LeaveMatchMsg) coordinatorMessage() {}

// PlayerInputMsg nudges the sender's paddle by Axis trackball units. The
// paddle is chosen by the coordinator from the sender's seat.
type PlayerInputMsg struct {
	SessionID SessionID
	MatchID   MatchID
	Axis      float64
}

func (PlayerInputMsg) coordinatorMessage() {}

// SessionDisconnectedMsg is sent when a session disconnects.
type SessionDisconnectedMsg struct {
	SessionID SessionID
}

func (SessionDisconnectedMsg) coordinatorMessage() {}
