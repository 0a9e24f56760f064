// Package multiplayer pairs remote sessions into head-to-head pong matches.
//
// A Coordinator owns lobbies and match bookkeeping. Each started match runs
// on its own goroutine, which is the only goroutine that touches its
// pong.Match; sessions reach it through messages and receive snapshots
// through their SessionHandle.
package multiplayer

import "github.com/vovakirdan/tui-pong/internal/pong"

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// MatchID uniquely identifies an online match.
type MatchID string

// Seats. The host defends the bottom edge, the joiner the top.
const (
	HostSide   = pong.SideBlue
	JoinerSide = pong.SideRed
)

// MatchResult is the outcome of an online match.
type MatchResult struct {
	MatchID   MatchID
	Code      string
	Reason    MatchEndReason
	Winner    pong.Side
	RedLives  int
	BlueLives int
	Ticks     int64
	Seed      int64
}

// ResultSaver persists finished matches. It is called off the match
// goroutine and may block.
type ResultSaver interface {
	SaveResult(r MatchResult) error
}

// MatchFactory creates the match for a newly paired lobby.
type MatchFactory func() (*pong.Match, error)
