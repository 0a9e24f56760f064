package multiplayer

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-pong/internal/pong"
)

type axisInput struct {
	side pong.Side
	axis float64
}

// OnlineMatch runs one authoritative match between two sessions.
type OnlineMatch struct {
	id     MatchID
	code   string
	match  *pong.Match
	host   SessionHandle
	joiner SessionHandle

	inputs   chan axisInput
	left     chan SessionID
	done     chan struct{}
	doneOnce sync.Once
}

// NewOnlineMatch wraps match for host (blue) and joiner (red).
func NewOnlineMatch(id MatchID, code string, match *pong.Match, host, joiner SessionHandle) *OnlineMatch {
	return &OnlineMatch{
		id:     id,
		code:   code,
		match:  match,
		host:   host,
		joiner: joiner,
		inputs: make(chan axisInput, 64),
		left:   make(chan SessionID, 2),
		done:   make(chan struct{}),
	}
}

// ID returns the match identifier.
func (m *OnlineMatch) ID() MatchID {
	return m.id
}

// Code returns the join code the match was created from.
func (m *OnlineMatch) Code() string {
	return m.code
}

// SideOf returns the paddle id controls, or SideNone for a stranger.
func (m *OnlineMatch) SideOf(id SessionID) pong.Side {
	switch id {
	case m.host.ID():
		return HostSide
	case m.joiner.ID():
		return JoinerSide
	default:
		return pong.SideNone
	}
}

// SendInput queues axis movement for side. Input arriving faster than the
// match can drain it is dropped.
func (m *OnlineMatch) SendInput(side pong.Side, axis float64) {
	select {
	case m.inputs <- axisInput{side: side, axis: axis}:
	default:
	}
}

// PlayerLeft forfeits the match for id.
func (m *OnlineMatch) PlayerLeft(id SessionID) {
	select {
	case m.left <- id:
	default:
	}
}

// Stop ends the loop without reporting a result.
func (m *OnlineMatch) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}

// Run ticks the match at its fixed rate until it ends, then reports the
// result to onComplete. Stop ends it silently.
func (m *OnlineMatch) Run(onComplete func(MatchResult)) {
	defer m.Stop()

	timer := time.NewTimer(0)
	defer timer.Stop()

	go m.monitorSessions()

	for {
		select {
		case now := <-timer.C:
			start := time.Now()
			if result, over := m.runTick(now); over {
				if onComplete != nil {
					onComplete(result)
				}
				return
			}
			timer.Reset(m.match.FrameDelay(time.Since(start)))

		case id := <-m.left:
			if onComplete != nil {
				onComplete(m.forfeit(id))
			}
			return

		case <-m.done:
			return
		}
	}
}

func (m *OnlineMatch) runTick(now time.Time) (MatchResult, bool) {
	m.applyInputs()
	m.match.Tick(now)

	s := m.match.Snapshot()
	evt := SnapshotEvent{MatchID: m.id, Snapshot: s}
	m.host.Send(evt)
	m.joiner.Send(evt)

	if m.match.GameRunning() {
		return MatchResult{}, false
	}
	return m.result(MatchEndReasonCompleted, m.match.Winner()), true
}

// applyInputs sums everything queued since the last tick per paddle.
func (m *OnlineMatch) applyInputs() {
	var red, blue float64
	for {
		select {
		case in := <-m.inputs:
			switch in.side {
			case pong.SideRed:
				red += in.axis
			case pong.SideBlue:
				blue += in.axis
			}
		default:
			if red != 0 {
				m.match.HandleAxis(pong.SideRed, red)
			}
			if blue != 0 {
				m.match.HandleAxis(pong.SideBlue, blue)
			}
			return
		}
	}
}

func (m *OnlineMatch) forfeit(id SessionID) MatchResult {
	winner := JoinerSide
	if id == m.joiner.ID() {
		winner = HostSide
	}
	return m.result(MatchEndReasonDisconnect, winner)
}

func (m *OnlineMatch) result(reason MatchEndReason, winner pong.Side) MatchResult {
	return MatchResult{
		MatchID:   m.id,
		Code:      m.code,
		Reason:    reason,
		Winner:    winner,
		RedLives:  m.match.Red().Lives(),
		BlueLives: m.match.Blue().Lives(),
		Ticks:     m.match.Ticks(),
		Seed:      m.match.Options().Seed,
	}
}

func (m *OnlineMatch) monitorSessions() {
	select {
	case <-m.host.Done():
		m.PlayerLeft(m.host.ID())
	case <-m.joiner.Done():
		m.PlayerLeft(m.joiner.ID())
	case <-m.done:
	}
}
