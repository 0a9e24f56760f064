package multiplayer

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/pong"
)

// Lobby is a waiting room holding a host until someone joins.
type Lobby struct {
	Code      string
	Host      SessionHandle
	CreatedAt time.Time
}

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	LobbyTimeout  time.Duration // How long an unjoined lobby lives
	CleanupPeriod time.Duration // How often expired lobbies are swept
}

// DefaultCoordinatorConfig returns sensible defaults.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		LobbyTimeout:  2 * time.Minute,
		CleanupPeriod: 30 * time.Second,
	}
}

// Coordinator manages lobbies and active matches.
type Coordinator struct {
	config   CoordinatorConfig
	factory  MatchFactory
	sessions *SessionRegistry
	saver    ResultSaver // Optional
	logger   *log.Logger

	mu      sync.RWMutex
	lobbies map[string]*Lobby
	matches map[MatchID]*OnlineMatch

	sessionLobby map[SessionID]string
	sessionMatch map[SessionID]MatchID

	msgChan  chan CoordinatorMessage
	done     chan struct{}
	stopOnce sync.Once
}

// NewCoordinator creates a coordinator. factory builds the match for every
// paired lobby.
func NewCoordinator(cfg CoordinatorConfig, factory MatchFactory, sessions *SessionRegistry, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Coordinator{
		config:       cfg,
		factory:      factory,
		sessions:     sessions,
		logger:       logger,
		lobbies:      make(map[string]*Lobby),
		matches:      make(map[MatchID]*OnlineMatch),
		sessionLobby: make(map[SessionID]string),
		sessionMatch: make(map[SessionID]MatchID),
		msgChan:      make(chan CoordinatorMessage, 256),
		done:         make(chan struct{}),
	}
}

// SetResultSaver sets where completed matches are recorded.
func (c *Coordinator) SetResultSaver(saver ResultSaver) {
	c.saver = saver
}

// Start begins background processing.
func (c *Coordinator) Start() {
	go c.processMessages()
	go c.cleanupLoop()
}

// Stop shuts the coordinator down and stops every running match.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)

		c.mu.Lock()
		defer c.mu.Unlock()
		for _, m := range c.matches {
			m.Stop()
		}
	})
}

// Send queues a message for the coordinator.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.msgChan <- msg:
	case <-c.done:
	}
}

func (c *Coordinator) processMessages() {
	for {
		select {
		case msg := <-c.msgChan:
			c.handleMessage(msg)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) handleMessage(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case CreateLobbyMsg:
		c.handleCreateLobby(m)
	case JoinLobbyMsg:
		c.handleJoinLobby(m)
	case CancelLobbyMsg:
		c.handleCancelLobby(m)
	case LeaveMatchMsg:
		c.handleLeaveMatch(m)
	case PlayerInputMsg:
		c.handlePlayerInput(m)
	case SessionDisconnectedMsg:
		c.handleSessionDisconnected(m)
	}
}

func (c *Coordinator) handleCreateLobby(msg CreateLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy(msg.SessionID) {
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}

	code := c.generateUniqueCode()
	c.lobbies[code] = &Lobby{
		Code:      code,
		Host:      session,
		CreatedAt: time.Now(),
	}
	c.sessionLobby[msg.SessionID] = code
	c.logger.Debug("lobby created", "code", code, "host", msg.SessionID)

	session.Send(LobbyCreatedEvent{Code: code})
}

func (c *Coordinator) handleJoinLobby(msg JoinLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy(msg.SessionID) {
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(msg.Code))
	lobby, exists := c.lobbies[code]
	if !exists {
		session.Send(LobbyErrorEvent{Message: "Lobby not found"})
		return
	}
	if lobby.Host.ID() == msg.SessionID {
		session.Send(LobbyErrorEvent{Message: "Cannot join your own lobby"})
		return
	}

	c.startMatch(lobby, session)
}

// startMatch pairs the lobby host with joiner. Called with c.mu held.
func (c *Coordinator) startMatch(lobby *Lobby, joiner SessionHandle) {
	delete(c.lobbies, lobby.Code)
	delete(c.sessionLobby, lobby.Host.ID())

	pm, err := c.factory()
	if err != nil {
		c.logger.Error("cannot create online match", "code", lobby.Code, "err", err)
		lobby.Host.Send(LobbyErrorEvent{Message: "Failed to create match"})
		joiner.Send(LobbyErrorEvent{Message: "Failed to create match"})
		return
	}

	matchID := MatchID(fmt.Sprintf("match-%s-%d", lobby.Code, time.Now().UnixNano()))
	match := NewOnlineMatch(matchID, lobby.Code, pm, lobby.Host, joiner)

	c.matches[matchID] = match
	c.sessionMatch[lobby.Host.ID()] = matchID
	c.sessionMatch[joiner.ID()] = matchID
	c.logger.Info("online match started", "match", matchID, "host", lobby.Host.ID(), "joiner", joiner.ID())

	lobby.Host.Send(MatchStartedEvent{MatchID: matchID, Side: HostSide, Code: lobby.Code})
	joiner.Send(MatchStartedEvent{MatchID: matchID, Side: JoinerSide, Code: lobby.Code})

	go match.Run(func(result MatchResult) {
		c.handleMatchEnded(match, result)
	})
}

func (c *Coordinator) handleMatchEnded(match *OnlineMatch, result MatchResult) {
	c.mu.Lock()
	delete(c.matches, match.ID())
	for _, id := range []SessionID{match.host.ID(), match.joiner.ID()} {
		delete(c.sessionMatch, id)
	}
	c.mu.Unlock()

	c.logger.Info("online match ended",
		"match", result.MatchID,
		"reason", result.Reason,
		"winner", result.Winner,
		"ticks", result.Ticks,
	)

	evt := MatchEndedEvent{
		MatchID:   result.MatchID,
		Reason:    result.Reason,
		Winner:    result.Winner,
		RedLives:  result.RedLives,
		BlueLives: result.BlueLives,
	}
	match.host.Send(evt)
	match.joiner.Send(evt)

	if c.saver != nil && result.Reason == MatchEndReasonCompleted {
		if err := c.saver.SaveResult(result); err != nil {
			c.logger.Warn("could not save online match", "match", result.MatchID, "err", err)
		}
	}
}

func (c *Coordinator) handleCancelLobby(msg CancelLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	code := strings.ToUpper(msg.Code)
	lobby, exists := c.lobbies[code]
	if !exists || lobby.Host.ID() != msg.SessionID {
		return
	}
	delete(c.lobbies, code)
	delete(c.sessionLobby, msg.SessionID)
	c.logger.Debug("lobby cancelled", "code", code)
}

func (c *Coordinator) handleLeaveMatch(msg LeaveMatchMsg) {
	c.mu.RLock()
	match, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if exists && match.SideOf(msg.SessionID) != pong.SideNone {
		match.PlayerLeft(msg.SessionID)
	}
}

func (c *Coordinator) handlePlayerInput(msg PlayerInputMsg) {
	c.mu.RLock()
	match, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if !exists {
		return
	}
	if side := match.SideOf(msg.SessionID); side != pong.SideNone {
		match.SendInput(side, msg.Axis)
	}
}

func (c *Coordinator) handleSessionDisconnected(msg SessionDisconnectedMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if code, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		delete(c.lobbies, code)
		delete(c.sessionLobby, msg.SessionID)
	}

	if matchID, inMatch := c.sessionMatch[msg.SessionID]; inMatch {
		if match, exists := c.matches[matchID]; exists {
			match.PlayerLeft(msg.SessionID)
		}
	}
}

// busy reports whether id already hosts a lobby or plays a match.
func (c *Coordinator) busy(id SessionID) bool {
	_, inLobby := c.sessionLobby[id]
	_, inMatch := c.sessionMatch[id]
	return inLobby || inMatch
}

func (c *Coordinator) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpiredLobbies(time.Now())
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) cleanupExpiredLobbies(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for code, lobby := range c.lobbies {
		if now.Sub(lobby.CreatedAt) > c.config.LobbyTimeout {
			lobby.Host.Send(LobbyErrorEvent{Message: "Lobby expired"})
			delete(c.sessionLobby, lobby.Host.ID())
			delete(c.lobbies, code)
		}
	}
}

func (c *Coordinator) generateUniqueCode() string {
	for {
		code := generateJoinCode()
		if _, exists := c.lobbies[code]; !exists {
			return code
		}
	}
}

// generateJoinCode creates a 6-character uppercase code from the base32
// alphabet (A-Z, 2-7).
func generateJoinCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return base32.StdEncoding.EncodeToString(b)[:6]
}

// Lobby returns a lobby by code.
func (c *Coordinator) Lobby(code string) (*Lobby, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.lobbies[strings.ToUpper(code)]
	return l, ok
}

// Match returns a running match by ID.
func (c *Coordinator) Match(id MatchID) (*OnlineMatch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.matches[id]
	return m, ok
}

// LobbyCount returns the number of open lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lobbies)
}

// MatchCount returns the number of running matches.
func (c *Coordinator) MatchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matches)
}
