package multiplayer

import "sync"

// SessionHandle is how the coordinator and matches talk to a session
// without depending on Wish or Bubble Tea.
type SessionHandle interface {
	ID() SessionID

	// Send delivers an event asynchronously. It must never block.
	Send(evt SessionEvent)

	// Done is closed when the session ends.
	Done() <-chan struct{}
}

// ChannelSession is a SessionHandle backed by a buffered channel.
type ChannelSession struct {
	id       SessionID
	events   chan SessionEvent
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSession creates a session handle buffering up to size events.
func NewChannelSession(id SessionID, size int) *ChannelSession {
	if size < 1 {
		size = 64
	}
	return &ChannelSession{
		id:     id,
		events: make(chan SessionEvent, size),
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *ChannelSession) ID() SessionID {
	return s.id
}

// Send queues evt. When the buffer is full the oldest event is dropped; a
// slow reader loses stale frames, not the newest state.
func (s *ChannelSession) Send(evt SessionEvent) {
	select {
	case <-s.done:
		return
	default:
	}

	for i := 0; i < 2; i++ {
		select {
		case s.events <- evt:
			return
		default:
		}
		select {
		case <-s.events:
		default:
		}
	}
}

// Events is the channel the UI reads from.
func (s *ChannelSession) Events() <-chan SessionEvent {
	return s.events
}

// Done returns the done channel.
func (s *ChannelSession) Done() <-chan struct{} {
	return s.done
}

// Close marks the session as done. Safe to call more than once.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// SessionRegistry tracks connected sessions.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionHandle
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[SessionID]SessionHandle),
	}
}

// Register adds a session.
func (r *SessionRegistry) Register(session SessionHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID()] = session
}

// Unregister removes a session.
func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Get retrieves a session by ID.
func (r *SessionRegistry) Get(id SessionID) (SessionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of registered sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
