package match

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrServerFull is returned when the session limit has been reached.
var ErrServerFull = errors.New("match: too many active sessions")

// SessionHandle is the transport-neutral interface for reaching a player.
// Runners send events through it without depending on Wish/Bubble Tea.
type SessionHandle interface {
	ID() SessionID

	// Send must never block the runner.
	Send(evt SessionEvent)

	// Done closes when the player goes away.
	Done() <-chan struct{}
}

// ChannelSession is a SessionHandle backed by a buffered channel.
// A Bubble Tea program drains Events; when it falls behind, the oldest
// events are dropped since every SnapshotEvent supersedes the ones before it.
// A MatchEndedEvent carries the tally and is never dropped.
type ChannelSession struct {
	id       SessionID
	sendMu   sync.Mutex
	events   chan SessionEvent
	dropped  atomic.Uint64
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSession creates a session buffering up to size events.
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

func (s *ChannelSession) ID() SessionID {
	return s.id
}

// Send queues evt, evicting the oldest droppable event if the buffer is
// full. Events sent after Close are discarded.
func (s *ChannelSession) Send(evt SessionEvent) {
	select {
	case <-s.done:
		return
	default:
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	select {
	case s.events <- evt:
		return
	default:
	}

	queued := append(s.drain(), evt)
	i := oldestDroppable(queued)
	queued = append(queued[:i], queued[i+1:]...)
	s.dropped.Add(1)

	for _, e := range queued {
		select {
		case s.events <- e:
		default:
			s.dropped.Add(1)
		}
	}
}

// drain empties the buffer without blocking, oldest first.
func (s *ChannelSession) drain() []SessionEvent {
	var out []SessionEvent
	for {
		select {
		case e := <-s.events:
			out = append(out, e)
		default:
			return out
		}
	}
}

// oldestDroppable returns the first event that is not a match result, or
// 0 when every queued event is one.
func oldestDroppable(events []SessionEvent) int {
	for i, e := range events {
		if _, ok := e.(MatchEndedEvent); !ok {
			return i
		}
	}
	return 0
}

// Events is read by the front end.
func (s *ChannelSession) Events() <-chan SessionEvent {
	return s.events
}

func (s *ChannelSession) Done() <-chan struct{} {
	return s.done
}

// Dropped returns how many queued events were evicted by newer ones.
func (s *ChannelSession) Dropped() uint64 {
	return s.dropped.Load()
}

// Close ends the session. Safe to call multiple times.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// SessionRegistry tracks connected sessions and enforces a capacity.
// Thread-safe for concurrent access.
type SessionRegistry struct {
	mu       sync.RWMutex
	limit    int
	sessions map[SessionID]SessionHandle
}

// NewSessionRegistry creates a registry admitting at most limit sessions.
// A limit of zero or less means unlimited.
func NewSessionRegistry(limit int) *SessionRegistry {
	return &SessionRegistry{
		limit:    limit,
		sessions: make(map[SessionID]SessionHandle),
	}
}

// Register admits a session, or returns ErrServerFull.
func (r *SessionRegistry) Register(session SessionHandle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.limit > 0 && len(r.sessions) >= r.limit {
		return ErrServerFull
	}
	r.sessions[session.ID()] = session
	return nil
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
