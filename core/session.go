package core

import (
	"sync"
	"time"
)

// Session is a conversational container owned by a single user: an ordered
// message log plus the embedded Context that agents receive. It is safe for
// concurrent access.
//
// Contract:
//   - lastAccessed is monotonically non-decreasing and refreshed on every
//     read or write.
//   - AppendMessage keeps the flat log and the Context's conversation
//     history in lock-step.
//   - Messages returns a defensive copy; the log itself is append-only.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time

	mu           sync.RWMutex
	lastAccessed time.Time
	messages     []Message
	context      *Context
}

// NewSession allocates a session with an empty log and a context seeded from
// the given profile (which may be nil and attached later).
func NewSession(userID string, profile *UserProfile) *Session {
	now := time.Now()
	id := NewID()
	return &Session{
		ID:           id,
		UserID:       userID,
		CreatedAt:    now,
		lastAccessed: now,
		context:      NewContext(userID, id, profile),
	}
}

// Touch refreshes lastAccessed, keeping it monotonically non-decreasing.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now := time.Now(); now.After(s.lastAccessed) {
		s.lastAccessed = now
	}
}

// LastAccessed returns the time of the most recent read or write.
func (s *Session) LastAccessed() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAccessed
}

// AppendMessage appends to the message log and to the context history in
// lock-step, refreshing lastAccessed.
func (s *Session) AppendMessage(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	if now := time.Now(); now.After(s.lastAccessed) {
		s.lastAccessed = now
	}
	// Both appends stay inside the same critical section so concurrent
	// writers land in the same relative order in the log and the history.
	s.context.AppendHistory(msg)
}

// Messages returns a copy of the full ordered message log.
func (s *Session) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// RecentMessages returns a copy of the last n messages (all of them when the
// log is shorter).
func (s *Session) RecentMessages(n int) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := len(s.messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]Message, len(s.messages)-start)
	copy(out, s.messages[start:])
	return out
}

// MessageCount returns the current log length.
func (s *Session) MessageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Context returns the embedded mutable context shared with agents.
func (s *Session) Context() *Context { return s.context }
