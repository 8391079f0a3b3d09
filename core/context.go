package core

import "sync"

// UserProfile is a snapshot of who the user is. Interests and Goals keep
// their insertion order but never contain duplicates.
type UserProfile struct {
	Name      string   `json:"name"`
	Major     string   `json:"major"`
	Year      string   `json:"year"`
	Interests []string `json:"interests"`
	Goals     []string `json:"goals"`
}

// Normalize deduplicates the Interests and Goals lists preserving order.
func (p *UserProfile) Normalize() {
	p.Interests = dedupe(p.Interests)
	p.Goals = dedupe(p.Goals)
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Context is the per-session mutable state handed to every agent invocation:
// the owning user and session ids, the full ordered conversation history
// (kept in lock-step with the session's message log), an optional profile
// snapshot and an open-ended memory scratchpad used by individual tools.
// It is safe for concurrent access.
type Context struct {
	UserID    string
	SessionID string

	mu      sync.RWMutex
	history []Message
	profile *UserProfile
	memory  map[string]any
}

// NewContext creates an empty context bound to a user and session.
func NewContext(userID, sessionID string, profile *UserProfile) *Context {
	if profile != nil {
		profile.Normalize()
	}
	return &Context{
		UserID:    userID,
		SessionID: sessionID,
		profile:   profile,
		memory:    map[string]any{},
	}
}

// AppendHistory adds a message to the conversation history. Called by the
// session store so that the session log and the context history stay in
// lock-step; agents must not append directly.
func (c *Context) AppendHistory(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, msg)
}

// History returns a defensive copy of the ordered conversation history.
func (c *Context) History() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.history))
	copy(out, c.history)
	return out
}

// Profile returns the current profile snapshot or nil when none is attached.
func (c *Context) Profile() *UserProfile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.profile == nil {
		return nil
	}
	cp := *c.profile
	cp.Interests = append([]string(nil), c.profile.Interests...)
	cp.Goals = append([]string(nil), c.profile.Goals...)
	return &cp
}

// SetProfile attaches (or replaces) the profile snapshot.
func (c *Context) SetProfile(p *UserProfile) {
	if p != nil {
		p.Normalize()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = p
}

// GetMemory returns the value and existence flag for a scratchpad key.
func (c *Context) GetMemory(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.memory[key]
	return v, ok
}

// SetMemory stores a key/value pair in the scratchpad.
func (c *Context) SetMemory(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.memory[key] = value
}

// MergeMemory merges the provided delta into the scratchpad.
func (c *Context) MergeMemory(delta map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range delta {
		c.memory[k] = v
	}
}

// MemorySnapshot returns a shallow copy of the scratchpad.
func (c *Context) MemorySnapshot() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]any, len(c.memory))
	for k, v := range c.memory {
		out[k] = v
	}
	return out
}
