// Package session implements the in-memory session store: per-user
// conversation logs with mutable context, last-access tracking and an
// age-based sweep the owning process is expected to invoke periodically.
package session

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/campusmesh/core"
)

// DefaultMaxAge is the sweep threshold used when callers have no opinion:
// sessions untouched for 7 days are reclaimed.
const DefaultMaxAge = 7 * 24 * time.Hour

// Scratchpad keys written by the mention-extraction side effect of AddMessage.
const (
	MemoryKeyMentionedSkills      = "mentionedSkills"
	MemoryKeyMentionedCourses     = "mentionedCourses"
	MemoryKeyMentionedAssignments = "mentionedAssignments"
	MemoryKeyLastUpdated          = "lastUpdated"
)

// extractionWindow is how many trailing messages the mention scan covers.
const extractionWindow = 10

// skillVocabulary is the fixed keyword set scanned for skill mentions.
var skillVocabulary = []string{"python", "javascript", "react", "node", "java", "c++", "aws", "docker"}

// courseCodePattern matches course codes such as "CS 101" or "MATH2200".
var courseCodePattern = regexp.MustCompile(`[A-Z]{2,4}\s?\d{3,4}`)

// Store is a volatile session store backed by process-local maps. It is safe
// for concurrent access; cleanup sweeps only contend with requests at the
// map and per-session lock level.
type Store struct {
	mu           sync.RWMutex
	sessions     map[string]*core.Session
	userSessions map[string][]string
}

// NewStore constructs an empty in-memory session store.
func NewStore() *Store {
	return &Store{
		sessions:     make(map[string]*core.Session),
		userSessions: make(map[string][]string),
	}
}

// Create allocates a fresh session for the user with an empty message log
// and a context seeded from the given profile (nil is fine).
func (s *Store) Create(userID string, profile *core.UserProfile) *core.Session {
	sess := core.NewSession(userID, profile)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	s.userSessions[userID] = append(s.userSessions[userID], sess.ID)
	return sess
}

// Get returns the live session for id, refreshing lastAccessed as a side
// effect of the read.
func (s *Store) Get(id string) (*core.Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	sess.Touch()
	return sess, true
}

// AddMessage appends a message to the session's log and context history in
// lock-step, then re-derives the mention scratchpad from the recent
// conversation. Returns core.ErrSessionNotFound for unknown ids.
func (s *Store) AddMessage(sessionID string, msg core.Message) error {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("add message to %s: %w", sessionID, core.ErrSessionNotFound)
	}

	sess.AppendMessage(msg)
	extractMentions(sess)
	return nil
}

// extractMentions scans the last few messages for the skill vocabulary and
// for course codes, storing deduplicated hit lists into the context
// scratchpad. Assignments have no extractor yet, the key is kept for
// scratchpad-shape stability.
func extractMentions(sess *core.Session) {
	recent := sess.RecentMessages(extractionWindow)

	var skills, courses []string
	seenSkill := map[string]bool{}
	seenCourse := map[string]bool{}

	for _, msg := range recent {
		lower := strings.ToLower(msg.Content)
		for _, skill := range skillVocabulary {
			if strings.Contains(lower, skill) && !seenSkill[skill] {
				seenSkill[skill] = true
				skills = append(skills, skill)
			}
		}
		for _, course := range courseCodePattern.FindAllString(msg.Content, -1) {
			if !seenCourse[course] {
				seenCourse[course] = true
				courses = append(courses, course)
			}
		}
	}

	sess.Context().MergeMemory(map[string]any{
		MemoryKeyMentionedSkills:      skills,
		MemoryKeyMentionedCourses:     courses,
		MemoryKeyMentionedAssignments: []string{},
		MemoryKeyLastUpdated:          time.Now().UTC().Format(time.RFC3339),
	})
}

// UserSessions returns the user's sessions sorted by lastAccessed descending.
func (s *Store) UserSessions(userID string) []*core.Session {
	s.mu.RLock()
	ids := append([]string(nil), s.userSessions[userID]...)
	out := make([]*core.Session, 0, len(ids))
	for _, id := range ids {
		if sess, ok := s.sessions[id]; ok {
			out = append(out, sess)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastAccessed().After(out[j].LastAccessed())
	})
	return out
}

// Delete removes a single session from the store and the per-user index.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(id)
}

func (s *Store) deleteLocked(id string) {
	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	ids := s.userSessions[sess.UserID]
	for i, sid := range ids {
		if sid == id {
			s.userSessions[sess.UserID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(s.userSessions[sess.UserID]) == 0 {
		delete(s.userSessions, sess.UserID)
	}
	delete(s.sessions, id)
}

// Cleanup removes every session whose lastAccessed is older than maxAge and
// returns the count removed. maxAge <= 0 falls back to DefaultMaxAge.
func (s *Store) Cleanup(maxAge time.Duration) int {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	cutoff := time.Now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()
	var stale []string
	for id, sess := range s.sessions {
		if sess.LastAccessed().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		s.deleteLocked(id)
	}
	return len(stale)
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
