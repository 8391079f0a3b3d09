// Package memory implements the durable per-user fact store: upsertable
// entries keyed by (user, type, key) that survive individual sessions for
// the lifetime of the process.
package memory

import (
	"fmt"
	"sync"
	"time"
)

// EntryType categorizes a stored fact.
type EntryType string

// Known entry types.
const (
	TypeSkill       EntryType = "skill"
	TypeCourse      EntryType = "course"
	TypeAssignment  EntryType = "assignment"
	TypeGoal        EntryType = "goal"
	TypeAchievement EntryType = "achievement"
	TypePreference  EntryType = "preference"
)

// Entry is one durable fact about a user. At most one live entry exists per
// (UserID, Type, Key); writes are upserts. CreatedAt is fixed at first write,
// UpdatedAt refreshed on every subsequent write.
type Entry struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Type      EntryType      `json:"type"`
	Key       string         `json:"key"`
	Value     map[string]any `json:"value"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (e *Entry) clone() *Entry {
	cp := *e
	cp.Value = copyMap(e.Value)
	cp.Metadata = copyMap(e.Metadata)
	return &cp
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Bank is the in-memory fact store shared across all concurrent requests.
// Reads return copies so callers cannot corrupt stored state.
type Bank struct {
	mu       sync.RWMutex
	memories map[string][]*Entry
}

// NewBank constructs an empty memory bank.
func NewBank() *Bank {
	return &Bank{memories: make(map[string][]*Entry)}
}

// Store upserts an entry by (userID, typ, key). On update the value is
// replaced, metadata is shallow-merged into the existing metadata, and
// UpdatedAt is refreshed while CreatedAt stays fixed.
func (b *Bank) Store(userID string, typ EntryType, key string, value map[string]any, metadata map[string]any) *Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	for _, entry := range b.memories[userID] {
		if entry.Type == typ && entry.Key == key {
			entry.Value = copyMap(value)
			if metadata != nil {
				if entry.Metadata == nil {
					entry.Metadata = map[string]any{}
				}
				for k, v := range metadata {
					entry.Metadata[k] = v
				}
			}
			entry.UpdatedAt = now
			return entry.clone()
		}
	}

	entry := &Entry{
		ID:        fmt.Sprintf("%s-%s-%s-%d", userID, typ, key, now.UnixMilli()),
		UserID:    userID,
		Type:      typ,
		Key:       key,
		Value:     copyMap(value),
		Metadata:  copyMap(metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.memories[userID] = append(b.memories[userID], entry)
	return entry.clone()
}

// Retrieve returns copies of the user's entries filtered by type and key.
// An empty typ or key matches everything.
func (b *Bank) Retrieve(userID string, typ EntryType, key string) []*Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []*Entry
	for _, entry := range b.memories[userID] {
		if typ != "" && entry.Type != typ {
			continue
		}
		if key != "" && entry.Key != key {
			continue
		}
		out = append(out, entry.clone())
	}
	return out
}

// All returns copies of every entry stored for the user.
func (b *Bank) All(userID string) []*Entry {
	return b.Retrieve(userID, "", "")
}

// SkillProgress returns the recorded progress percentage for a skill, or 0.
func (b *Bank) SkillProgress(userID, skill string) int {
	entries := b.Retrieve(userID, TypeSkill, skill)
	if len(entries) == 0 {
		return 0
	}
	switch p := entries[0].Value["progress"].(type) {
	case int:
		return p
	case float64:
		return int(p)
	}
	return 0
}

// CourseHistory returns the keys of every stored course entry.
func (b *Bank) CourseHistory(userID string) []string {
	entries := b.Retrieve(userID, TypeCourse, "")
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Key
	}
	return out
}

// Assignments projects the stored assignment entries as value maps with the
// entry id attached.
func (b *Bank) Assignments(userID string) []map[string]any {
	return projectValues(b.Retrieve(userID, TypeAssignment, ""))
}

// Goals projects the stored goal entries as value maps with the entry id attached.
func (b *Bank) Goals(userID string) []map[string]any {
	return projectValues(b.Retrieve(userID, TypeGoal, ""))
}

func projectValues(entries []*Entry) []map[string]any {
	out := make([]map[string]any, len(entries))
	for i, e := range entries {
		v := copyMap(e.Value)
		if v == nil {
			v = map[string]any{}
		}
		v["id"] = e.ID
		out[i] = v
	}
	return out
}

// UpdateSkillProgress upserts a skill entry with the given progress
// percentage and the status derived from it.
func (b *Bank) UpdateSkillProgress(userID, skill string, progress int) {
	b.Store(userID, TypeSkill, skill, map[string]any{
		"progress":    progress,
		"status":      ProgressStatus(progress),
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
	}, nil)
}

// ProgressStatus maps a completion percentage onto a level name.
func ProgressStatus(progress int) string {
	switch {
	case progress >= 100:
		return "completed"
	case progress >= 75:
		return "advanced"
	case progress >= 50:
		return "intermediate"
	default:
		return "beginner"
	}
}

// AddCourse records that the user is enrolled in a course.
func (b *Bank) AddCourse(userID, course string, metadata map[string]any) {
	b.Store(userID, TypeCourse, course, map[string]any{"enrolled": true}, metadata)
}

// AddAssignment records an assignment with its deadline.
func (b *Bank) AddAssignment(userID, assignment, deadline string, metadata map[string]any) {
	b.Store(userID, TypeAssignment, assignment, map[string]any{
		"deadline": deadline,
		"status":   "pending",
	}, metadata)
}

// AddGoal records an active goal.
func (b *Bank) AddGoal(userID, goal string, metadata map[string]any) {
	b.Store(userID, TypeGoal, goal, map[string]any{
		"status":    "active",
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	}, metadata)
}

// Delete removes a single entry, reporting whether anything was removed.
func (b *Bank) Delete(userID string, typ EntryType, key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.memories[userID]
	for i, entry := range entries {
		if entry.Type == typ && entry.Key == key {
			b.memories[userID] = append(entries[:i], entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every entry stored for the user.
func (b *Bank) Clear(userID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.memories, userID)
}
