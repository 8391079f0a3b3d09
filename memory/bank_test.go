package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankStoreAndRetrieve(t *testing.T) {
	b := NewBank()

	entry := b.Store("user-1", TypeSkill, "python", map[string]any{"progress": 50}, map[string]any{"source": "chat"})
	require.NotNil(t, entry)
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, TypeSkill, entry.Type)
	assert.Equal(t, "python", entry.Key)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, entry.CreatedAt, entry.UpdatedAt)

	entries := b.Retrieve("user-1", TypeSkill, "python")
	require.Len(t, entries, 1)
	assert.Equal(t, 50, entries[0].Value["progress"])
}

func TestBankUpsertKeepsCreatedAt(t *testing.T) {
	b := NewBank()
	first := b.Store("user-1", TypeSkill, "python", map[string]any{"progress": 50}, nil)

	time.Sleep(5 * time.Millisecond)
	second := b.Store("user-1", TypeSkill, "python", map[string]any{"progress": 80}, nil)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	assert.Equal(t, 80, second.Value["progress"])

	// Still exactly one entry per (user, type, key).
	assert.Len(t, b.Retrieve("user-1", TypeSkill, ""), 1)
}

func TestBankUpsertMergesMetadata(t *testing.T) {
	b := NewBank()
	b.Store("user-1", TypeSkill, "python", nil, map[string]any{"source": "chat", "kept": true})
	entry := b.Store("user-1", TypeSkill, "python", nil, map[string]any{"source": "api"})

	assert.Equal(t, "api", entry.Metadata["source"])
	assert.Equal(t, true, entry.Metadata["kept"])
}

func TestBankRetrieveFilters(t *testing.T) {
	b := NewBank()
	b.Store("user-1", TypeSkill, "python", nil, nil)
	b.Store("user-1", TypeCourse, "CS 101", nil, nil)
	b.Store("user-2", TypeSkill, "react", nil, nil)

	assert.Len(t, b.Retrieve("user-1", "", ""), 2)
	assert.Len(t, b.Retrieve("user-1", TypeSkill, ""), 1)
	assert.Empty(t, b.Retrieve("user-1", TypeGoal, ""))
	assert.Len(t, b.All("user-2"), 1)
}

func TestBankRetrieveReturnsClones(t *testing.T) {
	b := NewBank()
	b.Store("user-1", TypeSkill, "python", map[string]any{"progress": 50}, nil)

	entries := b.Retrieve("user-1", TypeSkill, "python")
	entries[0].Value["progress"] = 999

	fresh := b.Retrieve("user-1", TypeSkill, "python")
	assert.Equal(t, 50, fresh[0].Value["progress"])
}

func TestBankSkillProgress(t *testing.T) {
	b := NewBank()
	assert.Equal(t, 0, b.SkillProgress("user-1", "python"))

	b.UpdateSkillProgress("user-1", "python", 75)
	assert.Equal(t, 75, b.SkillProgress("user-1", "python"))

	// Values decoded from JSON arrive as float64.
	b.Store("user-1", TypeSkill, "react", map[string]any{"progress": float64(30)}, nil)
	assert.Equal(t, 30, b.SkillProgress("user-1", "react"))
}

func TestBankUpdateSkillProgressStoresStatus(t *testing.T) {
	b := NewBank()
	b.UpdateSkillProgress("user-1", "python", 80)

	entries := b.Retrieve("user-1", TypeSkill, "python")
	require.Len(t, entries, 1)
	assert.Equal(t, "advanced", entries[0].Value["status"])
	assert.NotEmpty(t, entries[0].Value["lastUpdated"])
}

func TestProgressStatus(t *testing.T) {
	tests := []struct {
		progress int
		want     string
	}{
		{0, "beginner"},
		{49, "beginner"},
		{50, "intermediate"},
		{74, "intermediate"},
		{75, "advanced"},
		{99, "advanced"},
		{100, "completed"},
		{150, "completed"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressStatus(tt.progress), "progress %d", tt.progress)
	}
}

func TestBankProjections(t *testing.T) {
	b := NewBank()
	b.AddCourse("user-1", "CS 101", nil)
	b.AddCourse("user-1", "MATH 101", nil)
	b.AddAssignment("user-1", "Lab Report", "Friday", nil)
	b.AddGoal("user-1", "Land an internship", nil)

	assert.Equal(t, []string{"CS 101", "MATH 101"}, b.CourseHistory("user-1"))

	assignments := b.Assignments("user-1")
	require.Len(t, assignments, 1)
	assert.Equal(t, "Friday", assignments[0]["deadline"])
	assert.Equal(t, "pending", assignments[0]["status"])
	assert.NotEmpty(t, assignments[0]["id"])

	goals := b.Goals("user-1")
	require.Len(t, goals, 1)
	assert.Equal(t, "active", goals[0]["status"])
}

func TestBankDelete(t *testing.T) {
	b := NewBank()
	b.Store("user-1", TypeSkill, "python", nil, nil)

	assert.True(t, b.Delete("user-1", TypeSkill, "python"))
	assert.False(t, b.Delete("user-1", TypeSkill, "python"))
	assert.Empty(t, b.All("user-1"))
}

func TestBankClear(t *testing.T) {
	b := NewBank()
	b.Store("user-1", TypeSkill, "python", nil, nil)
	b.Store("user-2", TypeSkill, "react", nil, nil)

	b.Clear("user-1")
	assert.Empty(t, b.All("user-1"))
	assert.Len(t, b.All("user-2"), 1)
}
