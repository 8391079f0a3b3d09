package logging

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderForwardsAndRecords(t *testing.T) {
	rec := NewRecorder(NoOpLogger{}, 10)

	rec.Info("session created", "sessionId", "abc")
	rec.Error("chat failed", "error", "boom")

	entries := rec.Recent("", 0)
	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "session created", entries[0].Message)
	assert.Equal(t, "abc", entries[0].Fields["sessionId"])
	assert.Equal(t, "ERROR", entries[1].Level)
}

func TestRecorderLevelFilterAndLimit(t *testing.T) {
	rec := NewRecorder(NoOpLogger{}, 100)
	for i := 0; i < 5; i++ {
		rec.Info(fmt.Sprintf("info-%d", i))
		rec.Warn(fmt.Sprintf("warn-%d", i))
	}

	warns := rec.Recent("WARN", 0)
	require.Len(t, warns, 5)
	for _, e := range warns {
		assert.Equal(t, "WARN", e.Level)
	}

	last2 := rec.Recent("WARN", 2)
	require.Len(t, last2, 2)
	assert.Equal(t, "warn-3", last2[0].Message)
	assert.Equal(t, "warn-4", last2[1].Message)
}

func TestRecorderBoundsEntries(t *testing.T) {
	rec := NewRecorder(NoOpLogger{}, 3)
	for i := 0; i < 10; i++ {
		rec.Info(fmt.Sprintf("msg-%d", i))
	}

	entries := rec.Recent("", 0)
	require.Len(t, entries, 3)
	assert.Equal(t, "msg-7", entries[0].Message)
	assert.Equal(t, "msg-9", entries[2].Message)
}

func TestRecorderClear(t *testing.T) {
	rec := NewRecorder(NoOpLogger{}, 10)
	rec.Info("one")
	rec.Clear()
	assert.Empty(t, rec.Recent("", 0))
}

func TestFoldArgs(t *testing.T) {
	assert.Nil(t, foldArgs(nil))

	fields := foldArgs([]any{"key", "value", "count", 3})
	assert.Equal(t, map[string]any{"key": "value", "count": 3}, fields)

	fields = foldArgs([]any{"dangling"})
	assert.Contains(t, fields, "dangling")

	fields = foldArgs([]any{42, "value"})
	assert.Equal(t, "value", fields["!BADKEY"])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 50))
	assert.Equal(t, "abcde...", Truncate("abcdefgh", 5))
}
