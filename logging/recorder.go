package logging

import (
	"sync"
	"time"
)

// Entry is one recorded log line.
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Recorder implements Logger, forwarding every call to a next Logger while
// keeping the most recent maxEntries entries in memory. The buffer is bounded:
// the oldest entry is dropped once the limit is reached.
type Recorder struct {
	next       Logger
	maxEntries int

	mu      sync.Mutex
	entries []Entry
}

// DefaultMaxEntries is the recorder's default buffer size.
const DefaultMaxEntries = 1000

// NewRecorder wraps next with a bounded recording buffer. maxEntries <= 0
// falls back to DefaultMaxEntries.
func NewRecorder(next Logger, maxEntries int) *Recorder {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Recorder{next: next, maxEntries: maxEntries}
}

// Debug records and forwards a debug message.
func (r *Recorder) Debug(msg string, args ...any) { r.record("DEBUG", msg, args); r.next.Debug(msg, args...) }

// Info records and forwards an informational message.
func (r *Recorder) Info(msg string, args ...any) { r.record("INFO", msg, args); r.next.Info(msg, args...) }

// Warn records and forwards a warning message.
func (r *Recorder) Warn(msg string, args ...any) { r.record("WARN", msg, args); r.next.Warn(msg, args...) }

// Error records and forwards an error message.
func (r *Recorder) Error(msg string, args ...any) { r.record("ERROR", msg, args); r.next.Error(msg, args...) }

func (r *Recorder) record(level, msg string, args []any) {
	entry := Entry{Timestamp: time.Now(), Level: level, Message: msg, Fields: foldArgs(args)}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	if len(r.entries) > r.maxEntries {
		r.entries = r.entries[len(r.entries)-r.maxEntries:]
	}
}

// Recent returns up to limit of the newest entries, oldest first, filtered by
// level when level is non-empty. limit <= 0 means no limit.
func (r *Recorder) Recent(level string, limit int) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if level != "" && e.Level != level {
			continue
		}
		filtered = append(filtered, e)
	}
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}
	return filtered
}

// Clear discards all recorded entries.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// foldArgs converts alternating key/value args into a field map. A trailing
// key without a value is kept under "!BADKEY" like slog does.
func foldArgs(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	fields := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = "!BADKEY"
		}
		if i+1 < len(args) {
			fields[key] = args[i+1]
		} else {
			fields[key] = nil
		}
	}
	return fields
}
