// Package trace implements a lightweight span tracer for request
// observability. Spans are grouped by trace id; storage is bounded by an LRU
// so long-running processes do not accumulate traces without limit.
package trace

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hupe1980/campusmesh/core"
)

// Status is the lifecycle state of a span.
type Status string

const (
	// StatusStarted marks a span that has not ended yet.
	StatusStarted Status = "started"
	// StatusCompleted marks a successfully ended span.
	StatusCompleted Status = "completed"
	// StatusError marks a span ended in failure.
	StatusError Status = "error"
)

// Span is one timed operation within a trace.
type Span struct {
	ID         string         `json:"id"`
	TraceID    string         `json:"traceId"`
	ParentID   string         `json:"parentId,omitempty"`
	Name       string         `json:"name"`
	StartTime  time.Time      `json:"startTime"`
	EndTime    time.Time      `json:"endTime,omitzero"`
	DurationMS int64          `json:"duration,omitempty"`
	Status     Status         `json:"status"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// DefaultMaxTraces bounds how many distinct traces are retained.
const DefaultMaxTraces = 512

// Tracer records spans keyed by trace id. The core writes to it and never
// reads it back for decision-making. Safe for concurrent use.
type Tracer struct {
	mu     sync.Mutex
	traces *lru.Cache[string, []*Span]
	active map[string]*Span
}

// NewTracer constructs a tracer retaining at most maxTraces traces
// (DefaultMaxTraces when maxTraces <= 0). Evicting a trace also forgets its
// still-active spans.
func NewTracer(maxTraces int) *Tracer {
	if maxTraces <= 0 {
		maxTraces = DefaultMaxTraces
	}
	t := &Tracer{active: make(map[string]*Span)}
	cache, _ := lru.NewWithEvict(maxTraces, func(traceID string, spans []*Span) {
		for _, sp := range spans {
			delete(t.active, sp.ID)
		}
	})
	t.traces = cache
	return t
}

// StartTrace opens the root span of a new trace and returns its span id.
func (t *Tracer) StartTrace(traceID, name string, metadata map[string]any) string {
	return t.StartSpan(traceID, name, "", metadata)
}

// StartSpan opens a span under the given trace, optionally parented to
// another span, and returns its id.
func (t *Tracer) StartSpan(traceID, name, parentID string, metadata map[string]any) string {
	span := &Span{
		ID:        core.NewID(),
		TraceID:   traceID,
		ParentID:  parentID,
		Name:      name,
		StartTime: time.Now(),
		Status:    StatusStarted,
		Metadata:  metadata,
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	spans, _ := t.traces.Get(traceID)
	t.traces.Add(traceID, append(spans, span))
	t.active[span.ID] = span
	return span.ID
}

// EndSpan closes an active span with the given status, merging any metadata.
// Ending an unknown or already-ended span is a no-op.
func (t *Tracer) EndSpan(spanID string, status Status, metadata map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	span, ok := t.active[spanID]
	if !ok {
		return
	}
	span.EndTime = time.Now()
	span.DurationMS = span.EndTime.Sub(span.StartTime).Milliseconds()
	span.Status = status
	if metadata != nil {
		if span.Metadata == nil {
			span.Metadata = map[string]any{}
		}
		for k, v := range metadata {
			span.Metadata[k] = v
		}
	}
	delete(t.active, spanID)
}

// Trace returns copies of all spans recorded for a trace id.
func (t *Tracer) Trace(traceID string) []Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	spans, _ := t.traces.Get(traceID)
	out := make([]Span, len(spans))
	for i, sp := range spans {
		out[i] = *sp
	}
	return out
}

// Len returns the number of retained traces.
func (t *Tracer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.traces.Len()
}

// Clear drops all traces and active spans.
func (t *Tracer) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.traces.Purge()
	t.active = make(map[string]*Span)
}
