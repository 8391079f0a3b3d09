package trace

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracerSpanLifecycle(t *testing.T) {
	tr := NewTracer(0)

	root := tr.StartTrace("trace-1", "chat", map[string]any{"userId": "u1"})
	child := tr.StartSpan("trace-1", "process", root, nil)

	spans := tr.Trace("trace-1")
	require.Len(t, spans, 2)
	assert.Equal(t, StatusStarted, spans[0].Status)
	assert.Equal(t, root, spans[1].ParentID)

	tr.EndSpan(child, StatusCompleted, map[string]any{"agent": "academic-advisor"})
	tr.EndSpan(root, StatusCompleted, nil)

	spans = tr.Trace("trace-1")
	for _, sp := range spans {
		assert.Equal(t, StatusCompleted, sp.Status)
		assert.False(t, sp.EndTime.IsZero())
		assert.GreaterOrEqual(t, sp.DurationMS, int64(0))
	}
	assert.Equal(t, "academic-advisor", spans[1].Metadata["agent"])
}

func TestTracerEndUnknownSpanIsNoOp(t *testing.T) {
	tr := NewTracer(0)
	tr.EndSpan("nope", StatusError, nil)
	assert.Equal(t, 0, tr.Len())
}

func TestTracerEndSpanTwice(t *testing.T) {
	tr := NewTracer(0)
	root := tr.StartTrace("trace-1", "chat", nil)

	tr.EndSpan(root, StatusCompleted, nil)
	tr.EndSpan(root, StatusError, nil)

	spans := tr.Trace("trace-1")
	require.Len(t, spans, 1)
	assert.Equal(t, StatusCompleted, spans[0].Status)
}

func TestTracerBoundsTraces(t *testing.T) {
	tr := NewTracer(3)
	for i := 0; i < 10; i++ {
		tr.StartTrace(fmt.Sprintf("trace-%d", i), "chat", nil)
	}

	assert.Equal(t, 3, tr.Len())
	assert.Empty(t, tr.Trace("trace-0"))
	assert.Len(t, tr.Trace("trace-9"), 1)
}

func TestTracerEvictionForgetsActiveSpans(t *testing.T) {
	tr := NewTracer(1)
	oldRoot := tr.StartTrace("trace-old", "chat", nil)
	tr.StartTrace("trace-new", "chat", nil)

	// trace-old was evicted; ending its span must be a no-op, not a resurrect.
	tr.EndSpan(oldRoot, StatusCompleted, nil)
	assert.Empty(t, tr.Trace("trace-old"))
	assert.Equal(t, 1, tr.Len())
}

func TestTracerClear(t *testing.T) {
	tr := NewTracer(0)
	tr.StartTrace("trace-1", "chat", nil)
	tr.Clear()
	assert.Equal(t, 0, tr.Len())
	assert.Empty(t, tr.Trace("trace-1"))
}
