package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/campusmesh/core"
)

func TestRegistryExecute(t *testing.T) {
	r := NewRegistry()
	r.Register(&Tool{
		Name: "echo",
		Execute: func(_ context.Context, params map[string]any, _ *core.Context) (any, error) {
			return params["value"], nil
		},
	})

	result, err := r.Execute(context.Background(), "echo", map[string]any{"value": "hi"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", result)
}

func TestRegistryExecuteNotFound(t *testing.T) {
	r := NewRegistry()

	_, err := r.Execute(context.Background(), "missing", nil, nil)
	require.Error(t, err)

	var toolErr *Error
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeNotFound, toolErr.Code)
	assert.Equal(t, "missing", toolErr.Tool)
}

func TestRegistryExecuteWrapsFailure(t *testing.T) {
	r := NewRegistry()
	r.Register(&Tool{
		Name: "boom",
		Execute: func(context.Context, map[string]any, *core.Context) (any, error) {
			return nil, errors.New("backend unavailable")
		},
	})

	_, err := r.Execute(context.Background(), "boom", nil, nil)
	var toolErr *Error
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeExecution, toolErr.Code)
	assert.Contains(t, toolErr.Message, "backend unavailable")
}

func TestRegistryExecutePreservesToolError(t *testing.T) {
	r := NewRegistry()
	orig := &Error{Tool: "boom", Message: "bad input", Code: CodeExecution}
	r.Register(&Tool{
		Name: "boom",
		Execute: func(context.Context, map[string]any, *core.Context) (any, error) {
			return nil, orig
		},
	})

	_, err := r.Execute(context.Background(), "boom", nil, nil)
	var toolErr *Error
	require.ErrorAs(t, err, &toolErr)
	assert.Same(t, orig, toolErr)
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		r.Register(&Tool{Name: name, Execute: func(context.Context, map[string]any, *core.Context) (any, error) {
			return nil, nil
		}})
	}

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Names())
}

func TestErrorString(t *testing.T) {
	err := &Error{Tool: "echo", Message: "broken", Code: CodeExecution}
	assert.Equal(t, "tool error [EXECUTION_ERROR] in echo: broken", err.Error())

	err = &Error{Tool: "echo", Message: "broken"}
	assert.Equal(t, "tool error in echo: broken", err.Error())
}
