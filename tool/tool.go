// Package tool implements the per-agent tool subsystem: named callable
// operations an agent's processing logic invokes, with registration enforced
// before use and uniform error wrapping.
package tool

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/campusmesh/core"
)

// Error codes attached to *Error for categorization.
const (
	// CodeNotFound marks a call addressed at an unregistered tool name.
	CodeNotFound = "NOT_FOUND"
	// CodeExecution marks a failure inside the tool's own function.
	CodeExecution = "EXECUTION_ERROR"
)

// Tool is a named operation an agent registers and can invoke by exact name
// during its own processing. Params arrive already extracted and typed by the
// agent's pipeline; implementations have access to the conversational context
// for scratchpad reads and writes.
type Tool struct {
	Name        string
	Description string
	Execute     func(ctx context.Context, params map[string]any, conv *core.Context) (any, error)
}

// Error represents a failure in the tool subsystem.
type Error struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// Registry holds the tools owned by a single agent. Lookup is by exact name;
// a tool must be registered before it can be executed.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds (or replaces) a tool under its name.
func (r *Registry) Register(t *Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name] = t
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute looks up and runs a tool. Calling an unregistered name yields
// *Error with CodeNotFound; a failing tool function is wrapped with
// CodeExecution unless it already returned *Error.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any, conv *core.Context) (any, error) {
	t, ok := r.Get(name)
	if !ok {
		return nil, &Error{Tool: name, Message: "tool not registered", Code: CodeNotFound}
	}
	result, err := t.Execute(ctx, params, conv)
	if err != nil {
		if toolErr, ok := err.(*Error); ok {
			return nil, toolErr
		}
		return nil, &Error{Tool: name, Message: err.Error(), Code: CodeExecution}
	}
	return result, nil
}
