package core

import "context"

// Agent is a capability unit. It can judge whether it is able to handle a
// message and, when invoked, produce a response.
//
// Implementations must:
//   - Keep CanHandle pure: calling it any number of times must not mutate
//     agent state, so the coordinator can query all agents safely.
//   - Never let Process fail past its own boundary. Internal failures are
//     recovered, counted in the Errors metric, logged, and converted into a
//     degraded but well-formed Response whose metadata carries the error.
//   - Honor context cancellation between processing steps.
type Agent interface {
	ID() string
	Name() string
	Description() string
	CanHandle(message string, conv *Context) bool
	Process(ctx context.Context, message string, conv *Context) *Response
	Metrics() AgentMetrics
}

// Response is the result of a single Process call.
type Response struct {
	Content   string         `json:"content"`
	AgentID   string         `json:"agentId"`
	ToolsUsed []string       `json:"toolsUsed,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`

	// ShouldDelegate asks the coordinator to re-invoke DelegateTo with the
	// original message. Honored at most one hop per request.
	ShouldDelegate bool   `json:"shouldDelegate,omitempty"`
	DelegateTo     string `json:"delegateTo,omitempty"`
}

// AgentMetrics is a point-in-time snapshot of an agent's counters.
// AverageResponseTime is the arithmetic mean, in milliseconds, of the
// latencies of every Process call observed on that agent instance since
// construction or the last explicit reset.
type AgentMetrics struct {
	MessagesProcessed   int     `json:"messagesProcessed"`
	AverageResponseTime float64 `json:"averageResponseTime"`
	ToolsUsed           int     `json:"toolsUsed"`
	Delegations         int     `json:"delegations"`
	Errors              int     `json:"errors"`
}
