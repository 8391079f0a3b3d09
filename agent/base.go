package agent

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/campusmesh/core"
	"github.com/hupe1980/campusmesh/logging"
	"github.com/hupe1980/campusmesh/tool"
)

// BaseAgent bundles identity, the owned tool registry and the metrics record
// shared by every concrete agent. Embed it and supply CanHandle/Process to
// satisfy core.Agent. Metrics bookkeeping is goroutine-safe; the lock is held
// only across counter updates, never across processing or tool execution.
type BaseAgent struct {
	id          string
	name        string
	description string
	registry    *tool.Registry
	logger      logging.Logger

	mu             sync.Mutex
	metrics        core.AgentMetrics
	latencyTotalMS float64
	latencySamples int
}

// NewBaseAgent constructs a BaseAgent with an empty tool registry. A nil
// logger falls back to the no-op logger.
func NewBaseAgent(id, name, description string, logger logging.Logger) BaseAgent {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return BaseAgent{
		id:          id,
		name:        name,
		description: description,
		registry:    tool.NewRegistry(),
		logger:      logger,
	}
}

// ID returns the stable agent identifier used for routing and attribution.
func (b *BaseAgent) ID() string { return b.id }

// Name returns the human-readable display name.
func (b *BaseAgent) Name() string { return b.name }

// Description returns a short description of the agent's competency.
func (b *BaseAgent) Description() string { return b.description }

// Logger returns the agent's logger.
func (b *BaseAgent) Logger() logging.Logger { return b.logger }

// RegisterTool adds a tool to the agent's registry.
func (b *BaseAgent) RegisterTool(t *tool.Tool) { b.registry.Register(t) }

// ToolNames returns the registered tool names.
func (b *BaseAgent) ToolNames() []string { return b.registry.Names() }

// ExecuteTool runs a registered tool by exact name. Calling an unregistered
// name is fatal to the call and surfaces at the owning agent's Process
// boundary; successful execution increments the ToolsUsed counter.
func (b *BaseAgent) ExecuteTool(ctx context.Context, name string, params map[string]any, conv *core.Context) (any, error) {
	result, err := b.registry.Execute(ctx, name, params, conv)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.metrics.ToolsUsed++
	b.mu.Unlock()
	return result, nil
}

// Metrics returns a snapshot copy of the agent's counters; mutating the
// returned value cannot corrupt agent state.
func (b *BaseAgent) Metrics() core.AgentMetrics {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.metrics
}

// ResetMetrics zeroes all counters including the latency accumulators. This
// is the only operation allowed to reset AverageResponseTime.
func (b *BaseAgent) ResetMetrics() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.metrics = core.AgentMetrics{}
	b.latencyTotalMS = 0
	b.latencySamples = 0
}

// durationMS returns the elapsed wall-clock time since start in milliseconds.
func durationMS(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// beginProcess increments MessagesProcessed and returns the start time the
// matching observeLatency call must receive.
func (b *BaseAgent) beginProcess() time.Time {
	b.mu.Lock()
	b.metrics.MessagesProcessed++
	b.mu.Unlock()
	return time.Now()
}

// observeLatency folds the elapsed wall-clock duration of one Process call
// into the running mean. AverageResponseTime stays the exact arithmetic mean
// of every observed latency.
func (b *BaseAgent) observeLatency(start time.Time) {
	elapsed := float64(time.Since(start)) / float64(time.Millisecond)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.latencyTotalMS += elapsed
	b.latencySamples++
	b.metrics.AverageResponseTime = b.latencyTotalMS / float64(b.latencySamples)
}

// recordError increments the Errors counter.
func (b *BaseAgent) recordError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.metrics.Errors++
}

// recordDelegation increments the Delegations counter.
func (b *BaseAgent) recordDelegation() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.metrics.Delegations++
}
