package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/campusmesh/core"
	"github.com/hupe1980/campusmesh/logging"
	"github.com/hupe1980/campusmesh/tool"
)

// Intent is one recognizable sub-request of a domain agent: a predicate over
// the lowercased message and a handler that extracts parameters, runs tools
// and renders the reply.
type Intent struct {
	Name   string
	Match  func(lower string) bool
	Handle func(ctx context.Context, inv *Invocation) (string, error)
}

// Config parameterizes a DomainAgent. The four student-facing agents differ
// only in these tables.
type Config struct {
	ID          string
	Name        string
	Description string

	// Keywords is the eligibility set behind CanHandle: a case-insensitive
	// substring match of the message against any entry.
	Keywords []string

	// ScoreKeywords is the coordinator's ranking table for this agent. It is
	// deliberately a second, smaller table than Keywords: coarse eligibility
	// vs. fine ranking (see DESIGN.md).
	ScoreKeywords []string

	// Intents are tried in order; the first match wins.
	Intents []Intent

	// Fallback renders the generic reply when no intent matches.
	Fallback func(inv *Invocation) string

	// ErrorReply is the degraded-response text used when processing fails.
	ErrorReply string

	Tools []*tool.Tool
}

// Invocation carries the per-call state an intent handler works with and
// records which tools it used.
type Invocation struct {
	Message string
	Lower   string
	Conv    *core.Context

	agent     *DomainAgent
	ctx       context.Context
	toolsUsed []string
}

// CallTool executes one of the owning agent's registered tools and records
// its use for the response's toolsUsed list.
func (inv *Invocation) CallTool(name string, params map[string]any) (any, error) {
	result, err := inv.agent.ExecuteTool(inv.ctx, name, params, inv.Conv)
	if err != nil {
		return nil, err
	}
	inv.toolsUsed = append(inv.toolsUsed, name)
	return result, nil
}

// Profile returns the conversation's profile snapshot, which may be nil.
func (inv *Invocation) Profile() *core.UserProfile { return inv.Conv.Profile() }

// ProfileField returns the named profile field or fallback when the profile
// is absent or the field empty.
func (inv *Invocation) ProfileField(get func(*core.UserProfile) string, fallback string) string {
	if p := inv.Profile(); p != nil {
		if v := get(p); v != "" {
			return v
		}
	}
	return fallback
}

// DomainAgent is the generic intent → extractor → lookup → renderer pipeline
// behind all four student-facing agents.
type DomainAgent struct {
	BaseAgent
	cfg Config
}

var _ core.Agent = (*DomainAgent)(nil)

// NewDomainAgent builds an agent from its configuration table, registering
// the configured tools.
func NewDomainAgent(cfg Config, logger logging.Logger) *DomainAgent {
	a := &DomainAgent{
		BaseAgent: NewBaseAgent(cfg.ID, cfg.Name, cfg.Description, logger),
		cfg:       cfg,
	}
	for _, t := range cfg.Tools {
		a.RegisterTool(t)
	}
	return a
}

// ScoreKeywords exposes the agent's ranking table for callers that maintain
// their own scoring (the coordinator keeps its own table, see DESIGN.md).
func (a *DomainAgent) ScoreKeywords() []string {
	return append([]string(nil), a.cfg.ScoreKeywords...)
}

// CanHandle reports whether any configured keyword occurs in the message,
// case-insensitively. It is pure: no agent state is touched.
func (a *DomainAgent) CanHandle(message string, _ *core.Context) bool {
	lower := strings.ToLower(message)
	for _, kw := range a.cfg.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Process runs the intent pipeline. It never fails past its own boundary:
// tool failures, handler errors, cancellation and panics all increment the
// Errors counter and produce a degraded but well-formed response whose
// metadata carries the error.
func (a *DomainAgent) Process(ctx context.Context, message string, conv *core.Context) (resp *core.Response) {
	start := a.beginProcess()
	defer a.observeLatency(start)

	defer func() {
		if r := recover(); r != nil {
			a.recordError()
			a.Logger().Error("agent panic recovered",
				"agent", a.Name(), "message", logging.Truncate(message, 50), "panic", fmt.Sprint(r))
			resp = a.degraded(fmt.Sprintf("panic: %v", r))
		}
	}()

	a.Logger().Info("processing message", "agent", a.Name(), "message", logging.Truncate(message, 50))

	inv := &Invocation{
		Message: message,
		Lower:   strings.ToLower(message),
		Conv:    conv,
		agent:   a,
		ctx:     ctx,
	}

	if err := ctx.Err(); err != nil {
		a.recordError()
		a.Logger().Warn("processing cancelled", "agent", a.Name(), "error", err.Error())
		return a.degraded(err.Error())
	}

	content, err := a.dispatch(ctx, inv)
	if err != nil {
		a.recordError()
		a.Logger().Error("agent processing failed",
			"agent", a.Name(), "message", logging.Truncate(message, 50), "error", err.Error())
		return a.degraded(err.Error())
	}

	elapsed := durationMS(start)
	return &core.Response{
		Content:   content,
		AgentID:   a.ID(),
		ToolsUsed: inv.toolsUsed,
		Metadata:  map[string]any{"responseTime": elapsed},
	}
}

func (a *DomainAgent) dispatch(ctx context.Context, inv *Invocation) (string, error) {
	for _, intent := range a.cfg.Intents {
		if !intent.Match(inv.Lower) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return intent.Handle(ctx, inv)
	}
	return a.cfg.Fallback(inv), nil
}

func (a *DomainAgent) degraded(errText string) *core.Response {
	return &core.Response{
		Content:  a.cfg.ErrorReply,
		AgentID:  a.ID(),
		Metadata: map[string]any{"error": errText},
	}
}

// containsAny reports whether any of the substrings occurs in lower.
func containsAny(lower string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
