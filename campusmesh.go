// Package campusmesh provides a high-level façade over the coordinator and
// service abstractions (sessions, memory, tracing, metrics & logging) for
// building a student-advisory multi-agent chat system. Most applications
// interact with this package by:
//  1. Creating a CampusMesh via New() (optionally overriding default in-memory services)
//  2. Calling Chat() with a user message and session id (and optionally a profile or agent override)
//  3. Reading back sessions, memory projections and metrics through the accessors
//
// The façade delegates dispatch to agent.Coordinator while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a structured logger.
package campusmesh

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hupe1980/campusmesh/agent"
	"github.com/hupe1980/campusmesh/core"
	"github.com/hupe1980/campusmesh/logging"
	"github.com/hupe1980/campusmesh/memory"
	"github.com/hupe1980/campusmesh/metrics"
	"github.com/hupe1980/campusmesh/session"
	"github.com/hupe1980/campusmesh/trace"
)

// RequestError reports an invalid chat request. The HTTP layer maps it to a
// 400 response.
type RequestError struct {
	Field string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request: %s is required", e.Field)
}

// ChatRequest is one user turn.
type ChatRequest struct {
	// Message is the user's utterance. Required.
	Message string `json:"message"`
	// SessionID names the caller's session. Required; when no session with
	// this id exists, a fresh one is created and its id returned in the
	// response.
	SessionID string `json:"sessionId"`
	// UserID identifies the student. Required.
	UserID string `json:"userId"`
	// Profile is attached to the session context on every turn that carries
	// it, seeding new sessions and updating resumed ones.
	Profile *core.UserProfile `json:"userProfile,omitempty"`
	// SelectedAgent bypasses coordinator routing when it names a known agent.
	SelectedAgent string `json:"selectedAgent,omitempty"`
}

// ChatResponse is the assistant's turn.
type ChatResponse struct {
	Message   string         `json:"message"`
	AgentID   string         `json:"agentId"`
	AgentName string         `json:"agentName"`
	SessionID string         `json:"sessionId"`
	TraceID   string         `json:"traceId"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Options configures the CampusMesh instance.
type Options struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// Stores (default to in-memory implementations if not provided)
	Sessions *session.Store
	Memory   *memory.Bank

	// Observability (default to in-memory implementations if not provided)
	Tracer  *trace.Tracer
	Metrics *metrics.Collector

	// Agents registered with the coordinator. Defaults to the four
	// student-facing agents.
	Agents []core.Agent
}

// CampusMesh is the high-level façade aggregating the coordinator and services.
type CampusMesh struct {
	opts          Options
	coordinator   *agent.Coordinator
	totalSessions atomic.Int64
}

// New creates a new CampusMesh instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *CampusMesh {
	opts := Options{
		Logger:  logging.NoOpLogger{},
		Tracer:  trace.NewTracer(trace.DefaultMaxTraces),
		Metrics: metrics.NewCollector(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Sessions == nil {
		opts.Sessions = session.NewStore()
	}
	if opts.Memory == nil {
		opts.Memory = memory.NewBank()
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.NewTracer(trace.DefaultMaxTraces)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewCollector()
	}
	if opts.Agents == nil {
		opts.Agents = agent.DefaultAgents(opts.Logger)
	}

	return &CampusMesh{
		opts:        opts,
		coordinator: agent.NewCoordinator(opts.Logger, opts.Agents...),
	}
}

// Coordinator exposes the dispatching agent.
func (m *CampusMesh) Coordinator() *agent.Coordinator { return m.coordinator }

// Sessions exposes the session store.
func (m *CampusMesh) Sessions() *session.Store { return m.opts.Sessions }

// Memory exposes the long-lived memory bank.
func (m *CampusMesh) Memory() *memory.Bank { return m.opts.Memory }

// Tracer exposes the trace recorder.
func (m *CampusMesh) Tracer() *trace.Tracer { return m.opts.Tracer }

// progressSkillRe and progressValueRe drive the memory-bank write-through for
// progress updates surfaced by the skill agent.
var (
	progressSkillRe = regexp.MustCompile(`(?i)(python|javascript|react|node|java|c\+\+)`)
	progressValueRe = regexp.MustCompile(`(\d+)%`)
)

// Chat processes one user turn: resolves the session, records the user
// message, dispatches through the coordinator (or a selected agent), persists
// durable progress signals to the memory bank and records the assistant
// reply. Agent failures never surface here; only invalid input returns an
// error.
func (m *CampusMesh) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, &RequestError{Field: "message"}
	}
	if strings.TrimSpace(req.SessionID) == "" {
		return nil, &RequestError{Field: "sessionId"}
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, &RequestError{Field: "userId"}
	}

	sess, ok := m.opts.Sessions.Get(req.SessionID)
	if !ok {
		sess = m.opts.Sessions.Create(req.UserID, req.Profile)
		m.totalSessions.Add(1)
		m.opts.Logger.Info("session created", "sessionId", sess.ID, "userId", req.UserID)
	} else if req.Profile != nil {
		// A resumed session picks up the freshest profile the client sent.
		sess.Context().SetProfile(req.Profile)
	}

	traceID := core.NewID()
	rootSpan := m.opts.Tracer.StartTrace(traceID, "chat", map[string]any{
		"userId":    req.UserID,
		"sessionId": sess.ID,
	})

	if err := m.opts.Sessions.AddMessage(sess.ID, core.NewUserMessage(req.Message)); err != nil {
		m.opts.Tracer.EndSpan(rootSpan, trace.StatusError, map[string]any{"error": err.Error()})
		return nil, err
	}

	target := core.Agent(m.coordinator)
	if req.SelectedAgent != "" {
		if a, found := m.coordinator.Agent(req.SelectedAgent); found {
			target = a
		} else {
			m.opts.Logger.Warn("unknown selected agent, falling back to coordinator",
				"selectedAgent", req.SelectedAgent)
		}
	}

	spanID := m.opts.Tracer.StartSpan(traceID, "process", rootSpan, map[string]any{
		"agent":   target.ID(),
		"message": logging.Truncate(req.Message, 50),
	})

	start := time.Now()
	resp := target.Process(ctx, req.Message, sess.Context())
	latencyMS := float64(time.Since(start)) / float64(time.Millisecond)

	success := true
	spanStatus := trace.StatusCompleted
	if resp.Metadata != nil {
		if _, failed := resp.Metadata["error"]; failed {
			success = false
			spanStatus = trace.StatusError
		}
	}
	m.opts.Tracer.EndSpan(spanID, spanStatus, map[string]any{"respondingAgent": resp.AgentID})
	m.opts.Tracer.EndSpan(rootSpan, spanStatus, nil)

	m.persistProgress(req.UserID, req.Message, resp)

	assistant := core.NewAssistantMessage(resp.AgentID, resp.Content, resp.Metadata)
	if err := m.opts.Sessions.AddMessage(sess.ID, assistant); err != nil {
		return nil, err
	}

	m.opts.Metrics.RecordMessage(resp.AgentID, latencyMS, success)

	return &ChatResponse{
		Message:   resp.Content,
		AgentID:   resp.AgentID,
		AgentName: m.agentName(resp.AgentID),
		SessionID: sess.ID,
		TraceID:   traceID,
		Metadata:  resp.Metadata,
	}, nil
}

// persistProgress mirrors skill-progress updates into the memory bank so they
// outlive the session. The session scratchpad already holds the transient
// copy written by the skill agent.
func (m *CampusMesh) persistProgress(userID, message string, resp *core.Response) {
	if resp.AgentID != agent.SkillRoadmapID {
		return
	}
	tracked := false
	for _, tool := range resp.ToolsUsed {
		if tool == "trackProgress" {
			tracked = true
			break
		}
	}
	if !tracked {
		return
	}

	skillMatch := progressSkillRe.FindString(message)
	valueMatch := progressValueRe.FindStringSubmatch(message)
	if skillMatch == "" || valueMatch == nil {
		return
	}
	progress, err := strconv.Atoi(valueMatch[1])
	if err != nil {
		return
	}

	skill := strings.ToLower(skillMatch)
	m.opts.Memory.UpdateSkillProgress(userID, skill, progress)
	m.opts.Logger.Info("skill progress persisted", "userId", userID, "skill", skill, "progress", progress)
}

// CreateSession allocates a fresh session outside the chat flow.
func (m *CampusMesh) CreateSession(userID string, profile *core.UserProfile) (*core.Session, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &RequestError{Field: "userId"}
	}
	sess := m.opts.Sessions.Create(userID, profile)
	m.totalSessions.Add(1)
	m.opts.Logger.Info("session created", "sessionId", sess.ID, "userId", userID)
	return sess, nil
}

// SystemMetrics refreshes the per-agent snapshots from the live agents and
// returns the aggregated system view.
func (m *CampusMesh) SystemMetrics() metrics.SystemMetrics {
	m.opts.Metrics.UpdateAgent(m.coordinator.ID(), m.coordinator.Metrics())
	for _, a := range m.coordinator.Agents() {
		m.opts.Metrics.UpdateAgent(a.ID(), a.Metrics())
	}
	return m.opts.Metrics.System(m.opts.Sessions.Count(), int(m.totalSessions.Load()))
}

// Cleanup sweeps sessions idle longer than maxAge and returns how many were
// removed. Callers own the schedule.
func (m *CampusMesh) Cleanup(maxAge time.Duration) int {
	removed := m.opts.Sessions.Cleanup(maxAge)
	if removed > 0 {
		m.opts.Logger.Info("session cleanup", "removed", removed)
	}
	return removed
}

func (m *CampusMesh) agentName(id string) string {
	if a, ok := m.coordinator.Agent(id); ok {
		return a.Name()
	}
	return id
}
