package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/campusmesh/core"
	"github.com/hupe1980/campusmesh/logging"
)

// CoordinatorID is the coordinator's stable agent id.
const CoordinatorID = "coordinator"

// coordinatorScoreTable is the coordinator's own ranking table, one
// high-signal keyword list per known agent id. It deliberately duplicates
// neither the agents' wide CanHandle keyword sets nor their ScoreKeywords
// accessor: the coordinator ranks with its own table so routing stays
// explainable from one place (see DESIGN.md on the dual tables).
var coordinatorScoreTable = map[string][]string{
	AcademicAdvisorID:  {"course", "degree", "prerequisite", "graduation", "academic", "major", "gpa"},
	SkillRoadmapID:     {"skill", "learn", "roadmap", "tutorial", "programming", "python", "react"},
	AssignmentHelperID: {"assignment", "homework", "project", "deadline", "task", "help with"},
	CareerGuidanceID:   {"career", "internship", "resume", "job", "interview", "application"},
}

const noCandidateHelp = "I'm not sure which agent can best help with that. Could you provide more context? I have agents for:\n\n" +
	"• Academic Advisor - Course guidance and degree planning\n" +
	"• Skill Roadmap - Learning paths and skill development\n" +
	"• Assignment Helper - Homework and project assistance\n" +
	"• Career Guidance - Internships and career advice"

// Coordinator is the dispatching agent. It owns the set of domain agents,
// scores each against an incoming message, selects one, invokes it and honors
// at most one delegation hop. It is itself an Agent whose CanHandle always
// answers true.
type Coordinator struct {
	BaseAgent

	mu     sync.RWMutex
	agents map[string]core.Agent
	order  []string
}

var _ core.Agent = (*Coordinator)(nil)

// NewCoordinator constructs a coordinator owning the given agents in
// registration order.
func NewCoordinator(logger logging.Logger, agents ...core.Agent) *Coordinator {
	c := &Coordinator{
		BaseAgent: NewBaseAgent(CoordinatorID, "Coordinator Agent",
			"Orchestrates communication between agents and manages user sessions", logger),
		agents: make(map[string]core.Agent),
	}
	for _, a := range agents {
		c.Register(a)
	}
	c.Logger().Info("coordinator initialized", "agents", len(agents))
	return c
}

// DefaultAgents constructs the four student-facing agents in their canonical
// registration order.
func DefaultAgents(logger logging.Logger) []core.Agent {
	return []core.Agent{
		NewAcademicAdvisor(logger),
		NewSkillRoadmap(logger),
		NewAssignmentHelper(logger),
		NewCareerGuidance(logger),
	}
}

// Register adds an agent. Registration order is the tie-break order during
// selection.
func (c *Coordinator) Register(a core.Agent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.agents[a.ID()]; !ok {
		c.order = append(c.order, a.ID())
	}
	c.agents[a.ID()] = a
}

// Agent returns the owned agent with the given id. The coordinator answers
// for its own id as well.
func (c *Coordinator) Agent(id string) (core.Agent, bool) {
	if id == c.ID() {
		return c, true
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.agents[id]
	return a, ok
}

// Agents returns the owned agents in registration order.
func (c *Coordinator) Agents() []core.Agent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]core.Agent, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.agents[id])
	}
	return out
}

// CanHandle always returns true: the coordinator can handle any message by
// routing it.
func (c *Coordinator) CanHandle(string, *core.Context) bool { return true }

// candidate is a scored, eligible agent.
type candidate struct {
	agent core.Agent
	score int
}

// Process runs the dispatch state machine: Score, Select, Invoke, optionally
// Delegate (one hop, with the original message), Finalize. Any failure is
// caught at this boundary and converted into a degraded response attributed
// to the coordinator; callers always receive a well-formed response.
func (c *Coordinator) Process(ctx context.Context, message string, conv *core.Context) (resp *core.Response) {
	start := c.beginProcess()
	defer c.observeLatency(start)

	defer func() {
		if r := recover(); r != nil {
			c.recordError()
			c.Logger().Error("coordination failed",
				"message", logging.Truncate(message, 50), "panic", fmt.Sprint(r))
			resp = &core.Response{
				Content:  "I encountered an error while processing your request. Please try again.",
				AgentID:  c.ID(),
				Metadata: map[string]any{"error": fmt.Sprint(r)},
			}
		}
	}()

	c.Logger().Info("coordinating message", "message", logging.Truncate(message, 50))

	candidates := c.score(message, conv)
	if len(candidates) == 0 {
		return &core.Response{Content: noCandidateHelp, AgentID: c.ID()}
	}

	selected := candidates[0].agent
	c.Logger().Info("delegating to agent", "agent", selected.Name(), "score", candidates[0].score)

	resp = selected.Process(ctx, message, conv)

	// One hop only: a delegated-to agent's own delegation request is ignored.
	if resp.ShouldDelegate && resp.DelegateTo != "" {
		c.mu.RLock()
		delegate, ok := c.agents[resp.DelegateTo]
		c.mu.RUnlock()
		if ok {
			c.Logger().Info("agent delegating", "from", selected.Name(), "to", delegate.Name())
			c.recordDelegation()
			resp = delegate.Process(ctx, message, conv)
		}
	}

	finalized := *resp
	finalized.ShouldDelegate = false
	finalized.DelegateTo = ""
	finalized.Metadata = mergeMetadata(resp.Metadata, map[string]any{
		"coordinatorTime": durationMS(start),
		"selectedAgent":   selected.ID(),
	})
	return &finalized
}

// score runs the Score and Select stages: every eligible agent (CanHandle
// true) is ranked by how many of its table keywords occur in the lowercased
// message; the sort is stable so ties keep registration order.
func (c *Coordinator) score(message string, conv *core.Context) []candidate {
	lower := strings.ToLower(message)

	var out []candidate
	for _, a := range c.Agents() {
		if !a.CanHandle(message, conv) {
			continue
		}
		score := 0
		for _, kw := range coordinatorScoreTable[a.ID()] {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		out = append(out, candidate{agent: a, score: score})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	return out
}

func mergeMetadata(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
