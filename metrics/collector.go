// Package metrics implements a passive metrics sink the core writes
// per-message latency/success samples and per-agent counter snapshots to.
package metrics

import (
	"sync"
	"time"

	"github.com/hupe1980/campusmesh/core"
)

// maxSamples bounds the rolling response-time window.
const maxSamples = 1000

// AgentSnapshot pairs an agent id with its counter snapshot.
type AgentSnapshot struct {
	AgentID string `json:"agentId"`
	core.AgentMetrics
}

// SystemMetrics is the aggregate system view.
type SystemMetrics struct {
	TotalMessages       int             `json:"totalMessages"`
	TotalSessions       int             `json:"totalSessions"`
	ActiveSessions      int             `json:"activeSessions"`
	AverageResponseTime float64         `json:"averageResponseTime"`
	ErrorRate           float64         `json:"errorRate"`
	UptimeMS            int64           `json:"uptime"`
	Agents              []AgentSnapshot `json:"agentMetrics"`
}

// Collector accumulates message samples and agent snapshots. Safe for
// concurrent use.
type Collector struct {
	mu            sync.Mutex
	startTime     time.Time
	totalMessages int
	totalErrors   int
	responseTimes []float64
	agents        map[string]core.AgentMetrics
	agentOrder    []string
}

// NewCollector constructs an empty collector with uptime starting now.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		agents:    make(map[string]core.AgentMetrics),
	}
}

// RecordMessage records one handled message: its latency in milliseconds and
// whether it succeeded. Only the last 1000 latencies are retained.
func (c *Collector) RecordMessage(agentID string, latencyMS float64, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalMessages++
	if !success {
		c.totalErrors++
	}
	c.responseTimes = append(c.responseTimes, latencyMS)
	if len(c.responseTimes) > maxSamples {
		c.responseTimes = c.responseTimes[len(c.responseTimes)-maxSamples:]
	}
}

// UpdateAgent stores the latest counter snapshot for an agent.
func (c *Collector) UpdateAgent(agentID string, m core.AgentMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.agents[agentID]; !ok {
		c.agentOrder = append(c.agentOrder, agentID)
	}
	c.agents[agentID] = m
}

// System returns the aggregate view given the caller's current session counts.
func (c *Collector) System(activeSessions, totalSessions int) SystemMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	var avg float64
	if len(c.responseTimes) > 0 {
		var sum float64
		for _, rt := range c.responseTimes {
			sum += rt
		}
		avg = sum / float64(len(c.responseTimes))
	}

	var errorRate float64
	if c.totalMessages > 0 {
		errorRate = float64(c.totalErrors) / float64(c.totalMessages) * 100
	}

	agents := make([]AgentSnapshot, 0, len(c.agents))
	for _, id := range c.agentOrder {
		agents = append(agents, AgentSnapshot{AgentID: id, AgentMetrics: c.agents[id]})
	}

	return SystemMetrics{
		TotalMessages:       c.totalMessages,
		TotalSessions:       totalSessions,
		ActiveSessions:      activeSessions,
		AverageResponseTime: avg,
		ErrorRate:           errorRate,
		UptimeMS:            time.Since(c.startTime).Milliseconds(),
		Agents:              agents,
	}
}

// Reset clears all samples and snapshots and restarts the uptime clock.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startTime = time.Now()
	c.totalMessages = 0
	c.totalErrors = 0
	c.responseTimes = nil
	c.agents = make(map[string]core.AgentMetrics)
	c.agentOrder = nil
}
