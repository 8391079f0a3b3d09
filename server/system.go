package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hupe1980/campusmesh/logging"
)

// agentInfo is the public description of one agent.
type agentInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tools       []string `json:"tools,omitempty"`
}

// ListAgents handles GET /api/agents.
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	type toolLister interface{ ToolNames() []string }

	coordinator := h.mesh.Coordinator()
	agents := coordinator.Agents()
	out := make([]agentInfo, 0, len(agents)+1)
	out = append(out, agentInfo{
		ID:          coordinator.ID(),
		Name:        coordinator.Name(),
		Description: coordinator.Description(),
	})
	for _, a := range agents {
		info := agentInfo{ID: a.ID(), Name: a.Name(), Description: a.Description()}
		if tl, ok := a.(toolLister); ok {
			info.Tools = tl.ToolNames()
		}
		out = append(out, info)
	}
	JSON(w, http.StatusOK, map[string]any{"agents": out})
}

// Metrics handles GET /api/metrics: the aggregated system view with fresh
// per-agent snapshots.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.mesh.SystemMetrics())
}

// Logs handles GET /api/logs: the most recent log entries, optionally
// filtered by level and bounded by limit. Unavailable unless a recorder was
// attached.
func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	if h.recorder == nil {
		Error(w, http.StatusNotFound, "log recording is not enabled")
		return
	}

	level := strings.ToUpper(r.URL.Query().Get("level"))
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			Error(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries := h.recorder.Recent(level, limit)
	if entries == nil {
		entries = []logging.Entry{}
	}
	JSON(w, http.StatusOK, map[string]any{"logs": entries})
}
