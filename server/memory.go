package server

import (
	"encoding/json"
	"net/http"

	"github.com/hupe1980/campusmesh/memory"
)

// GetMemory handles GET /api/memory. The optional type parameter selects a
// flattened projection; without it the raw entries come back.
func (h *Handler) GetMemory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	bank := h.mesh.Memory()
	switch memory.EntryType(r.URL.Query().Get("type")) {
	case memory.TypeSkill:
		entries := bank.Retrieve(userID, memory.TypeSkill, "")
		skills := make([]map[string]any, 0, len(entries))
		for _, e := range entries {
			skills = append(skills, map[string]any{
				"skill":    e.Key,
				"progress": e.Value["progress"],
				"status":   e.Value["status"],
			})
		}
		JSON(w, http.StatusOK, map[string]any{"skills": skills})
	case memory.TypeCourse:
		JSON(w, http.StatusOK, map[string]any{"courses": bank.CourseHistory(userID)})
	case memory.TypeAssignment:
		JSON(w, http.StatusOK, map[string]any{"assignments": bank.Assignments(userID)})
	case memory.TypeGoal:
		JSON(w, http.StatusOK, map[string]any{"goals": bank.Goals(userID)})
	default:
		JSON(w, http.StatusOK, map[string]any{"memories": bank.All(userID)})
	}
}

// StoreMemory handles POST /api/memory: an explicit upsert into the bank.
func (h *Handler) StoreMemory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string         `json:"userId"`
		Type     string         `json:"type"`
		Key      string         `json:"key"`
		Value    map[string]any `json:"value"`
		Metadata map[string]any `json:"metadata,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UserID == "" || req.Type == "" || req.Key == "" {
		Error(w, http.StatusBadRequest, "userId, type and key are required")
		return
	}

	entry := h.mesh.Memory().Store(req.UserID, memory.EntryType(req.Type), req.Key, req.Value, req.Metadata)
	JSON(w, http.StatusCreated, map[string]any{"memory": entry})
}
