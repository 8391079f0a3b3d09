package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hupe1980/campusmesh"
	"github.com/hupe1980/campusmesh/core"
)

// sessionSummary is the list-view projection of a session.
type sessionSummary struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
	LastAccessed time.Time `json:"lastAccessed"`
	MessageCount int       `json:"messageCount"`
}

func summarize(s *core.Session) sessionSummary {
	return sessionSummary{
		ID:           s.ID,
		UserID:       s.UserID,
		CreatedAt:    s.CreatedAt,
		LastAccessed: s.LastAccessed(),
		MessageCount: s.MessageCount(),
	}
}

// ListSessions handles GET /api/sessions. With sessionId it returns one
// session including its message log; with userId it returns the user's
// session summaries, most recently accessed first.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	if sessionID := r.URL.Query().Get("sessionId"); sessionID != "" {
		sess, ok := h.mesh.Sessions().Get(sessionID)
		if !ok {
			Error(w, http.StatusNotFound, core.ErrSessionNotFound.Error())
			return
		}
		JSON(w, http.StatusOK, map[string]any{
			"session":  summarize(sess),
			"messages": sess.Messages(),
		})
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		Error(w, http.StatusBadRequest, "userId or sessionId is required")
		return
	}

	sessions := h.mesh.Sessions().UserSessions(userID)
	out := make([]sessionSummary, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, summarize(s))
	}
	JSON(w, http.StatusOK, map[string]any{"sessions": out})
}

// CreateSession handles POST /api/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string            `json:"userId"`
		Profile *core.UserProfile `json:"profile,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess, err := h.mesh.CreateSession(req.UserID, req.Profile)
	if err != nil {
		var reqErr *campusmesh.RequestError
		if errors.As(err, &reqErr) {
			Error(w, http.StatusBadRequest, reqErr.Error())
			return
		}
		Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	JSON(w, http.StatusCreated, map[string]any{"session": summarize(sess)})
}
