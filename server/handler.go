// Package server provides the HTTP transport over the campusmesh façade.
// Handlers stay thin: request decoding and input validation happen here,
// every domain decision lives below the façade.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hupe1980/campusmesh"
	"github.com/hupe1980/campusmesh/logging"
)

// Handler holds the handler dependencies.
type Handler struct {
	mesh     *campusmesh.CampusMesh
	logger   logging.Logger
	recorder *logging.Recorder
}

// NewHandler creates a new Handler over the given façade.
func NewHandler(mesh *campusmesh.CampusMesh, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Handler{mesh: mesh, logger: logger}
}

// WithRecorder attaches a log recorder, enabling the /api/logs route.
func (h *Handler) WithRecorder(rec *logging.Recorder) *Handler {
	h.recorder = rec
	return h
}

// RegisterRoutes mounts the API routes on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/chat", h.Chat)
	r.Get("/api/sessions", h.ListSessions)
	r.Post("/api/sessions", h.CreateSession)
	r.Get("/api/memory", h.GetMemory)
	r.Post("/api/memory", h.StoreMemory)
	r.Get("/api/agents", h.ListAgents)
	r.Get("/api/metrics", h.Metrics)
	r.Get("/api/logs", h.Logs)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
