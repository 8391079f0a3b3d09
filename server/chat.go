package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hupe1980/campusmesh"
)

// Chat handles POST /api/chat: one user turn through the dispatch engine.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req campusmesh.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.mesh.Chat(r.Context(), &req)
	if err != nil {
		var reqErr *campusmesh.RequestError
		if errors.As(err, &reqErr) {
			Error(w, http.StatusBadRequest, reqErr.Error())
			return
		}
		h.logger.Error("chat failed", "error", err)
		Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	JSON(w, http.StatusOK, resp)
}
