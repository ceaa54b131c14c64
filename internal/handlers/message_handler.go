package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"rentloBack/internal/services"
)

type MessageHandler struct {
	MessageService *services.MessageService
}

// GetUserMessages returns the caller's inbox: conversations grouped by
// counterpart with per-user profile cards.
func (h *MessageHandler) GetUserMessages(w http.ResponseWriter, r *http.Request) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	groups, err := h.MessageService.GetUserMessages(r.Context(), handle)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// ReadMessages marks the given messages from :handle to the caller as
// seen. The createdAts query parameter is a JSON array of timestamps; the
// timestamps are the correlation keys the clients hold.
func (h *MessageHandler) ReadMessages(w http.ResponseWriter, r *http.Request) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	otherHandle := r.URL.Query().Get(":handle")
	if otherHandle == "" {
		writeError(w, http.StatusBadRequest, "Missing handle")
		return
	}

	var createdAts []time.Time
	if raw := r.URL.Query().Get("createdAts"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &createdAts); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid createdAts")
			return
		}
	}

	if err := h.MessageService.ReadMessages(r.Context(), otherHandle, handle, createdAts); err != nil {
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}
