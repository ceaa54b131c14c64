package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeAction reports the edit/delete guard verdicts ("uneditable",
// "undeletable") the mobile client switches on.
func writeAction(w http.ResponseWriter, action string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"action": action})
}

// handleFromContext returns the authenticated user's handle put there by
// the JWT middleware.
func handleFromContext(r *http.Request) (string, bool) {
	handle, ok := r.Context().Value("handle").(string)
	return handle, ok && handle != ""
}
