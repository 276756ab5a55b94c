package handlers

import (
	"encoding/json"
	"net/http"

	"freightdesk/engine"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// sessionResponse is the envelope every session endpoint returns: the
// current tree, whatever draft is open, violations from the last action,
// and the pending toasts.
type sessionResponse struct {
	SessionID     string                `json:"sessionId"`
	Job           any                   `json:"job,omitempty"`
	Draft         any                   `json:"draft,omitempty"`
	Violations    []engine.Violation    `json:"violations,omitempty"`
	Notifications []engine.Notification `json:"notifications,omitempty"`
}

func respondSession(w http.ResponseWriter, status int, s *engine.Session, draft any, violations []engine.Violation) {
	writeJSON(w, status, sessionResponse{
		SessionID:     s.ID,
		Job:           s.Job,
		Draft:         draft,
		Violations:    violations,
		Notifications: s.DrainNotifications(),
	})
}
