package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-anon-inbox/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AcceptanceEnvelope wraps accept-messages responses.
type AcceptanceEnvelope struct {
	Success             bool   `json:"success"`
	Message             string `json:"message,omitempty"`
	IsAcceptingMessages bool   `json:"isAcceptingMessages"`
}

// MessagesEnvelope wraps inbox listings. Messages is never null.
type MessagesEnvelope struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Messages []domain.Message `json:"messages"`
}

// SessionEnvelope wraps sign-in and current-session responses.
type SessionEnvelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Token   string              `json:"token,omitempty"`
	Session *domain.SessionView `json:"session"`
}

// ProfileEnvelope wraps public profile responses.
type ProfileEnvelope struct {
	Success bool            `json:"success"`
	Profile *domain.Profile `json:"profile"`
}

// SuggestionsEnvelope wraps suggested prompts, separated by "||".
type SuggestionsEnvelope struct {
	Success     bool   `json:"success"`
	Suggestions string `json:"suggestions"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Success: true, Message: msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Success: false, Message: msg})
}

// decode reads a JSON body into v. It writes a 400 and returns false on failure.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
