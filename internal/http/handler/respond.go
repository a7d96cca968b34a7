package handler

import (
	"encoding/json"
	"net/http"

	"ninedots/internal/mailer"
)

// Sender dispatches one email per call. Implemented by *mailer.Mailer.
type Sender interface {
	Send(msg mailer.Message) error
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"message": msg})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}
