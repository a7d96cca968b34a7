package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"ninedots/internal/mailer"

	"github.com/sirupsen/logrus"
)

// ContactHandler relays contact-form submissions by email. Nothing is
// persisted; a client retry sends a second email.
type ContactHandler struct {
	Mail Sender
	To   string
}

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req contactReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"message", req.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			respondError(w, http.StatusBadRequest, f.name+" is required")
			return
		}
	}

	msg := mailer.Message{
		FromName: "Contact Form",
		To:       h.To,
		ReplyTo:  req.Email,
		Subject:  "New Message from Contact Form",
		Text:     fmt.Sprintf("Name: %s\nEmail: %s\nMessage: %s", req.Name, req.Email, req.Message),
		HTML: fmt.Sprintf(
			"<p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Message:</strong> %s</p>",
			req.Name, req.Email, req.Message,
		),
	}
	if err := h.Mail.Send(msg); err != nil {
		logrus.WithError(err).Error("contact email failed")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondMessage(w, http.StatusOK, "Email sent successfully!")
}
