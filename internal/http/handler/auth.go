package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"ninedots/internal/auth"

	"github.com/sirupsen/logrus"
)

// UserStore is the account persistence the auth routes need. Implemented by
// *auth.Store.
type UserStore interface {
	CreateUser(ctx context.Context, u *auth.User) error
	UserByEmail(ctx context.Context, email string) (*auth.User, error)
	SaveRefresh(ctx context.Context, row *auth.RefreshToken) error
}

type AuthHandler struct {
	Store  UserStore
	Tokens *auth.Tokens
}

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		respondMessage(w, http.StatusBadRequest, "email is required")
		return
	}
	if req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "password is required")
		return
	}

	if _, err := h.Store.UserByEmail(r.Context(), req.Email); err == nil {
		respondMessage(w, http.StatusBadRequest, "user already exists")
		return
	} else if !errors.Is(err, auth.ErrNotFound) {
		respondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "server error")
		return
	}

	u := auth.User{Email: req.Email, PasswordHash: hash}
	if err := h.Store.CreateUser(r.Context(), &u); err != nil {
		logrus.WithError(err).Error("create user failed")
		respondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondMessage(w, http.StatusCreated, "User registered successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.Store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			respondMessage(w, http.StatusBadRequest, "invalid credentials")
			return
		}
		respondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !auth.ComparePassword(u.PasswordHash, req.Password) {
		respondMessage(w, http.StatusBadRequest, "invalid credentials")
		return
	}

	pair, err := h.Tokens.NewPair(u.ID, u.Email)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "server error")
		return
	}
	if err := h.Store.SaveRefresh(r.Context(), &auth.RefreshToken{
		UserID:    u.ID,
		Token:     pair.RefreshToken,
		ExpiresAt: pair.RefreshExpiresAt,
	}); err != nil {
		logrus.WithError(err).Error("persist refresh token failed")
		respondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"expiresIn":    pair.ExpiresIn,
	})
}

// Protected is the sample authenticated route; identity comes from the
// middleware-injected claims.
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"message": "You have accessed a protected route",
		"user": map[string]any{
			"id":    claims.UserID,
			"email": claims.Email,
		},
	})
}
