// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/yoga-journal/auth"
	"github.com/danielhkuo/yoga-journal/cliparse"
	"github.com/danielhkuo/yoga-journal/middleware"
	"github.com/danielhkuo/yoga-journal/models"
)

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u models.User) error
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

type AuthHandler struct {
	users UserStore
	cfg   cliparse.Config
}

func NewAuthHandler(users UserStore, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, models.ErrConflict) {
			middleware.ErrorResponse(w, http.StatusConflict, "email is already registered")
			return
		}
		writeError(w, r, err)
		return
	}

	token, err := auth.IssueToken(user.ID, user.Email, h.cfg.JWTSecret, h.cfg.TokenTTL, time.Now())
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	slog.Info("user signed up", "user_id", user.ID)
	middleware.JSONResponse(w, http.StatusCreated, models.AuthResponse{User: user, Token: token})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), normalizeEmail(req.Email))
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		writeError(w, r, err)
		return
	}
	if err != nil || auth.CheckPassword(user.PasswordHash, req.Password) != nil {
		slog.Warn("login rejected", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := auth.IssueToken(user.ID, user.Email, h.cfg.JWTSecret, h.cfg.TokenTTL, time.Now())
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{User: user, Token: token})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUserByID(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "account no longer exists")
			return
		}
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, user)
}
