// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/danielhkuo/yoga-journal/auth"
	"github.com/danielhkuo/yoga-journal/middleware"
	"github.com/danielhkuo/yoga-journal/models"
	"github.com/danielhkuo/yoga-journal/practice"
)

type SessionHandler struct {
	svc *practice.Service
}

func NewSessionHandler(svc *practice.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// CreatePreset handles POST /sessions/preset
func (h *SessionHandler) CreatePreset(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePresetSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.svc.CreatePreset(r.Context(), auth.UserID(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// CreateCustom handles POST /sessions/custom
func (h *SessionHandler) CreateCustom(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.svc.CreateCustom(r.Context(), auth.UserID(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// ListSessions handles GET /sessions?limit=&cursor=&status=&from=&to=
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	in := practice.ListInput{Cursor: r.URL.Query().Get("cursor")}

	var err error
	if in.Limit, err = parseIntParam(r, "limit"); err != nil {
		writeError(w, r, err)
		return
	}
	if status := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))); status != "" {
		s := models.Status(status)
		in.Status = &s
	}
	if in.From, err = parseTimeParam(r, "from"); err != nil {
		writeError(w, r, err)
		return
	}
	if in.To, err = parseTimeParam(r, "to"); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.svc.ListSessions(r.Context(), auth.UserID(r.Context()), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetSession(r.Context(), auth.UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Publish handles POST /sessions/{id}/publish
func (h *SessionHandler) Publish(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Publish(r.Context(), auth.UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, session)
}

// Unpublish handles POST /sessions/{id}/unpublish
func (h *SessionHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Unpublish(r.Context(), auth.UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, session)
}

// Summary handles GET /sessions/{id}/summary
func (h *SessionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.SessionSummary(r.Context(), auth.UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
