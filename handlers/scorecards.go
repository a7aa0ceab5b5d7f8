// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/danielhkuo/yoga-journal/auth"
	"github.com/danielhkuo/yoga-journal/middleware"
	"github.com/danielhkuo/yoga-journal/models"
	"github.com/danielhkuo/yoga-journal/practice"
)

type ScoreCardHandler struct {
	svc *practice.Service
}

func NewScoreCardHandler(svc *practice.Service) *ScoreCardHandler {
	return &ScoreCardHandler{svc: svc}
}

// GetScoreCard handles GET /scorecards/{id}
func (h *ScoreCardHandler) GetScoreCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.svc.GetScoreCard(r.Context(), auth.UserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, card)
}

// UpdateScoreCard handles PATCH /scorecards/{id}
// Absent fields are kept, null clears, a value sets.
func (h *ScoreCardHandler) UpdateScoreCard(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateScoreCardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.svc.UpdateScoreCard(r.Context(), auth.UserID(r.Context()), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
