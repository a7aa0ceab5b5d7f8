// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/danielhkuo/yoga-journal/auth"
	"github.com/danielhkuo/yoga-journal/middleware"
	"github.com/danielhkuo/yoga-journal/practice"
)

type PoseHandler struct {
	svc *practice.Service
}

func NewPoseHandler(svc *practice.Service) *PoseHandler {
	return &PoseHandler{svc: svc}
}

// ListPoses handles GET /poses?segment=
func (h *PoseHandler) ListPoses(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.ListPoses(r.Context(), r.URL.Query().Get("segment"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetPose handles GET /poses/{id}
func (h *PoseHandler) GetPose(w http.ResponseWriter, r *http.Request) {
	pose, err := h.svc.GetPose(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, pose)
}

// PoseTrend handles GET /poses/{id}/trend
func (h *PoseHandler) PoseTrend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := practice.TrendInput{
		Fields: q.Get("fields"),
		Days:   q.Get("days"),
		Side:   q.Get("side"),
	}

	var err error
	if in.IncludeSkipped, err = parseBoolParam(r, "include_skipped"); err != nil {
		writeError(w, r, err)
		return
	}
	if in.From, err = parseTimeParam(r, "from"); err != nil {
		writeError(w, r, err)
		return
	}
	if in.To, err = parseTimeParam(r, "to"); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.svc.PoseTrend(r.Context(), auth.UserID(r.Context()), mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
