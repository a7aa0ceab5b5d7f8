// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/yoga-journal/middleware"
	"github.com/danielhkuo/yoga-journal/models"
	"github.com/danielhkuo/yoga-journal/plan"
	"github.com/danielhkuo/yoga-journal/practice"
)

type PlanHandler struct {
	svc *practice.Service
}

func NewPlanHandler(svc *practice.Service) *PlanHandler {
	return &PlanHandler{svc: svc}
}

// Preview handles POST /plans/preview
func (h *PlanHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req models.PlanPreviewRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var (
		sel plan.Selection
		err error
	)
	if req.PracticeType == models.PracticeCustom {
		sel = practice.CustomSelection(req.Blocks)
	} else {
		sel, err = practice.PresetSelection(models.CreatePresetSessionRequest{
			PracticeType:     req.PracticeType,
			PrimaryUpTo:      req.PrimaryUpTo,
			IntermediateUpTo: req.IntermediateUpTo,
			AdvancedUpTo:     req.AdvancedUpTo,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
	}

	resp, err := h.svc.PreviewPlan(sel)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
