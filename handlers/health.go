// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/danielhkuo/yoga-journal/cliparse"
	"github.com/danielhkuo/yoga-journal/middleware"
	"github.com/danielhkuo/yoga-journal/models"
)

type HealthHandler struct {
	env     string
	started time.Time
}

func NewHealthHandler(cfg cliparse.Config) *HealthHandler {
	return &HealthHandler{env: cfg.Env, started: time.Now()}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
		OK:            true,
		Env:           h.env,
		Time:          now.UTC(),
		UptimeSeconds: int64(now.Sub(h.started).Seconds()),
	})
}
