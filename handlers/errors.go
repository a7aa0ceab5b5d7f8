// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/yoga-journal/middleware"
	"github.com/danielhkuo/yoga-journal/models"
)

// writeError maps a service error onto its HTTP status.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var incomplete *models.CompletenessError
	switch {
	case errors.As(err, &incomplete):
		middleware.ErrorResponseWithDetails(w, http.StatusUnprocessableEntity,
			"session has unrated score cards", incomplete)
	case errors.Is(err, models.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, models.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "not found")
	case errors.Is(err, models.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrMissingReference):
		middleware.ErrorResponse(w, http.StatusInternalServerError, "pose reference data is missing; run the seed")
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal error")
	}
}

// parseTimeParam accepts RFC 3339 timestamps or plain dates (UTC midnight).
func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, models.Validationf("%s must be an RFC 3339 timestamp or YYYY-MM-DD date", name)
}

func parseBoolParam(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, models.Validationf("%s must be true or false", name)
	}
	return b, nil
}

func parseIntParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.Validationf("%s must be an integer", name)
	}
	return n, nil
}
