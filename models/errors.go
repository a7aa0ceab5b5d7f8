// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrConflict         = errors.New("conflict")
	ErrMissingReference = errors.New("missing reference data")
	ErrIncomplete       = errors.New("incomplete ratings")
)

// IncompleteCard describes one non-skipped score card that blocks publishing.
type IncompleteCard struct {
	ScoreCardID    string   `json:"score_card_id"`
	OrderInSession int      `json:"order_in_session"`
	PoseSlug       string   `json:"pose_slug"`
	PoseName       string   `json:"pose_name"`
	Side           Side     `json:"side"`
	Missing        []Metric `json:"missing"`
}

// CompletenessError is returned when a session cannot be published because
// some non-skipped cards still have unrated axes.
type CompletenessError struct {
	SessionID string           `json:"session_id"`
	Cards     []IncompleteCard `json:"cards"`
}

func (e *CompletenessError) Error() string {
	if len(e.Cards) == 0 {
		return fmt.Sprintf("session %s: %v", e.SessionID, ErrIncomplete)
	}
	first := e.Cards[0]
	names := make([]string, len(first.Missing))
	for i, m := range first.Missing {
		names[i] = string(m)
	}
	return fmt.Sprintf("session %s: %v: %d card(s), first is #%d %s (%s) missing %s",
		e.SessionID, ErrIncomplete, len(e.Cards), first.OrderInSession,
		first.PoseSlug, first.Side, strings.Join(names, ", "))
}

func (e *CompletenessError) Is(target error) bool {
	return target == ErrIncomplete
}

// MissingReferenceError names catalog slugs that are absent from the pose table.
// This means the seed step did not run or drifted from the catalog.
type MissingReferenceError struct {
	Slugs []string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("%v: missing pose(s) for slugs: %s", ErrMissingReference, strings.Join(e.Slugs, ", "))
}

func (e *MissingReferenceError) Is(target error) bool {
	return target == ErrMissingReference
}

// Validationf builds an error that matches ErrValidation.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
