// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// OptionalInt distinguishes an absent JSON field from an explicit null.
type OptionalInt struct {
	Set   bool
	Value *int
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// OptionalString distinguishes an absent JSON field from an explicit null.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Request types

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreatePresetSessionRequest is the body of POST /sessions/preset
type CreatePresetSessionRequest struct {
	Date            *time.Time   `json:"date,omitempty"`
	Label           *string      `json:"label,omitempty"`
	DurationMinutes *int         `json:"duration_minutes,omitempty"`
	EnergyLevel     *int         `json:"energy_level,omitempty"`
	Mood            *string      `json:"mood,omitempty"`
	PracticeType    PracticeType `json:"practice_type"`

	// Optional cutoffs for partial blocks (pose slugs, inclusive)
	PrimaryUpTo      string `json:"primary_up_to,omitempty"`
	IntermediateUpTo string `json:"intermediate_up_to,omitempty"`
	AdvancedUpTo     string `json:"advanced_up_to,omitempty"`
}

type CustomBlock struct {
	Segment         Segment  `json:"segment"`
	FromSlug        string   `json:"from_slug,omitempty"`
	UpToSlug        string   `json:"up_to_slug,omitempty"`
	Slugs           []string `json:"slugs,omitempty"`
	OverrideSegment Segment  `json:"override_segment,omitempty"`
}

// CreateCustomSessionRequest is the body of POST /sessions/custom
type CreateCustomSessionRequest struct {
	Date            *time.Time    `json:"date,omitempty"`
	Label           *string       `json:"label,omitempty"`
	DurationMinutes *int          `json:"duration_minutes,omitempty"`
	EnergyLevel     *int          `json:"energy_level,omitempty"`
	Mood            *string       `json:"mood,omitempty"`
	Blocks          []CustomBlock `json:"blocks"`
}

// UpdateScoreCardRequest is the body of PATCH /scorecards/{id}.
// Absent fields are left alone; null clears a value.
type UpdateScoreCardRequest struct {
	Ease      OptionalInt    `json:"ease"`
	Comfort   OptionalInt    `json:"comfort"`
	Stability OptionalInt    `json:"stability"`
	Pain      OptionalInt    `json:"pain"`
	Breath    OptionalInt    `json:"breath"`
	Focus     OptionalInt    `json:"focus"`
	Notes     OptionalString `json:"notes"`
	Side      OptionalString `json:"side"`
	Skipped   *bool          `json:"skipped"`
}

// Rating returns the patch value for one rating axis.
func (u UpdateScoreCardRequest) Rating(m Metric) OptionalInt {
	switch m {
	case MetricEase:
		return u.Ease
	case MetricComfort:
		return u.Comfort
	case MetricStability:
		return u.Stability
	case MetricPain:
		return u.Pain
	case MetricBreath:
		return u.Breath
	case MetricFocus:
		return u.Focus
	}
	return OptionalInt{}
}

// Empty reports whether the patch carries no fields at all.
func (u UpdateScoreCardRequest) Empty() bool {
	for _, m := range RatingMetrics {
		if u.Rating(m).Set {
			return false
		}
	}
	return !u.Notes.Set && !u.Side.Set && u.Skipped == nil
}

// Response types

type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token,omitempty"`
}

type PlanItem struct {
	Position   int     `json:"position"`
	PoseName   string  `json:"pose_name"`
	PoseSlug   string  `json:"pose_slug"`
	Segment    Segment `json:"segment"`
	IsTwoSided bool    `json:"is_two_sided"`
}

type PlanPreviewResponse struct {
	PracticeType PracticeType `json:"practice_type"`
	Label        string       `json:"label"`
	Items        []PlanItem   `json:"items"`
	CardCount    int          `json:"card_count"`
}

type ListSessionsResponse struct {
	Items      []PracticeSession `json:"items"`
	NextCursor *string           `json:"next_cursor"`
}

type UpdateScoreCardResponse struct {
	ScoreCard           ScoreCard `json:"score_card"`
	SessionOverallScore *float64  `json:"session_overall_score"`
}

type PoseListResponse struct {
	Count int    `json:"count"`
	Poses []Pose `json:"poses"`
}

type TrendPoint struct {
	ScoreCardID    string              `json:"score_card_id"`
	SessionDate    time.Time           `json:"session_date"`
	CreatedAt      time.Time           `json:"created_at"`
	Side           Side                `json:"side"`
	Segment        Segment             `json:"segment"`
	OrderInSession int                 `json:"order_in_session"`
	Skipped        bool                `json:"skipped"`
	Values         map[Metric]*float64 `json:"values"`
}

type TrendWindow struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

type PoseTrendResponse struct {
	Pose    Pose         `json:"pose"`
	Metrics []Metric     `json:"metrics"`
	Window  TrendWindow  `json:"window"`
	Points  []TrendPoint `json:"points"`
}

type PainHotSpot struct {
	ScoreCardID string  `json:"score_card_id"`
	PoseName    string  `json:"pose_name"`
	Side        Side    `json:"side"`
	Pain        int     `json:"pain"`
	Notes       *string `json:"notes"`
}

type CompletenessSummary struct {
	Total           int     `json:"total"`
	Complete        int     `json:"complete"`
	Incomplete      int     `json:"incomplete"`
	FirstIncomplete *string `json:"first_incomplete_score_card_id"`
}

type SessionSummaryResponse struct {
	Session        PracticeSession     `json:"session"`
	Completeness   CompletenessSummary `json:"completeness"`
	MetricAverages map[Metric]*float64 `json:"metric_averages"`
	PainHotSpots   []PainHotSpot       `json:"pain_hot_spots"`
}

type HealthResponse struct {
	OK            bool      `json:"ok"`
	Env           string    `json:"env"`
	Time          time.Time `json:"time"`
	UptimeSeconds int64     `json:"uptime_seconds"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// PlanPreviewRequest is the body of POST /plans/preview. CUSTOM previews
// take blocks; presets take the optional cutoffs.
type PlanPreviewRequest struct {
	PracticeType     PracticeType  `json:"practice_type"`
	PrimaryUpTo      string        `json:"primary_up_to,omitempty"`
	IntermediateUpTo string        `json:"intermediate_up_to,omitempty"`
	AdvancedUpTo     string        `json:"advanced_up_to,omitempty"`
	Blocks           []CustomBlock `json:"blocks,omitempty"`
}
