// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Session status
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

// Side of the body a score card was practiced on
type Side string

const (
	SideLeft  Side = "LEFT"
	SideRight Side = "RIGHT"
	SideNA    Side = "NA"
)

func (s Side) Valid() bool {
	switch s {
	case SideLeft, SideRight, SideNA:
		return true
	}
	return false
}

// Segment is the display block a pose or score card belongs to.
type Segment string

const (
	SegmentSunA         Segment = "SUN_A"
	SegmentSunB         Segment = "SUN_B"
	SegmentStanding     Segment = "STANDING"
	SegmentPrimary      Segment = "PRIMARY"
	SegmentIntermediate Segment = "INTERMEDIATE"
	SegmentAdvancedA    Segment = "ADVANCED_A"
	SegmentAdvancedB    Segment = "ADVANCED_B"
	SegmentFinishing    Segment = "FINISHING"
	SegmentWarmup       Segment = "WARMUP"
	SegmentBackbending  Segment = "BACKBENDING"
	SegmentOther        Segment = "OTHER"
)

// segmentRank is practice order; used to sort pose listings.
var segmentRank = map[Segment]int{
	SegmentWarmup:       0,
	SegmentSunA:         1,
	SegmentSunB:         2,
	SegmentStanding:     3,
	SegmentPrimary:      4,
	SegmentIntermediate: 5,
	SegmentAdvancedA:    6,
	SegmentAdvancedB:    7,
	SegmentBackbending:  8,
	SegmentFinishing:    9,
	SegmentOther:        10,
}

func (s Segment) Valid() bool {
	_, ok := segmentRank[s]
	return ok
}

// Rank returns the practice-order position of the segment.
// Unknown segments sort last.
func (s Segment) Rank() int {
	if r, ok := segmentRank[s]; ok {
		return r
	}
	return len(segmentRank)
}

// Series reports whether the segment is one of the series-specific body blocks.
func (s Segment) Series() bool {
	switch s {
	case SegmentPrimary, SegmentIntermediate, SegmentAdvancedA, SegmentAdvancedB:
		return true
	}
	return false
}

// PracticeType selects which body blocks a session covers
type PracticeType string

const (
	PracticeFullPrimary                 PracticeType = "FULL_PRIMARY"
	PracticeHalfPrimary                 PracticeType = "HALF_PRIMARY"
	PracticeHalfPrimaryPlusIntermediate PracticeType = "HALF_PRIMARY_PLUS_INTERMEDIATE"
	PracticePrimaryPlusIntermediate     PracticeType = "PRIMARY_PLUS_INTERMEDIATE"
	PracticeFullIntermediate            PracticeType = "FULL_INTERMEDIATE"
	PracticeIntermediatePlusAdvancedA   PracticeType = "INTERMEDIATE_PLUS_ADVANCED_A"
	PracticeIntermediatePlusAdvancedB   PracticeType = "INTERMEDIATE_PLUS_ADVANCED_B"
	PracticeAdvancedA                   PracticeType = "ADVANCED_A"
	PracticeAdvancedB                   PracticeType = "ADVANCED_B"
	PracticeCustom                      PracticeType = "CUSTOM"
)

var PracticeTypes = []PracticeType{
	PracticeFullPrimary,
	PracticeHalfPrimary,
	PracticeHalfPrimaryPlusIntermediate,
	PracticePrimaryPlusIntermediate,
	PracticeFullIntermediate,
	PracticeIntermediatePlusAdvancedA,
	PracticeIntermediatePlusAdvancedB,
	PracticeAdvancedA,
	PracticeAdvancedB,
	PracticeCustom,
}

func (p PracticeType) Valid() bool {
	for _, t := range PracticeTypes {
		if t == p {
			return true
		}
	}
	return false
}

// Metric names a rating axis (or the computed overall score)
type Metric string

const (
	MetricEase         Metric = "ease"
	MetricComfort      Metric = "comfort"
	MetricStability    Metric = "stability"
	MetricPain         Metric = "pain"
	MetricBreath       Metric = "breath"
	MetricFocus        Metric = "focus"
	MetricOverallScore Metric = "overall_score"
)

// RatingMetrics are the six user-entered axes, in canonical order.
var RatingMetrics = []Metric{
	MetricEase,
	MetricComfort,
	MetricStability,
	MetricPain,
	MetricBreath,
	MetricFocus,
}

// SelectableMetrics is the fixed set a caller may request in a trend.
var SelectableMetrics = append(append([]Metric{}, RatingMetrics...), MetricOverallScore)

// Rating bounds (inclusive)
const (
	RatingMin = 1
	RatingMax = 10
)

// Domain types

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Pose struct {
	ID             string  `json:"id" db:"id"`
	Slug           string  `json:"slug" db:"slug"`
	Name           string  `json:"name" db:"name"`
	EnglishName    *string `json:"english_name,omitempty" db:"english_name"`
	Segment        Segment `json:"segment" db:"segment"`
	OrderInSegment int     `json:"order_in_segment" db:"order_in_segment"`
	IsTwoSided     bool    `json:"is_two_sided" db:"is_two_sided"`
}

type PracticeSession struct {
	ID              string       `json:"id" db:"id"`
	UserID          string       `json:"user_id" db:"user_id"`
	Date            time.Time    `json:"date" db:"date"`
	Label           *string      `json:"label,omitempty" db:"label"`
	PracticeType    PracticeType `json:"practice_type" db:"practice_type"`
	DurationMinutes *int         `json:"duration_minutes,omitempty" db:"duration_minutes"`
	Status          Status       `json:"status" db:"status"`
	EnergyLevel     *int         `json:"energy_level,omitempty" db:"energy_level"`
	Mood            *string      `json:"mood,omitempty" db:"mood"`
	OverallScore    *float64     `json:"overall_score" db:"overall_score"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}

// Ratings holds the six bounded axes. nil means not rated.
type Ratings struct {
	Ease      *int `json:"ease" db:"ease"`
	Comfort   *int `json:"comfort" db:"comfort"`
	Stability *int `json:"stability" db:"stability"`
	Pain      *int `json:"pain" db:"pain"`
	Breath    *int `json:"breath" db:"breath"`
	Focus     *int `json:"focus" db:"focus"`
}

// Get returns the value of one rating axis.
func (r Ratings) Get(m Metric) *int {
	switch m {
	case MetricEase:
		return r.Ease
	case MetricComfort:
		return r.Comfort
	case MetricStability:
		return r.Stability
	case MetricPain:
		return r.Pain
	case MetricBreath:
		return r.Breath
	case MetricFocus:
		return r.Focus
	}
	return nil
}

// Set assigns one rating axis. Unknown metrics are ignored.
func (r *Ratings) Set(m Metric, v *int) {
	switch m {
	case MetricEase:
		r.Ease = v
	case MetricComfort:
		r.Comfort = v
	case MetricStability:
		r.Stability = v
	case MetricPain:
		r.Pain = v
	case MetricBreath:
		r.Breath = v
	case MetricFocus:
		r.Focus = v
	}
}

type ScoreCard struct {
	ID             string  `json:"id" db:"id"`
	SessionID      string  `json:"session_id" db:"session_id"`
	PoseID         string  `json:"pose_id" db:"pose_id"`
	OrderInSession int     `json:"order_in_session" db:"order_in_session"`
	Segment        Segment `json:"segment" db:"segment"`
	Side           Side    `json:"side" db:"side"`
	Ratings
	Notes        *string   `json:"notes,omitempty" db:"notes"`
	Skipped      bool      `json:"skipped" db:"skipped"`
	OverallScore *float64  `json:"overall_score" db:"overall_score"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	// Joined from pose on reads
	PoseSlug string `json:"pose_slug,omitempty" db:"pose_slug"`
	PoseName string `json:"pose_name,omitempty" db:"pose_name"`
}

type SessionWithCards struct {
	Session    PracticeSession `json:"session"`
	ScoreCards []ScoreCard     `json:"score_cards"`
}

// Query types

// SessionFilter drives keyset pagination over a user's sessions,
// ordered by (date desc, id desc).
type SessionFilter struct {
	Status    *Status
	From      *time.Time
	To        *time.Time
	AfterDate *time.Time
	AfterID   string
	Limit     int
}

// Trend side filters
const (
	TrendSideBoth = "BOTH"
	TrendSideAll  = "ALL"
)

type TrendFilter struct {
	UserID         string
	PoseID         string
	From           *time.Time
	To             *time.Time
	Sides          []Side // empty = any side
	IncludeSkipped bool
}

// TrendRow is a score card joined with its session date.
type TrendRow struct {
	ScoreCard
	SessionDate time.Time `db:"session_date"`
}
