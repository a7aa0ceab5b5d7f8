// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - User: account; the password hash never leaves the server
  - Pose: seeded catalog pose with its segment and order
  - PracticeSession: one practice with status and overall score
  - ScoreCard: one pose occurrence (and side) with six ratings
  - Ratings: ease, comfort, stability, pain, breath, focus (1-10, nil = unrated)

# Request Types

  - SignupRequest, LoginRequest
  - CreatePresetSessionRequest: practice_type plus optional cutoffs
  - CreateCustomSessionRequest: ordered CustomBlock list
  - UpdateScoreCardRequest: tri-state patch built on OptionalInt and
    OptionalString
  - PlanPreviewRequest

# Response Types

  - AuthResponse, SessionWithCards, ListSessionsResponse
  - UpdateScoreCardResponse: card plus the recomputed session score
  - PoseTrendResponse, SessionSummaryResponse, PlanPreviewResponse
  - ErrorResponse: error, message and optional details

# Errors

Sentinel errors (ErrValidation, ErrNotFound, ErrConflict, ErrUnauthorized,
ErrMissingReference, ErrIncomplete) are matched with errors.Is.
CompletenessError and MissingReferenceError carry structured details.

# Constants

Status values:

	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"

Sides:

	SideLeft, SideRight, SideNA
*/
package models
