// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the yoga-journal API.

# Handler Types

Each handler is a thin struct over its dependencies:

  - AuthHandler: signup, login and the current user (UserStore, Config)
  - PoseHandler: pose catalog and per-pose trends (practice.Service)
  - SessionHandler: session creation, listing, publishing, summaries
  - ScoreCardHandler: reading and patching score cards
  - PlanHandler: plan previews that persist nothing
  - HealthHandler: liveness

The caller's user ID comes from the request context, set by
middleware.Authenticate. Path parameters are read with mux.Vars.

# Errors

Service errors are mapped to statuses in one place (writeError):

	models.ErrValidation       → 400
	models.ErrUnauthorized     → 401
	models.ErrNotFound         → 404
	models.ErrConflict         → 409
	*models.CompletenessError  → 422 with the blocking cards as details
	models.ErrMissingReference → 500 (pose catalog not seeded)

Anything else is logged and reported as a bare 500.

# Partial Updates

PATCH /scorecards/{id} distinguishes absent fields (kept), null (cleared)
and values (set):

	{"ease": 7, "pain": null, "notes": "left knee"}
*/
package handlers
