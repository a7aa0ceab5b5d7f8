// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the yoga-journal API.

# Route Registration

NewRouter builds a gorilla/mux router wrapped in CORS:

	h := router.NewRouter(svc, st, cfg)

# Endpoints

Public:

	GET  /health       - Liveness and uptime
	GET  /metrics      - Prometheus exposition
	POST /auth/signup  - Create an account, returns a token
	POST /auth/login   - Exchange credentials for a token

Authenticated (Authorization: Bearer <token>):

	GET   /auth/me                  - Current user
	GET   /poses                    - Pose catalog (?segment=)
	GET   /poses/{id}               - One pose
	GET   /poses/{id}/trend         - Rating history for a pose
	GET   /sessions                 - Keyset-paginated session list
	POST  /sessions/preset          - Create a session from a preset
	POST  /sessions/custom          - Create a session from custom blocks
	GET   /sessions/{id}            - Session with its score cards
	POST  /sessions/{id}/publish    - DRAFT to PUBLISHED
	POST  /sessions/{id}/unpublish  - PUBLISHED to DRAFT
	GET   /sessions/{id}/summary    - Completeness, averages, pain hot spots
	GET   /scorecards/{id}          - One score card
	PATCH /scorecards/{id}          - Rate, skip or annotate a card
	POST  /plans/preview            - Expand a practice without saving it

# Middleware

Every matched route is counted by metrics.InstrumentHandler under its
template. Account routes are rate limited per client IP; authenticated
routes are rate limited per user after the token is checked.
*/
package router
