// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	r.HandleFunc("/health", middleware.WithLogging(handler)).Methods("GET")

Logs request start at debug level and completion (status, duration_ms).

# Authentication

Authenticate validates the bearer token and stores the user ID in the
request context (see auth.UserID):

	api.Use(middleware.Authenticate(cfg.JWTSecret))

Missing or invalid tokens get 401.

# Rate Limiting

RateLimiter keeps a token bucket per caller, keyed by user ID when
authenticated and by client IP otherwise:

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	api.Use(limiter.Handler)

Rejected requests get 429 with Retry-After.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(r),
	}

Allows methods GET, POST, PATCH, DELETE, OPTIONS with headers
Content-Type and Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ErrorResponseWithDetails(w, http.StatusUnprocessableEntity, "message", details)

Parse JSON request bodies (capped at MaxBodyBytes):

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used as the rate limit key for unauthenticated requests.
*/
package middleware
