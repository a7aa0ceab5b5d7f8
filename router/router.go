// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/danielhkuo/yoga-journal/cliparse"
	"github.com/danielhkuo/yoga-journal/handlers"
	"github.com/danielhkuo/yoga-journal/metrics"
	"github.com/danielhkuo/yoga-journal/middleware"
	"github.com/danielhkuo/yoga-journal/practice"
)

func NewRouter(svc *practice.Service, users handlers.UserStore, cfg cliparse.Config) http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.InstrumentHandler)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(users, cfg)
	poseHandler := handlers.NewPoseHandler(svc)
	sessionHandler := handlers.NewSessionHandler(svc)
	scoreCardHandler := handlers.NewScoreCardHandler(svc)
	planHandler := handlers.NewPlanHandler(svc)
	healthHandler := handlers.NewHealthHandler(cfg)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)

	// Health and metrics
	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	// Accounts (public, limited per client IP)
	public := r.NewRoute().Subrouter()
	public.Use(limiter.Handler)
	public.HandleFunc("/auth/signup", middleware.WithLogging(authHandler.Signup)).Methods(http.MethodPost)
	public.HandleFunc("/auth/login", middleware.WithLogging(authHandler.Login)).Methods(http.MethodPost)

	// Everything else needs a bearer token and is limited per user
	api := r.NewRoute().Subrouter()
	api.Use(middleware.Authenticate(cfg.JWTSecret))
	api.Use(limiter.Handler)

	api.HandleFunc("/auth/me", middleware.WithLogging(authHandler.Me)).Methods(http.MethodGet)

	// Pose reference data
	api.HandleFunc("/poses", middleware.WithLogging(poseHandler.ListPoses)).Methods(http.MethodGet)
	api.HandleFunc("/poses/{id}", middleware.WithLogging(poseHandler.GetPose)).Methods(http.MethodGet)
	api.HandleFunc("/poses/{id}/trend", middleware.WithLogging(poseHandler.PoseTrend)).Methods(http.MethodGet)

	// Sessions
	api.HandleFunc("/sessions", middleware.WithLogging(sessionHandler.ListSessions)).Methods(http.MethodGet)
	api.HandleFunc("/sessions/preset", middleware.WithLogging(sessionHandler.CreatePreset)).Methods(http.MethodPost)
	api.HandleFunc("/sessions/custom", middleware.WithLogging(sessionHandler.CreateCustom)).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", middleware.WithLogging(sessionHandler.GetSession)).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/publish", middleware.WithLogging(sessionHandler.Publish)).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/unpublish", middleware.WithLogging(sessionHandler.Unpublish)).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/summary", middleware.WithLogging(sessionHandler.Summary)).Methods(http.MethodGet)

	// Score cards
	api.HandleFunc("/scorecards/{id}", middleware.WithLogging(scoreCardHandler.GetScoreCard)).Methods(http.MethodGet)
	api.HandleFunc("/scorecards/{id}", middleware.WithLogging(scoreCardHandler.UpdateScoreCard)).Methods(http.MethodPatch)

	// Plans
	api.HandleFunc("/plans/preview", middleware.WithLogging(planHandler.Preview)).Methods(http.MethodPost)

	// Root endpoint
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("yoga-journal API v1"))
	}).Methods(http.MethodGet)

	return middleware.CORS(r)
}
