// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/danielhkuo/yoga-journal/catalog"
	"github.com/danielhkuo/yoga-journal/cliparse"
	"github.com/danielhkuo/yoga-journal/middleware"
	"github.com/danielhkuo/yoga-journal/models"
	"github.com/danielhkuo/yoga-journal/practice"
	"github.com/danielhkuo/yoga-journal/testutil"
)

// testEnv serves every handler over an in-memory store with one signed-in user.
type testEnv struct {
	store   *testutil.MemStore
	cfg     cliparse.Config
	handler http.Handler
	user    models.User
	headers map[string]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := testutil.NewSeededMemStore(catalog.Default())
	cfg := testutil.GetTestConfig()
	svc := practice.NewService(store, catalog.Default())

	authHandler := NewAuthHandler(store, cfg)
	poseHandler := NewPoseHandler(svc)
	sessionHandler := NewSessionHandler(svc)
	scoreCardHandler := NewScoreCardHandler(svc)
	planHandler := NewPlanHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc("/health", NewHealthHandler(cfg).Health).Methods(http.MethodGet)
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	api := r.NewRoute().Subrouter()
	api.Use(middleware.Authenticate(cfg.JWTSecret))
	api.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)
	api.HandleFunc("/poses", poseHandler.ListPoses).Methods(http.MethodGet)
	api.HandleFunc("/poses/{id}", poseHandler.GetPose).Methods(http.MethodGet)
	api.HandleFunc("/poses/{id}/trend", poseHandler.PoseTrend).Methods(http.MethodGet)
	api.HandleFunc("/sessions", sessionHandler.ListSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions/preset", sessionHandler.CreatePreset).Methods(http.MethodPost)
	api.HandleFunc("/sessions/custom", sessionHandler.CreateCustom).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", sessionHandler.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/publish", sessionHandler.Publish).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/unpublish", sessionHandler.Unpublish).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/summary", sessionHandler.Summary).Methods(http.MethodGet)
	api.HandleFunc("/scorecards/{id}", scoreCardHandler.GetScoreCard).Methods(http.MethodGet)
	api.HandleFunc("/scorecards/{id}", scoreCardHandler.UpdateScoreCard).Methods(http.MethodPatch)
	api.HandleFunc("/plans/preview", planHandler.Preview).Methods(http.MethodPost)

	user := testutil.CreateTestUser(t, store, "ana@example.com")
	return &testEnv{
		store:   store,
		cfg:     cfg,
		handler: r,
		user:    user,
		headers: testutil.AuthHeaders(t, cfg, user.ID),
	}
}

// do sends body as JSON with the signed-in user's token.
func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, testutil.MakeRequest(method, path, body, e.headers))
	return w
}

// doRaw sends a literal JSON body with the signed-in user's token.
func (e *testEnv) doRaw(method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, testutil.MakeRawRequest(method, path, body, e.headers))
	return w
}

// asUser returns a copy of e acting as another signed-in user.
func (e *testEnv) asUser(t *testing.T, email string) *testEnv {
	t.Helper()
	other := *e
	other.user = testutil.CreateTestUser(t, e.store, email)
	other.headers = testutil.AuthHeaders(t, e.cfg, other.user.ID)
	return &other
}

func (e *testEnv) createPreset(t *testing.T, practiceType models.PracticeType) models.SessionWithCards {
	t.Helper()
	w := e.do(http.MethodPost, "/sessions/preset", models.CreatePresetSessionRequest{PracticeType: practiceType})
	testutil.AssertStatus(t, w, http.StatusCreated)
	var resp models.SessionWithCards
	testutil.AssertJSON(t, w, &resp)
	return resp
}
