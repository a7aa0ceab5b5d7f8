// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/yoga-journal/auth"
	"github.com/danielhkuo/yoga-journal/cliparse"
	"github.com/danielhkuo/yoga-journal/models"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file::memory:",
		DatabaseType: "sqlite",
		JWTSecret:    "test-jwt-secret",
		TokenTTL:     time.Hour,
		RateLimit:    1000,
		RateBurst:    1000,
		Env:          "test",
	}
}

// CreateTestUser stores a user with a fresh ID and the given email
func CreateTestUser(t *testing.T, store *MemStore, email string) models.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return u
}

// AuthHeaders returns an Authorization header for userID signed with cfg's secret
func AuthHeaders(t *testing.T, cfg cliparse.Config, userID string) map[string]string {
	t.Helper()

	token, err := auth.IssueToken(userID, "", cfg.JWTSecret, cfg.TokenTTL, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// FullRatings returns six populated ratings with the same value
func FullRatings(v int) models.Ratings {
	r := models.Ratings{}
	for _, m := range models.RatingMetrics {
		n := v
		r.Set(m, &n)
	}
	return r
}

// RatingsPatch builds an update request setting all six ratings to v
func RatingsPatch(v int) models.UpdateScoreCardRequest {
	var req models.UpdateScoreCardRequest
	for _, p := range []*models.OptionalInt{&req.Ease, &req.Comfort, &req.Stability, &req.Pain, &req.Breath, &req.Focus} {
		n := v
		*p = models.OptionalInt{Set: true, Value: &n}
	}
	return req
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeRawRequest creates an HTTP test request with a literal JSON body
func MakeRawRequest(method, path, body string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
