// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration and the
// health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/handlers"
	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/middleware"
	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/store"
)

// newRouter builds the full route table over stores with no database.
// Routes that never touch the stores (health, validation rejections,
// malformed IDs) are exercised safely this way.
func newRouter(limiter *middleware.RateLimiter) http.Handler {
	api := handlers.NewAPI(store.NewPostStore(nil), store.NewCategoryStore(nil), nil)
	return New(api, limiter)
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestHealthRoute(t *testing.T) {
	router := newRouter(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("GET /health: got %d, want 200", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	router := newRouter(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/unknown", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("GET /api/unknown: got %d, want 404", w.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router := newRouter(nil)

	// The health endpoint is registered for GET only.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/health", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE /health: got %d, want 405", w.Code)
	}
}

func TestMalformedIDRejectedBeforeStore(t *testing.T) {
	router := newRouter(nil)

	// A non-UUID id must be rejected by the handler without a database
	// round trip, which is why a nil *sql.DB is safe here.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/posts/not-a-uuid", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("GET /api/posts/not-a-uuid: got %d, want 400", w.Code)
	}
}

func TestRateLimiterOnMutatingRoutes(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	router := newRouter(limiter)

	// First mutating request consumes the single token; it fails
	// validation with 400, which still proves it reached the handler.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/posts", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("first POST: got %d, want 400", w.Code)
	}

	// Second mutating request from the same client is throttled.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/posts", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second POST: got %d, want 429", w.Code)
	}

	// Read routes bypass the limiter entirely.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /health under limit: got %d, want 200", w.Code)
	}
}
