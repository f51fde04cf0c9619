// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for API handler tests.
// Contract tests run without any backing services, since validation rejects
// bad input before the store is touched. CRUD tests need PostgreSQL and are
// skipped when it is unavailable.
package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/database"
	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "blog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "blog")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// newTestRouter builds a router over the given DB with the production API
// routes, without caching or rate limiting. The route table mirrors
// internal/router; the router package itself cannot be imported from here
// without a cycle.
func newTestRouter(db *sql.DB) chi.Router {
	api := NewAPI(store.NewPostStore(db), store.NewCategoryStore(db), nil)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", api.CategoryList)
			r.Get("/slug/{slug}", api.CategoryGetBySlug)
			r.Get("/{id}", api.CategoryGet)
			r.Post("/", api.CategoryCreate)
			r.Put("/{id}", api.CategoryUpdate)
			r.Delete("/{id}", api.CategoryDelete)
		})
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", api.PostList)
			r.Get("/slug/{slug}", api.PostGetBySlug)
			r.Get("/{id}", api.PostGet)
			r.Post("/", api.PostCreate)
			r.Put("/{id}", api.PostUpdate)
			r.Delete("/{id}", api.PostDelete)
		})
	})
	return r
}

// newContractRouter builds a router whose stores have no usable database.
// Only safe for requests that validation rejects before any store call.
func newContractRouter() chi.Router {
	return newTestRouter(nil)
}

// doJSON performs a request with an optional JSON body and decodes the
// response body into a generic map.
func doJSON(t *testing.T, h http.Handler, method, path string, payload any) (int, map[string]any) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if len(rec.Body.Bytes()) > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			// List responses decode to arrays; callers use doJSONList.
			decoded = nil
		}
	}
	return rec.Code, decoded
}

// doJSONList performs a request and decodes an array response body.
func doJSONList(t *testing.T, h http.Handler, method, path string) (int, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode list response (%d): %v: %s", rec.Code, err, rec.Body.String())
	}
	return rec.Code, decoded
}

// errMsg extracts the error field from an error response.
func errMsg(t *testing.T, body map[string]any) string {
	t.Helper()
	msg, ok := body["error"].(string)
	if !ok {
		t.Fatalf("response has no error field: %v", body)
	}
	return msg
}
