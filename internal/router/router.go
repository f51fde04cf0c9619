// Package router sets up the HTTP routes and middleware chain for the
// blogging platform API. Read endpoints are open; mutating endpoints sit
// behind the rate limiter.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/handlers"
	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up. limiter may be nil to disable rate limiting.
func New(api *handlers.API, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", api.CategoryList)
			r.Get("/slug/{slug}", api.CategoryGetBySlug)
			r.Get("/{id}", api.CategoryGet)

			r.Group(func(r chi.Router) {
				if limiter != nil {
					r.Use(limiter.Middleware)
				}
				r.Post("/", api.CategoryCreate)
				r.Put("/{id}", api.CategoryUpdate)
				r.Delete("/{id}", api.CategoryDelete)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", api.PostList)
			r.Get("/slug/{slug}", api.PostGetBySlug)
			r.Get("/{id}", api.PostGet)

			r.Group(func(r chi.Router) {
				if limiter != nil {
					r.Use(limiter.Middleware)
				}
				r.Post("/", api.PostCreate)
				r.Put("/{id}", api.PostUpdate)
				r.Delete("/{id}", api.PostDelete)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
