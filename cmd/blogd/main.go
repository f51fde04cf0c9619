// Package main is the entry point for the blogging platform API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/cache"
	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/config"
	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/database"
	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/handlers"
	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/middleware"
	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/router"
	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/store"
)

func main() {
	// Structured logger for the whole process.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (optional, the API works without it; a nil
	// PostCache disables caching transparently).
	var postCache *cache.PostCache
	if cfg.ValkeyAddr != "" {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyAddr, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		postCache = cache.NewPostCache(valkeyClient, cache.DefaultPostTTL)
	} else {
		slog.Warn("valkey not configured, post response caching disabled")
	}

	// Initialize data stores and the handler group.
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	api := handlers.NewAPI(postStore, categoryStore, postCache)

	// Rate-limit writes: 60 mutations per minute per client IP.
	limiter := middleware.NewRateLimiter(60, time.Minute)
	defer limiter.Stop()

	r := router.New(api, limiter)

	// Create the HTTP server with sensible timeouts. Every operation is a
	// single synchronous database round-trip, so the write timeout can be
	// tight.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
