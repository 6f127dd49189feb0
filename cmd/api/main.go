// Package main is the entry point for the IntelHub API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/intelhub/backend/internal/config"
	"github.com/intelhub/backend/internal/handler"
	"github.com/intelhub/backend/internal/middleware"
	"github.com/intelhub/backend/internal/repo"
	"github.com/intelhub/backend/internal/service"
)

// maxBodySize caps incoming request bodies at 1 MiB; the largest legitimate
// payload (a wishlist item with images and URLs) stays well under that.
const maxBodySize = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Store ------------------------------------------------------------
	// Dial parses the Redis URL and pings the server, so a bad address or an
	// unreachable store fails fast instead of on the first request.
	store, err := repo.Dial(context.Background(), cfg.RedisURL)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("redis connection established")

	// --- Repositories and services ----------------------------------------
	tagRepo := repo.NewTagRepo(store)
	indexRepo := repo.NewTagIndexRepo(store)
	competitorRepo := repo.NewCompetitorRepo(store)
	wishlistRepo := repo.NewWishlistRepo(store)
	vendorRepo := repo.NewVendorRepo(store)
	productRepo := repo.NewMasterProductRepo(store)

	directory := service.EntityDirectory{
		Competitors: competitorRepo,
		Wishlist:    wishlistRepo,
		Vendors:     vendorRepo,
	}

	tagService := service.NewTagService(tagRepo)
	statsService := service.NewStatsService(tagRepo, directory)
	assignService := service.NewAssignmentService(tagService, indexRepo, directory)
	mergeService := service.NewMergeService(tagRepo, indexRepo, directory)
	competitorService := service.NewCompetitorService(competitorRepo, tagService, indexRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, competitorRepo, vendorRepo, productRepo, tagService, indexRepo)
	vendorService := service.NewVendorService(vendorRepo, wishlistRepo, tagService, indexRepo)
	productService := service.NewMasterProductService(productRepo, wishlistRepo)

	server := handler.NewServer(
		tagService,
		statsService,
		assignService,
		mergeService,
		competitorService,
		wishlistService,
		vendorService,
		productService,
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
