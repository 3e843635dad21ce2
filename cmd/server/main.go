package main

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"certbook/config"
	"certbook/internal/handlers"
	"certbook/internal/logger"
	"certbook/internal/metrics"
	"certbook/internal/store"
	storebbolt "certbook/internal/store/bbolt"
	"certbook/internal/version"
	"certbook/middleware"
)

func main() {
	cfg := config.Load()

	// Initialize structured logger from config
	logger.Init(cfg.LogLevel)
	log := logger.Get()

	log.Info().
		Str("version", version.Version).
		Msg("certbook starting")

	log.Info().
		Str("env", string(cfg.Env)).
		Str("log_level", cfg.LogLevel).
		Str("log_format", cfg.LogFormat).
		Str("db_path", cfg.DBPath).
		Msg("Configuration loaded")

	// A failed open is not fatal: the process keeps serving and every store
	// operation degrades to a uniform unavailable error.
	var st store.Store
	boltStore, storeErr := storebbolt.Open(cfg.DBPath)
	if storeErr != nil {
		log.Error().Err(storeErr).
			Str("db_path", cfg.DBPath).
			Msg("Failed to open document store, serving with unavailable store")
		st = store.NewUnavailable(storeErr)
	} else {
		log.Info().Str("db_path", cfg.DBPath).Msg("Document store opened")
		st = boltStore
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(metrics.NewCertificateCollector(st))

	webFS, fsError := fs.Sub(embeddedWeb, "web")
	if fsError != nil {
		log.Fatal().Err(fsError).
			Msg("Failed to initialize embedded web filesystem")
	}
	assetsFS, assetsError := fs.Sub(webFS, "assets")
	if assetsError != nil {
		log.Fatal().Err(assetsError).
			Msg("Failed to initialize embedded assets filesystem")
	}

	r := chi.NewRouter()

	// Middleware must be registered before any routes
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CSRFProtection)
	r.Use(middleware.BodyLimit(1 << 20))
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
		MaxRequests:        300,
		Window:             1 * time.Minute,
		MaxEntries:         10_000,
		ExemptPaths:        []string{"/api/health", "/api/ready", "/metrics"},
		ExemptPathPrefixes: []string{"/assets/"},
	}))

	staticHandler := http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS)))
	r.Handle("/assets/*", staticHandler)

	// Health and readiness probes
	r.Get("/api/health", handlers.HealthCheck)
	r.Get("/api/ready", handlers.ReadinessCheck)
	r.Get("/api/status", func(w http.ResponseWriter, req *http.Request) {
		type statusResponse struct {
			Version        string `json:"version"`
			StoreConnected bool   `json:"store_connected"`
			StoreError     string `json:"store_error,omitempty"`
		}
		response := statusResponse{Version: version.Version}
		if err := st.CheckConnection(req.Context()); err != nil {
			response.StoreConnected = false
			response.StoreError = err.Error()
		} else {
			response.StoreConnected = true
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	})
	r.Get("/api/version", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(version.Info())
	})
	r.Get("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP)
	handlers.RegisterCertRoutes(r, st.CertificateStore())
	handlers.RegisterDocsRoutes(r, webFS)
	handlers.RegisterUIRoutes(r, st, webFS)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if err := st.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close document store")
	}

	log.Info().Msg("Server stopped")
}
