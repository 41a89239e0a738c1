// Package main provides the course search server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/smartcampus/coursesearch/internal/answer"
	"github.com/smartcampus/coursesearch/internal/config"
	"github.com/smartcampus/coursesearch/internal/genai"
	"github.com/smartcampus/coursesearch/internal/httpapi"
	"github.com/smartcampus/coursesearch/internal/logger"
	"github.com/smartcampus/coursesearch/internal/metrics"
	"github.com/smartcampus/coursesearch/internal/search"
	"github.com/smartcampus/coursesearch/internal/sentry"
	"github.com/smartcampus/coursesearch/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log.Info("Starting course search server")

	// Initialize error tracking
	if err := sentry.Initialize(cfg); err != nil {
		log.WithError(err).Warn("Failed to initialize sentry, error tracking disabled")
	} else if sentry.IsEnabled() {
		log.Info("Sentry error tracking enabled")
	}

	// Connect to database
	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	// Create Prometheus registry with standard collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Decide the answering mode once; it never changes at runtime
	setup := genai.Init(context.Background(), genai.Config{
		Gemini: genai.ProviderConfig{APIKey: cfg.GeminiAPIKey, Models: cfg.GeminiModels},
		Groq:   genai.ProviderConfig{APIKey: cfg.GroqAPIKey, Models: cfg.GroqModels},
		Retry:  genai.DefaultRetryConfig(),
	}, log, m)

	// Assemble the answer pipeline
	ranker := search.NewRanker(db, log, m, cfg.CandidateLimit)
	engine := answer.NewEngine(ranker, setup, cfg.LLMTimeout, log, m)
	apiHandler := httpapi.NewHandler(engine, log, m)
	log.WithField("mode", setup.Mode()).Info("Answer pipeline assembled")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	setupRoutes(router, cfg, apiHandler, db, registry)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Close the generator chain (if configured)
	if c, ok := setup.(genai.Configured); ok {
		if err := c.Generator.Close(); err != nil {
			log.WithError(err).Error("Failed to close generator chain")
		}
	}

	if err := db.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}

	sentry.Flush(2 * time.Second)
	log.Info("Server stopped")
}
