package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/webigo-agency/webigo-backend/internal/api/router"
	appconfig "github.com/webigo-agency/webigo-backend/internal/config"
	"github.com/webigo-agency/webigo-backend/internal/devis"
	"github.com/webigo-agency/webigo-backend/internal/enrich"
	"github.com/webigo-agency/webigo-backend/internal/notify"
	"github.com/webigo-agency/webigo-backend/internal/observability/metrics"
	"github.com/webigo-agency/webigo-backend/pkg/logging"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting webigo API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Refuse to start on missing credentials rather than failing per request.
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("database unreachable", "error", err)
		os.Exit(1)
	}

	gemini, err := enrich.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiTextModel, cfg.GeminiImageModel)
	if err != nil {
		logger.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}
	defer func() { _ = gemini.Close() }()

	emailSender := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger)

	pipelineMetrics := metrics.NewPipelineMetrics(prometheus.DefaultRegisterer)

	repo := devis.NewPostgresRepository(pool)
	analyzer := enrich.NewAnalyzer(gemini, logger)
	imager := enrich.NewImager(gemini, logger)
	notifier := notify.NewService(emailSender, cfg.NotifyEmail, logger)
	pipeline := devis.NewPipeline(repo, analyzer, imager, notifier, pipelineMetrics, logger)
	devisHandler := devis.NewHandler(pipeline, repo, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		DevisHandler:       devisHandler,
		AdminJWTSecret:     cfg.AdminJWTSecret,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // enrichment can hold a request for several seconds
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
