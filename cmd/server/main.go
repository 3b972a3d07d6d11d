package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-site/backend/internal/config"
	"github.com/portfolio-site/backend/internal/database"
	"github.com/portfolio-site/backend/internal/handler"
	"github.com/portfolio-site/backend/internal/logger"
	"github.com/portfolio-site/backend/internal/repository"
	"github.com/portfolio-site/backend/internal/router"
	"github.com/portfolio-site/backend/internal/service"
	"github.com/portfolio-site/backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting portfolio backend")

	passwordHash := cfg.AdminPasswordHash
	if passwordHash == "" {
		if cfg.AdminPassword == "" {
			log.Fatal().Msg("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD must be set")
		}
		var err error
		passwordHash, err = service.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to hash ADMIN_PASSWORD")
		}
		log.Warn().Msg("Using plaintext ADMIN_PASSWORD; set ADMIN_PASSWORD_HASH in production")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	examRepo := repository.NewExamRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	resultRepo := repository.NewResultRepository(rdb, cfg.ResultCASRetries)
	sessionRepo := repository.NewSessionRepository(rdb)

	// ─── Initialize Services ──────────────────────────────────────────
	credentials := service.NewStaticCredentials(cfg.AdminEmail, passwordHash)
	authService := service.NewAuthService(cfg, credentials, sessionRepo, log)
	examService := service.NewExamService(examRepo, resultRepo, log)
	importService := service.NewImportService(examService, log)
	postService := service.NewPostService(postRepo, log)
	dashboardService := service.NewDashboardService(examRepo, resultRepo, postRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService, cfg),
		Exam:      handler.NewExamHandler(examService),
		Import:    handler.NewImportHandler(importService),
		Post:      handler.NewPostHandler(postService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		WS:        handler.NewWSHandler(examService, resultRepo, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, authService, handlers, cfg, log)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	cancel()

	log.Info().Msg("Shutdown complete")
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
