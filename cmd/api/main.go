package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/bookvault/bookstore-api/docs"
	"github.com/bookvault/bookstore-api/internal/api"
	"github.com/bookvault/bookstore-api/internal/core/service"
	mongodb "github.com/bookvault/bookstore-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bookvault/bookstore-api/internal/infrastructure/db/redis"
	"github.com/bookvault/bookstore-api/internal/infrastructure/queue"
	"github.com/bookvault/bookstore-api/internal/pkg/config"
	"github.com/bookvault/bookstore-api/pkg/logger"
)

// @title        Book Store API
// @version      1.0
// @description  Book catalog service with token-based auth, RBAC, and a write-audit trail.
//
// @securityDefinitions.apikey BearerAuth
// @in           header
// @name         Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// Unique indexes on email and isbn are the authority on duplicates.
	auditRepo := mongodb.NewAuditRepository(db)
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewBookRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("book index creation failed")
	}
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("audit index creation failed")
	}

	// --- Audit pipeline ---
	auditService := service.NewAuditService(auditRepo, log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	var txClient = client
	if !cfg.Mongo.UseTransactions {
		txClient = nil
	}

	e := api.NewRouter(api.Deps{
		Mongo:     db,
		Client:    txClient,
		Redis:     rdb,
		Config:    cfg,
		Log:       log,
		Audit:     auditService,
		AuditSink: dispatcher,
	})

	// --- Serve ---
	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
