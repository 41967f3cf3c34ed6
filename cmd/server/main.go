package main

import (
	"ai-chat-backend/internal/api"
	"ai-chat-backend/internal/config"
	"ai-chat-backend/internal/handlers"
	"ai-chat-backend/internal/logging"
	"ai-chat-backend/internal/observability"
	"ai-chat-backend/internal/replies"
	"ai-chat-backend/internal/services"
	"ai-chat-backend/internal/store"
	"ai-chat-backend/internal/store/memory"
	"ai-chat-backend/internal/store/postgres"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	logger := logging.New(logging.Options{
		Production: cfg.IsProduction(),
		FilePath:   cfg.LogFilePath,
	})
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting chat backend", zap.String("env", cfg.Environment))

	if err := observability.InitSentry(cfg.SentryDSN, cfg.Environment); err != nil {
		logger.Warn("sentry disabled", zap.Error(err))
	}
	defer observability.FlushSentry()

	// 2. Stores: message logs always live in memory; credentials come from
	// Postgres when DATABASE_URL is set.
	memStore := memory.NewStore()
	memory.SeedDemo(memStore)

	var (
		users      store.UserStore  = memStore
		userWriter store.UserWriter = memStore
	)

	if cfg.DatabaseURL != "" {
		dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer dbCancel()

		dbpool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("unable to create database connection pool: %w", err)
		}
		defer dbpool.Close()

		if err := dbpool.Ping(dbCtx); err != nil {
			return fmt.Errorf("unable to ping database: %w", err)
		}

		pgUsers := postgres.NewUserStore(dbpool, logger)
		if err := pgUsers.EnsureSchema(dbCtx); err != nil {
			return err
		}
		demo := memory.DemoUser()
		if err := pgUsers.PutUser(dbCtx, &demo); err != nil {
			return fmt.Errorf("unable to seed demo user: %w", err)
		}

		users, userWriter = pgUsers, pgUsers
		logger.Info("using postgres credential store")
	}

	// 3. Services
	authService := services.NewAuthService(users, cfg, logger)
	messageService := services.NewMessageService(memStore, replies.NewGenerator(nil), logger)

	if cfg.BootstrapUsername != "" {
		if err := authService.RegisterUser(context.Background(), userWriter, cfg.BootstrapUsername, cfg.BootstrapPassword); err != nil {
			return fmt.Errorf("unable to register bootstrap user: %w", err)
		}
	}

	// 4. Handlers & Router
	router := api.NewRouter(api.RouterDependencies{
		AuthHandler:    handlers.NewAuthHandler(authService, logger),
		MessageHandler: handlers.NewMessageHandlers(messageService, logger),
		TokenResolver:  authService,
		LoginLimiter:   api.NewLoginRateLimiter(cfg.LoginRateLimitMax, cfg.LoginRateLimitWindow, logger),
		Config:         cfg,
		Logger:         logger,
	})

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("could not listen on %s: %w", cfg.HTTPPort, err)
		}
		return nil
	case <-stopChan:
		logger.Info("shutdown signal received, initiating graceful shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server shutdown complete")
	return nil
}
