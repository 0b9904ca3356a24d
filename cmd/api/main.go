package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/benx421/account-api/internal/config"
	"github.com/benx421/account-api/internal/db"
	"github.com/benx421/account-api/internal/handlers"
	"github.com/benx421/account-api/internal/middleware"
	"github.com/benx421/account-api/internal/repository"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting account api",
		"profile", cfg.App.Profile,
		"description", cfg.App.Description,
		"port", cfg.Server.Port,
		"api_prefix", cfg.Server.APIPrefix,
		"log_level", cfg.Logger.Level,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close() //nolint:errcheck // Close logs; nothing else to do on exit

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx); err != nil {
			logger.Error("failed to apply migrations", "error", err)
			_ = database.Close()
			os.Exit(1)
		}
	}

	go middleware.PurgeIdempotencyKeys(
		ctx,
		repository.NewIdempotencyRepository(database.Querier()),
		cfg.App.IdempotencyTTL,
		cfg.App.IdempotencyPurgeInterval,
		logger,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handlers.NewRouter(database, cfg, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			logger.Error("server failed", "error", err)
		}
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}
