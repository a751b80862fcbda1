package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/server"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(!inMemory)
	if err != nil {
		return err
	}

	repos, db, err := openRepositories(cfg)
	if err != nil {
		return err
	}
	deps := server.Deps{Repos: repos}

	var pgLogHandler *logging.PGHandler
	cleanupDone := make(chan struct{})
	if db != nil {
		deps.Pinger = database.Pinger(db)

		// PostgreSQL log handler (ERROR+ async batch)
		pgLogHandler = logging.NewPGHandler(db)
		slog.SetDefault(slog.New(logging.NewMultiHandler(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
			pgLogHandler,
		)))
		logging.StartCleanup(db, cfg.LogRetention, cleanupDone)
	} else {
		slog.Warn("running with in-memory repositories; data is lost on exit")
	}

	deps.Storage, err = openStorage(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	app := server.New(cfg, deps)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "storage", cfg.StorageDriver, "in_memory", inMemory)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	runErr := awaitShutdown(quit, listenErr)

	close(cleanupDone)
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if db != nil {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
	return runErr
}

// awaitShutdown blocks until a signal arrives or the listener stops. A
// listener failure is returned so the process exits non-zero.
func awaitShutdown(quit <-chan os.Signal, listenErr <-chan error) error {
	select {
	case <-quit:
		slog.Info("shutting down server...")
		return nil
	case err := <-listenErr:
		slog.Error("server failed to start", "error", err)
		return fmt.Errorf("listen: %w", err)
	}
}

// commandContext bounds one-shot commands.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), time.Minute)
}
