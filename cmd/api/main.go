// Package main is the entry point for the Myanmar calendar API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zapponejosh/mmcalendar-api/internal/api"
	"github.com/zapponejosh/mmcalendar-api/internal/config"
	"github.com/zapponejosh/mmcalendar-api/internal/database"
	"github.com/zapponejosh/mmcalendar-api/internal/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = listenAndRun(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func listenAndRun(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return run(ctx, cfg, log, ln)
}

// run serves the API on ln until ctx is done, then shuts down gracefully.
// It takes ownership of ln.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger, ln net.Listener) error {
	log.Info("starting Myanmar calendar API",
		slog.String("env", cfg.Env),
		slog.String("addr", ln.Addr().String()),
		slog.String("log_level", cfg.LogLevel),
		slog.String("calendar", cfg.CalendarType),
		slog.Float64("tz_offset_hours", cfg.TZOffsetHours),
	)

	db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		ln.Close()
		return err
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		ln.Close()
		return fmt.Errorf("migrate: %w", err)
	}

	handlers := api.NewHandlers(db, cfg, log)
	srv := &http.Server{
		Handler:           api.SetupRoutes(handlers, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Myanmar calendar API ready", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
