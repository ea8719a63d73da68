package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jholtmann/todocast/internal/broadcast"
	"github.com/jholtmann/todocast/internal/config"
	"github.com/jholtmann/todocast/internal/domain"
	"github.com/jholtmann/todocast/internal/logging"
	"github.com/jholtmann/todocast/internal/render"
	"github.com/jholtmann/todocast/internal/server"
	"github.com/jholtmann/todocast/internal/store"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupStore(cfg *config.Config, clock clockwork.Clock) domain.TodoStore {
	if cfg.DatabasePath == "" {
		slog.Info("Using in-memory store")
		return store.NewMemory(clock)
	}

	s, err := store.OpenSQLite(cfg.DatabasePath, clock)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	slog.Info("Using SQLite store", "path", cfg.DatabasePath)
	return s
}

func runGracefulShutdown(cfg *config.Config, srv *server.Server, broadcaster *broadcast.Broadcaster) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		broadcaster.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	todoStore := setupStore(cfg, clock)
	defer func() { _ = todoStore.Close() }()

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Seed(seedCtx, todoStore); err != nil {
		slog.Error("Failed to seed store", "error", err)
		os.Exit(1)
	}

	renderer, err := render.New()
	if err != nil {
		slog.Error("Failed to create renderer", "error", err)
		os.Exit(1)
	}

	broadcaster := broadcast.NewBroadcaster(clock, cfg.MaxWebSocketClients)

	srv, err := server.NewServer(cfg, todoStore, broadcaster, renderer)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(cfg, srv, broadcaster)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
