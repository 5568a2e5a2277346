package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rkuzmin/railsprep/internal/api"
	"github.com/rkuzmin/railsprep/internal/app"
	"github.com/rkuzmin/railsprep/internal/config"
	dbstore "github.com/rkuzmin/railsprep/internal/db"
	"github.com/rkuzmin/railsprep/internal/middleware"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	store, backend := openStore(cfg, logger)

	router := api.NewRouter(store, logger)

	// Seeding is a bootstrap step, not a store constructor side effect: an
	// already-populated backend (or a second boot against the same sqlite
	// file) is detected and skipped.
	if err := router.Catalog().EnsureSeeded(); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	mux := http.NewServeMux()
	router.Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":      true,
			"name":    "railsprep API",
			"backend": backend,
		})
	})

	handler := middleware.CORS(middleware.SecureHeaders(middleware.NoStore(mux)))

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("addr", cfg.Server.Addr),
			slog.String("backend", backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// openStore builds the configured storage backend. A sqlite backend that
// cannot be opened falls back to the ephemeral in-memory store with a
// warning instead of failing the boot.
func openStore(cfg *config.Config, logger *slog.Logger) (api.Store, string) {
	if cfg.Storage.Backend != config.BackendSQLite {
		return api.NewMemoryStore(), config.BackendMemory
	}

	store, err := openSQLite(cfg, logger)
	if err != nil {
		logger.Warn("sqlite backend unavailable, falling back to in-memory store",
			slog.String("path", cfg.Storage.SQLitePath),
			slog.String("error", err.Error()))
		return api.NewMemoryStore(), config.BackendMemory
	}
	return store, config.BackendSQLite
}

func openSQLite(cfg *config.Config, logger *slog.Logger) (api.Store, error) {
	path := cfg.Storage.SQLitePath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(path))
	sqliteDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := sqliteDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := dbstore.RunMigrations(sqliteDB, cfg.Storage.MigrationsDir); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return dbstore.NewSQLiteStore(sqliteDB, logger)
}
