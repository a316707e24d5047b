package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/hospital-billing/internal/api"
	"github.com/mmynk/hospital-billing/internal/auth"
	"github.com/mmynk/hospital-billing/internal/config"
	"github.com/mmynk/hospital-billing/internal/middleware"
	"github.com/mmynk/hospital-billing/internal/service"
	"github.com/mmynk/hospital-billing/internal/storage/relational"
)

const shutdownTimeout = 15 * time.Second

func storeConfig(cfg *config.Config) relational.Config {
	return relational.Config{
		Driver:     cfg.DBDriver,
		DSN:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
		Fallback:   cfg.SQLiteFallback,
		Seed:       cfg.SeedSampleData,
	}
}

// openStore opens the configured database. A failure is logged and yields a
// disconnected store so the process still starts and reports itself unhealthy.
func openStore(ctx context.Context, cfg *config.Config) *relational.Store {
	store, err := relational.Open(ctx, storeConfig(cfg))
	if err != nil {
		slog.Error("Failed to initialize storage, serving in disconnected mode", "driver", cfg.DBDriver, "error", err)
		return relational.Disconnected(cfg.DBDriver)
	}
	info := store.Info()
	slog.Info("Storage initialized",
		"type", info.DatabaseType,
		"database", info.Database,
		"fallback", info.Fallback,
	)
	return store
}

// buildServices wires the services over store. Editor auth is enabled only
// when both the JWT secret and the password hash are configured.
func buildServices(cfg *config.Config, store *relational.Store) (api.Services, *auth.JWTManager, error) {
	services := api.Services{
		Catalog:    service.NewCatalogService(store),
		Ledger:     service.NewLedgerService(store),
		Statistics: service.NewStatisticsService(store),
		Status:     service.NewStatusService(store),
	}
	if !cfg.EditorAuthEnabled() {
		return services, nil, nil
	}

	authenticator, err := auth.NewPasswordAuthenticator(cfg.EditorPasswordHash)
	if err != nil {
		return services, nil, fmt.Errorf("EDITOR_PASSWORD_HASH: %w", err)
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	services.Auth = service.NewAuthService(authenticator, jwtManager)
	return services, jwtManager, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	store := openStore(ctx, cfg)
	defer store.Close()

	services, jwtManager, err := buildServices(cfg, store)
	if err != nil {
		return err
	}
	slog.Info("Editor authentication", "enabled", jwtManager != nil)

	router := api.NewRouter(services, api.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Version:        version,
		JWTManager:     jwtManager,
		Metrics:        middleware.NewMetrics(),
	})

	srv := &http.Server{
		Addr: cfg.Addr(),
		// Wrap with h2c for HTTP/2 without TLS
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		slog.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("Server stopped")
	return nil
}

// migrate creates the schema (and seeds, if enabled) without starting the server.
// Unlike serve, it never falls back to disconnected mode.
func migrate(ctx context.Context, cfg *config.Config) error {
	store, err := relational.Open(ctx, storeConfig(cfg))
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer store.Close()

	info := store.Info()
	slog.Info("Migration complete", "type", info.DatabaseType, "database", info.Database, "fallback", info.Fallback)
	return nil
}
