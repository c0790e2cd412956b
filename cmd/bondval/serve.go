package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/JuanPescoran/bond-valuation-app/internal/adapters/backend"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/events"
	portsrepo "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/repositories"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/projection"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/services"
	"github.com/JuanPescoran/bond-valuation-app/internal/handlers"
	"github.com/JuanPescoran/bond-valuation-app/internal/jobs"
	"github.com/JuanPescoran/bond-valuation-app/internal/middleware"
	"github.com/JuanPescoran/bond-valuation-app/internal/platform/config"
	"github.com/JuanPescoran/bond-valuation-app/internal/repositories/database/pgsql"
	"github.com/JuanPescoran/bond-valuation-app/internal/repositories/database/sqlite"
	"github.com/JuanPescoran/bond-valuation-app/internal/repositories/memory"
	"github.com/JuanPescoran/bond-valuation-app/internal/utils"
	"github.com/JuanPescoran/bond-valuation-app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 10 * time.Second
	jobTimeout      = time.Minute
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	bus := events.NewBus()
	repos := portsrepo.RepositoryProvider{
		Store:   store,
		Backend: backend.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, logger),
	}
	serviceContainer := services.NewServiceContainer(cfg, repos, bus)

	formatter, err := projection.NewFormatter(cfg.DisplayLocale)
	if err != nil {
		return fmt.Errorf("invalid DISPLAY_LOCALE %q: %w", cfg.DisplayLocale, err)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, formatter); err != nil {
		return err
	}

	scheduler := jobs.New(logger, jobTimeout)
	if err := scheduler.AddJob(cfg.SessionSweepSchedule, jobs.NewSessionSweeper(serviceContainer.Auth, logger)); err != nil {
		return fmt.Errorf("invalid SESSION_SWEEP_SCHEDULE %q: %w", cfg.SessionSweepSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// openStore connects the key/value store selected by STORE_DRIVER. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.KVStoreFacade, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		db, err := database.NewSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store, err := sqlite.NewKVRepository(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("SQLite store opened", slog.String("path", cfg.SQLitePath))
		return store, func() { db.Close() }, nil

	case config.StorePostgres:
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return nil, nil, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return pgsql.NewKVStore(pool), pool.Close, nil

	default:
		logger.Warn("Using in-memory store, sessions and settings are lost on restart")
		return memory.NewKVRepository(), func() {}, nil
	}
}
