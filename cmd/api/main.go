package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/fokus-engine/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/fokus-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/fokus-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/fokus-engine/internal/config"
	"github.com/comitanigiacomo/fokus-engine/internal/core/analytics"
	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
	"github.com/comitanigiacomo/fokus-engine/internal/core/services"
	"github.com/comitanigiacomo/fokus-engine/internal/core/workers"
)

type app struct {
	router *gin.Engine
	db     *sqlx.DB
	redis  *redis.Client
	worker *workers.SnapshotWorker
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("fokus engine listening", "port", cfg.Server.Port, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}

	select {
	case <-a.worker.Done():
	case <-shutdownCtx.Done():
	}

	logger.Info("server stopped gracefully")
}

// buildApp wires storage, cache, worker and HTTP for cfg. The snapshot worker
// runs until ctx is cancelled.
func buildApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{}

	var (
		focusRepo    domain.FocusRepository
		progressRepo domain.ProgressRepository
	)

	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("using in-memory store, snapshots are not persisted")
		store := repository.NewInMemoryFocusRepository()
		if cfg.Database.SeedFile != "" {
			n, err := repository.LoadSeedFile(store, cfg.Database.SeedFile)
			if err != nil {
				return nil, err
			}
			logger.Info("seeded in-memory store", "file", cfg.Database.SeedFile, "focuses", n)
		}
		focusRepo, progressRepo = store, store
	} else {
		logger.Info("connecting to database", "driver", cfg.Database.Driver)
		db, err := repository.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
		if err != nil {
			return nil, err
		}
		a.db = db
		focusRepo = repository.NewSQLFocusRepository(db)
		progressRepo = repository.NewSQLProgressRepository(db)
	}

	var cached *repository.CachedFocusRepository
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(cache.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warn("redis unavailable, running without cache and rate limiting", "error", err)
		} else {
			a.redis = rdb
			cached = repository.NewCachedFocusRepository(focusRepo, rdb, cfg.Redis.CacheTTL, logger)
			focusRepo = cached
		}
	}

	cal := analytics.NewCalendar(cfg.Calendar.Location, cfg.Calendar.FirstWeekday)

	a.worker = workers.NewSnapshotWorker(focusRepo, cal, logger)
	a.worker.Start(ctx)

	svc := services.NewStatsService(focusRepo, progressRepo, analytics.NewEngine(cal), logger)

	handler := adapterHTTP.NewStatsHandler(svc, logger)
	if cached != nil {
		handler.WithRefresh(cached, a.worker)
	} else {
		handler.WithRefresh(nil, a.worker)
	}

	a.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		StatsHandler:   handler,
		TokenValidator: services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, 24*time.Hour),
		DB:             a.db,
		Redis:          a.redis,
		Logger:         logger,
		RateLimit:      cfg.RateLimit.Limit,
		RateWindow:     cfg.RateLimit.Window,
		StartTime:      time.Now(),
	})

	return a, nil
}
