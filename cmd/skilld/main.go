// Command skilld serves the weather skill registry over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/kma-weather-skills/internal/adapter/cache"
	"github.com/couchcryptid/kma-weather-skills/internal/adapter/httpapi"
	"github.com/couchcryptid/kma-weather-skills/internal/adapter/kma"
	"github.com/couchcryptid/kma-weather-skills/internal/adapter/naver"
	"github.com/couchcryptid/kma-weather-skills/internal/config"
	"github.com/couchcryptid/kma-weather-skills/internal/domain"
	"github.com/couchcryptid/kma-weather-skills/internal/observability"
	"github.com/couchcryptid/kma-weather-skills/internal/skill"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	registry, err := skill.LoadBuiltin()
	if err != nil {
		logger.Error("failed to load skills", "error", err)
		os.Exit(1)
	}

	kmaClient := kma.NewClient(cfg.KMAServiceKey, cfg.KMATimeout, cfg.KMAPageSize, metrics, logger)

	// Forecast responses are cached; the SQLite backend is selected by
	// CACHE_PATH, otherwise an in-memory cache is used.
	var forecasts domain.ForecastProvider = kmaClient
	var sqliteCache *cache.SQLiteCache
	switch {
	case !cfg.CacheEnabled:
		logger.Info("forecast cache disabled")
	case cfg.CachePath != "":
		sqliteCache, err = cache.NewSQLiteCache(kmaClient, cfg.CachePath, cfg.CacheTTL, metrics)
		if err != nil {
			logger.Error("failed to open sqlite cache", "path", cfg.CachePath, "error", err)
			os.Exit(1)
		}
		forecasts = sqliteCache
		logger.Info("sqlite forecast cache enabled", "path", cfg.CachePath, "ttl", cfg.CacheTTL)
	default:
		forecasts = cache.NewForecastCache(kmaClient, cfg.CacheSize, cfg.CacheTTL, metrics)
		logger.Info("memory forecast cache enabled", "size", cfg.CacheSize, "ttl", cfg.CacheTTL)
	}

	// News search is feature-flagged via NAVER_CLIENT_ID / NAVER_CLIENT_SECRET.
	var news domain.NewsProvider
	if cfg.NewsEnabled() {
		news = naver.NewClient(cfg.NaverClientID, cfg.NaverClientSecret, cfg.NaverTimeout, metrics, logger)
		logger.Info("naver news search enabled", "limit", cfg.NewsLimit)
	} else {
		logger.Info("naver news search disabled")
	}

	runner := skill.NewRunner(registry, forecasts, kmaClient, kmaClient, news, cfg.NewsLimit, metrics, logger)
	srv := httpapi.NewServer(cfg.HTTPAddr, runner, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if sqliteCache != nil {
		if err := sqliteCache.Close(); err != nil {
			logger.Error("sqlite cache close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
