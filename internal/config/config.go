package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// KMA API configuration.
	KMAServiceKey string
	KMATimeout    time.Duration
	KMAPageSize   int

	// Naver news configuration. News is feature-flagged on the credentials.
	NaverClientID     string
	NaverClientSecret string
	NaverTimeout      time.Duration
	NewsLimit         int

	// Forecast response cache.
	CacheEnabled bool
	CacheTTL     time.Duration
	CacheSize    int
	CachePath    string // non-empty selects the SQLite backend
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is loaded first when
// present; real environment variables win over .env entries.
func Load() (*Config, error) {
	_ = godotenv.Load()

	kmaTimeout, err := parseDuration("KMA_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	naverTimeout, err := parseDuration("NAVER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseDuration("CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}

	pageSize, err := parsePositiveInt("KMA_PAGE_SIZE", 300)
	if err != nil {
		return nil, err
	}
	newsLimit, err := parsePositiveInt("NEWS_LIMIT", 5)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parsePositiveInt("CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}

	cacheEnabled := true
	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		cacheEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KMAServiceKey: os.Getenv("KMA_SERVICE_KEY"),
		KMATimeout:    kmaTimeout,
		KMAPageSize:   pageSize,

		NaverClientID:     os.Getenv("NAVER_CLIENT_ID"),
		NaverClientSecret: os.Getenv("NAVER_CLIENT_SECRET"),
		NaverTimeout:      naverTimeout,
		NewsLimit:         newsLimit,

		CacheEnabled: cacheEnabled,
		CacheTTL:     cacheTTL,
		CacheSize:    cacheSize,
		CachePath:    os.Getenv("CACHE_PATH"),
	}

	if cfg.KMAServiceKey == "" {
		return nil, errors.New("KMA_SERVICE_KEY is required (get a key at https://www.data.go.kr)")
	}
	if (cfg.NaverClientID == "") != (cfg.NaverClientSecret == "") {
		return nil, errors.New("NAVER_CLIENT_ID and NAVER_CLIENT_SECRET must be set together")
	}

	return cfg, nil
}

// NewsEnabled reports whether Naver credentials are configured.
func (c *Config) NewsEnabled() bool {
	return c.NaverClientID != "" && c.NaverClientSecret != ""
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
