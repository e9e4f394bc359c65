package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"github.com/couchcryptid/kma-weather-skills/internal/domain"
	"github.com/couchcryptid/kma-weather-skills/internal/observability"
)

const createCacheTable = `
CREATE TABLE IF NOT EXISTS forecast_cache (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_forecast_cache_expires ON forecast_cache (expires_at);
`

// SQLiteCache wraps a ForecastProvider with a SQLite-backed cache so cached
// releases survive process restarts.
type SQLiteCache struct {
	inner   domain.ForecastProvider
	db      *sql.DB
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics
}

// NewSQLiteCache opens (or creates) the cache database at path and returns a
// decorator around the forecast provider.
func NewSQLiteCache(inner domain.ForecastProvider, path string, ttl time.Duration, metrics *observability.Metrics) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if _, err := db.Exec(createCacheTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}

	return &SQLiteCache{
		inner:   inner,
		db:      db,
		ttl:     ttl,
		clock:   clockwork.NewRealClock(),
		metrics: metrics,
	}, nil
}

// Close closes the underlying database.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

func (c *SQLiteCache) Observe(ctx context.Context, g domain.Grid, rel domain.Release) ([]domain.ForecastValue, error) {
	return c.fetch(ctx, "obs", g, rel, c.inner.Observe)
}

func (c *SQLiteCache) HourlyForecast(ctx context.Context, g domain.Grid, rel domain.Release) ([]domain.ForecastValue, error) {
	return c.fetch(ctx, "hourly", g, rel, c.inner.HourlyForecast)
}

func (c *SQLiteCache) VillageForecast(ctx context.Context, g domain.Grid, rel domain.Release) ([]domain.ForecastValue, error) {
	return c.fetch(ctx, "village", g, rel, c.inner.VillageForecast)
}

func (c *SQLiteCache) fetch(ctx context.Context, product string, g domain.Grid, rel domain.Release, fn fetchFunc) ([]domain.ForecastValue, error) {
	key := cacheKey(product, g, rel)
	if values, ok := c.lookup(ctx, key); ok {
		c.metrics.CacheLookups.WithLabelValues("sqlite", "hit").Inc()
		return values, nil
	}
	c.metrics.CacheLookups.WithLabelValues("sqlite", "miss").Inc()

	values, err := fn(ctx, g, rel)
	if err != nil {
		return nil, err
	}
	if len(values) > 0 {
		if err := c.store(ctx, key, values); err != nil {
			// A failed cache write must not fail the lookup.
			return values, nil
		}
	}
	return values, nil
}

func (c *SQLiteCache) lookup(ctx context.Context, key string) ([]domain.ForecastValue, bool) {
	var payload []byte
	var expiresAt int64
	err := c.db.QueryRowContext(ctx,
		`SELECT payload, expires_at FROM forecast_cache WHERE key = ?`, key,
	).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		return nil, false
	}

	if c.clock.Now().Unix() > expiresAt {
		_, _ = c.db.ExecContext(ctx, `DELETE FROM forecast_cache WHERE key = ?`, key)
		return nil, false
	}

	var values []domain.ForecastValue
	if err := json.Unmarshal(payload, &values); err != nil {
		_, _ = c.db.ExecContext(ctx, `DELETE FROM forecast_cache WHERE key = ?`, key)
		return nil, false
	}
	return values, true
}

func (c *SQLiteCache) store(ctx context.Context, key string, values []domain.ForecastValue) error {
	payload, err := json.Marshal(values)
	if err != nil {
		return err
	}
	expiresAt := c.clock.Now().Add(c.ttl).Unix()
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO forecast_cache (key, payload, expires_at) VALUES (?, ?, ?)`,
		key, payload, expiresAt)
	return err
}

// Purge removes expired rows. Intended for a periodic housekeeping call.
func (c *SQLiteCache) Purge(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM forecast_cache WHERE expires_at < ?`, c.clock.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}
	return res.RowsAffected()
}
