package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/kma-weather-skills/internal/domain"
	"github.com/couchcryptid/kma-weather-skills/internal/observability"
)

func testSQLiteCache(t *testing.T, inner domain.ForecastProvider, ttl time.Duration) *SQLiteCache {
	t.Helper()
	c, err := NewSQLiteCache(inner, filepath.Join(t.TempDir(), "cache.db"), ttl, observability.NewMetricsForTesting())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSQLiteCache_HitSkipsUpstream(t *testing.T) {
	stub := &stubProvider{values: []domain.ForecastValue{{Category: "T1H", Value: "5.2"}}}
	c := testSQLiteCache(t, stub, time.Minute)

	first, err := c.Observe(context.Background(), seoul, release)
	require.NoError(t, err)
	second, err := c.Observe(context.Background(), seoul, release)
	require.NoError(t, err)

	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, first, second)
}

func TestSQLiteCache_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	stub := &stubProvider{values: []domain.ForecastValue{{Category: "TMP", Value: "1"}}}

	c1, err := NewSQLiteCache(stub, path, time.Minute, observability.NewMetricsForTesting())
	require.NoError(t, err)
	_, err = c1.VillageForecast(context.Background(), seoul, release)
	require.NoError(t, err)
	require.NoError(t, c1.Close())

	c2, err := NewSQLiteCache(stub, path, time.Minute, observability.NewMetricsForTesting())
	require.NoError(t, err)
	defer c2.Close()

	values, err := c2.VillageForecast(context.Background(), seoul, release)
	require.NoError(t, err)

	assert.Equal(t, 1, stub.calls)
	require.Len(t, values, 1)
	assert.Equal(t, "TMP", values[0].Category)
}

func TestSQLiteCache_ExpiredEntryIsRefetched(t *testing.T) {
	stub := &stubProvider{values: []domain.ForecastValue{{Category: "T1H", Value: "3"}}}
	c := testSQLiteCache(t, stub, time.Minute)

	clock := clockwork.NewFakeClock()
	c.clock = clock

	_, err := c.Observe(context.Background(), seoul, release)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)

	_, err = c.Observe(context.Background(), seoul, release)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.calls)
}

func TestSQLiteCache_Purge(t *testing.T) {
	stub := &stubProvider{values: []domain.ForecastValue{{Category: "T1H", Value: "3"}}}
	c := testSQLiteCache(t, stub, time.Minute)

	clock := clockwork.NewFakeClock()
	c.clock = clock

	_, err := c.Observe(context.Background(), seoul, release)
	require.NoError(t, err)

	removed, err := c.Purge(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed)

	clock.Advance(2 * time.Minute)

	removed, err = c.Purge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
