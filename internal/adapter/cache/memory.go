// Package cache provides decorators that cache forecast responses. KMA
// releases are immutable once published, so a (product, grid, release) key
// can be served from cache until the next release supersedes it.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/kma-weather-skills/internal/domain"
	"github.com/couchcryptid/kma-weather-skills/internal/observability"
)

// fetchFunc is one of the inner provider's three product methods.
type fetchFunc func(ctx context.Context, g domain.Grid, rel domain.Release) ([]domain.ForecastValue, error)

// cacheKey identifies one product response.
func cacheKey(product string, g domain.Grid, rel domain.Release) string {
	return fmt.Sprintf("%s|%d|%d|%s|%s", product, g.NX, g.NY, rel.BaseDate, rel.BaseTime)
}

// ForecastCache wraps a ForecastProvider with an in-memory TTL+LRU cache.
type ForecastCache struct {
	inner   domain.ForecastProvider
	cache   *lruCache
	metrics *observability.Metrics
}

// NewForecastCache creates a cache decorator around a forecast provider.
func NewForecastCache(inner domain.ForecastProvider, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *ForecastCache {
	return &ForecastCache{
		inner:   inner,
		cache:   newLRUCache(maxEntries, ttl, clockwork.NewRealClock()),
		metrics: metrics,
	}
}

func (c *ForecastCache) Observe(ctx context.Context, g domain.Grid, rel domain.Release) ([]domain.ForecastValue, error) {
	return c.fetch(ctx, "obs", g, rel, c.inner.Observe)
}

func (c *ForecastCache) HourlyForecast(ctx context.Context, g domain.Grid, rel domain.Release) ([]domain.ForecastValue, error) {
	return c.fetch(ctx, "hourly", g, rel, c.inner.HourlyForecast)
}

func (c *ForecastCache) VillageForecast(ctx context.Context, g domain.Grid, rel domain.Release) ([]domain.ForecastValue, error) {
	return c.fetch(ctx, "village", g, rel, c.inner.VillageForecast)
}

func (c *ForecastCache) fetch(ctx context.Context, product string, g domain.Grid, rel domain.Release, fn fetchFunc) ([]domain.ForecastValue, error) {
	key := cacheKey(product, g, rel)
	if values, ok := c.cache.get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("memory", "hit").Inc()
		return values, nil
	}
	c.metrics.CacheLookups.WithLabelValues("memory", "miss").Inc()

	values, err := fn(ctx, g, rel)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty responses so a release queried just before it
	// lands can be retried.
	if len(values) > 0 {
		c.cache.put(key, values)
	}
	return values, nil
}

// lruCache is a thread-safe LRU cache with per-entry expiry.
type lruCache struct {
	maxEntries int
	ttl        time.Duration
	clock      clockwork.Clock

	mu      sync.Mutex
	entries map[string]*entry
	head    *entry // most recently used
	tail    *entry // least recently used
}

type entry struct {
	key       string
	values    []domain.ForecastValue
	expiresAt time.Time
	prev      *entry
	next      *entry
}

func newLRUCache(maxEntries int, ttl time.Duration, clock clockwork.Clock) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clock,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]domain.ForecastValue, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.clock.Now().After(e.expiresAt) {
		c.remove(e)
		delete(c.entries, key)
		return nil, false
	}
	c.moveToFront(e)
	return e.values, true
}

func (c *lruCache) put(key string, values []domain.ForecastValue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.clock.Now().Add(c.ttl)

	if e, ok := c.entries[key]; ok {
		e.values = values
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, values: values, expiresAt: expiresAt}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
