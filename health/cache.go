package health

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/scanhub"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long a probe result is served from the cache.
const DefaultCacheTTL = 5 * time.Minute

var _ scanhub.HealthChecker = (*Cache)(nil)

type entry struct {
	result  scanhub.SourceHealthResult
	expires time.Time
}

// Cache serves recent probe results keyed by source id and collapses
// concurrent probes of the same source into one.
type Cache struct {
	next  scanhub.HealthChecker
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]entry
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithCacheClock replaces time.Now, for tests.
func WithCacheClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache wraps next with a cache whose entries live for ttl.
func NewCache(next scanhub.HealthChecker, ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check returns the cached result for src or probes it.
func (c *Cache) Check(ctx context.Context, src scanhub.Source) scanhub.SourceHealthResult {
	id := scanhub.SourceID(src.Name())
	if res, ok := c.get(id); ok {
		return res
	}
	v, _, _ := c.group.Do(id, func() (any, error) {
		res := c.next.Check(ctx, src)
		c.set(id, res)
		return res, nil
	})
	return v.(scanhub.SourceHealthResult)
}

// CheckAll probes only the sources without a fresh cached result.
func (c *Cache) CheckAll(ctx context.Context, srcs []scanhub.Source) map[string]scanhub.SourceHealthResult {
	out := make(map[string]scanhub.SourceHealthResult, len(srcs))
	var missing []scanhub.Source
	for _, src := range srcs {
		id := scanhub.SourceID(src.Name())
		if res, ok := c.get(id); ok {
			out[id] = res
			continue
		}
		missing = append(missing, src)
	}
	if len(missing) == 0 {
		return out
	}
	for id, res := range c.next.CheckAll(ctx, missing) {
		c.set(id, res)
		out[id] = res
	}
	return out
}

// Invalidate drops every cached result.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

func (c *Cache) get(id string) (scanhub.SourceHealthResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	if !ok || !c.now().Before(e.expires) {
		return scanhub.SourceHealthResult{}, false
	}
	return e.result, true
}

func (c *Cache) set(id string, res scanhub.SourceHealthResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = entry{result: res, expires: c.now().Add(c.ttl)}
}
