package search

import (
	"sync"
	"time"

	"github.com/receitaro/receitaro/internal/models"
)

// ResultCache memoizes search results for a short TTL, keyed by normalized
// query plus option set. It is a pure optimization layer: a warm cache returns
// exactly what a cold computation would, it only skips re-scoring work. The
// cache cannot detect upstream data changes on its own; callers must Clear or
// Invalidate when the candidate collection mutates.
type ResultCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	results   []*models.SearchResult
	createdAt time.Time
	ttl       time.Duration
}

// CacheOption configures a ResultCache.
type CacheOption func(*ResultCache)

// WithCacheClock overrides the clock used for expiry checks.
func WithCacheClock(now func() time.Time) CacheOption {
	return func(c *ResultCache) { c.now = now }
}

// NewResultCache creates an empty result cache.
func NewResultCache(opts ...CacheOption) *ResultCache {
	c := &ResultCache{
		entries: make(map[string]*cacheEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCompute returns the cached results for key when present and fresh;
// otherwise it invokes compute, stores the result with the given ttl, and
// returns it. Expired entries are evicted lazily. Concurrent misses on the
// same key may both compute; the last write wins, which is harmless because
// compute is pure for the same inputs. A panicking compute caches nothing.
func (c *ResultCache) GetOrCompute(key string, ttl time.Duration, compute func() []*models.SearchResult) []*models.SearchResult {
	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		if c.now().Sub(entry.createdAt) <= entry.ttl {
			results := entry.results
			c.mu.Unlock()
			return results
		}
		delete(c.entries, key)
	}
	c.mu.Unlock()

	results := compute()

	c.mu.Lock()
	c.entries[key] = &cacheEntry{results: results, createdAt: c.now(), ttl: ttl}
	c.mu.Unlock()
	return results
}

// Invalidate removes the entry for key, if any.
func (c *ResultCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes all entries.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

// Len returns the number of stored entries, including any not yet evicted
// expired ones.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
