package dungeon

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tervalon/delveforge/internal/domain"
	"github.com/tervalon/delveforge/internal/metrics"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedMapEntry wraps a map with version metadata for cache invalidation
type cachedMapEntry struct {
	Version  string                `json:"version"`
	Map      *domain.MapDefinition `json:"map"`
	CachedAt time.Time             `json:"cached_at"`
}

// mapCache provides an in-memory LRU cache for parsed maps with time-based
// expiration and version-based invalidation to prevent stale data.
type mapCache struct {
	lru *expirable.LRU[string, *cachedMapEntry]
}

func newMapCache(size int, ttl time.Duration) *mapCache {
	return &mapCache{
		lru: expirable.NewLRU[string, *cachedMapEntry](size, nil, ttl),
	}
}

// Get retrieves a map from the cache.
// Returns (nil, false) if not cached, expired, or version mismatch.
func (c *mapCache) Get(id string) (*domain.MapDefinition, bool) {
	entry, found := c.lru.Get(id)
	if !found {
		metrics.MapCacheMisses.Inc()
		return nil, false
	}

	// Check version - auto-invalidate if mismatch
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(id)
		metrics.MapCacheMisses.Inc()
		return nil, false
	}

	metrics.MapCacheHits.Inc()
	return entry.Map.Clone(), true
}

// Set stores a deep copy of the map with the current schema version.
// Copying on both sides keeps cached entries isolated from callers that
// mutate placements, such as populate passes.
func (c *mapCache) Set(id string, m *domain.MapDefinition) {
	c.lru.Add(id, &cachedMapEntry{
		Version:  CacheSchemaVersion,
		Map:      m.Clone(),
		CachedAt: time.Now(),
	})
}

// Invalidate removes a map from the cache.
func (c *mapCache) Invalidate(id string) {
	c.lru.Remove(id)
}

// Clear removes all entries from the cache.
func (c *mapCache) Clear() {
	c.lru.Purge()
}
