package dao

import (
	"strings"
	"sync"
	"time"

	"github.com/coffeelab/coffeelab/internal/model1"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is the default time-to-live for cached listings.
const DefaultCacheTTL = 5 * time.Second

type cacheEntry struct {
	rows model1.Rows
	at   time.Time
}

// ResourceCache keeps recent listings so screens polling the same resource
// share one API call. Concurrent loads of a key are collapsed.
type ResourceCache struct {
	data  map[string]cacheEntry
	ttl   time.Duration
	gen   uint64
	group singleflight.Group
	mx    sync.RWMutex
}

// NewResourceCache creates a new ResourceCache with the specified TTL.
func NewResourceCache(ttl time.Duration) *ResourceCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResourceCache{
		data: make(map[string]cacheEntry),
		ttl:  ttl,
	}
}

// Get returns a copy of the fresh rows cached under key.
func (c *ResourceCache) Get(key string) (model1.Rows, bool) {
	c.mx.RLock()
	defer c.mx.RUnlock()

	e, ok := c.data[key]
	if !ok || time.Since(e.at) > c.ttl {
		return nil, false
	}

	return e.rows.Clone(), true
}

// Set caches rows under key.
func (c *ResourceCache) Set(key string, rows model1.Rows) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.data[key] = cacheEntry{rows: rows.Clone(), at: time.Now()}
}

// Load returns the cached rows for key or calls fn once for all concurrent
// callers. Rows loaded across an invalidation are returned but not cached.
func (c *ResourceCache) Load(key string, fn func() (model1.Rows, error)) (model1.Rows, error) {
	if rows, ok := c.Get(key); ok {
		return rows, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		c.mx.RLock()
		gen := c.gen
		c.mx.RUnlock()

		rows, err := fn()
		if err != nil {
			return nil, err
		}
		c.mx.Lock()
		if c.gen == gen {
			c.data[key] = cacheEntry{rows: rows.Clone(), at: time.Now()}
		}
		c.mx.Unlock()

		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(model1.Rows).Clone(), nil
}

// Invalidate removes a specific key from the cache.
func (c *ResourceCache) Invalidate(key string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.gen++
	delete(c.data, key)
}

// InvalidatePrefix removes every key starting with prefix.
func (c *ResourceCache) InvalidatePrefix(prefix string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.gen++
	for key := range c.data {
		if strings.HasPrefix(key, prefix) {
			delete(c.data, key)
		}
	}
}

// Clear removes all entries from the cache.
func (c *ResourceCache) Clear() {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.gen++
	c.data = make(map[string]cacheEntry)
}
