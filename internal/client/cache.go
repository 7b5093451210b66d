package client

import (
	"sync"
	"time"
)

// CacheEntry holds a cached response.
type CacheEntry struct {
	Value     *Envelope
	Timestamp time.Time
	RefreshAt time.Time
}

// CacheConfig tunes the response cache.
type CacheConfig struct {
	DefaultTTL time.Duration
	MaxEntries int
}

// ResponseCache keeps GET responses for reference data such as categories.
type ResponseCache struct {
	entries    map[string]*CacheEntry
	defaultTTL time.Duration
	maxEntries int
	mx         sync.RWMutex
}

func NewResponseCache(cfg *CacheConfig) *ResponseCache {
	defaultTTL, maxEntries := 30*time.Second, 100
	if cfg != nil {
		if cfg.DefaultTTL > 0 {
			defaultTTL = cfg.DefaultTTL
		}
		if cfg.MaxEntries > 0 {
			maxEntries = cfg.MaxEntries
		}
	}

	return &ResponseCache{
		entries:    make(map[string]*CacheEntry),
		defaultTTL: defaultTTL,
		maxEntries: maxEntries,
	}
}

func (c *ResponseCache) Get(key string) (*Envelope, bool) {
	c.mx.RLock()
	defer c.mx.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.RefreshAt) {
		return nil, false
	}

	return e.Value, true
}

func (c *ResponseCache) Set(key string, env *Envelope) {
	c.SetWithTTL(key, env, c.defaultTTL)
}

// SetWithTTL stores a response, evicting the oldest entry when full.
func (c *ResponseCache) SetWithTTL(key string, env *Envelope, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mx.Lock()
	defer c.mx.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		var (
			oldest string
			at     time.Time
		)
		for k, v := range c.entries {
			if oldest == "" || v.Timestamp.Before(at) {
				oldest, at = k, v.Timestamp
			}
		}
		delete(c.entries, oldest)
	}

	now := time.Now()
	c.entries[key] = &CacheEntry{Value: env, Timestamp: now, RefreshAt: now.Add(ttl)}
}

func (c *ResponseCache) Len() int {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return len(c.entries)
}

func (c *ResponseCache) Invalidate() {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.entries = make(map[string]*CacheEntry)
}
