package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coffeelab/coffeelab/internal/client"
	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/coffeelab/coffeelab/internal/slogs"
	"go.uber.org/zap"
)

// ErrNotInitialized is returned when an accessor is used before Init.
var ErrNotInitialized = errors.New("accessor not initialized")

type fetchFn func(ctx context.Context, c *client.APIClient) (*client.Envelope, error)

// Resource is the base struct that all specific DAOs embed.
// It provides factory access, resource identification, and caching.
type Resource struct {
	Factory
	rid   *ResourceID
	cache *ResourceCache
	mx    sync.RWMutex
}

// Init initializes the Resource with factory and resource ID.
func (r *Resource) Init(f Factory, rid *ResourceID) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.Factory = f
	r.rid = rid
	if f != nil {
		r.cache = f.Cache()
	}
}

// ResourceID returns the resource identifier.
func (r *Resource) ResourceID() *ResourceID {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.rid
}

// SetCache overrides the listing cache.
func (r *Resource) SetCache(cache *ResourceCache) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.cache = cache
}

// ToJSON returns the indented JSON document of a resource.
func (r *Resource) ToJSON(ctx context.Context, id string, g Getter) (string, error) {
	row, err := g.Get(ctx, id)
	if err != nil {
		return "", err
	}
	bb, err := json.MarshalIndent(row, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", id, err)
	}
	return string(bb), nil
}

func (r *Resource) api() (*client.APIClient, error) {
	r.mx.RLock()
	defer r.mx.RUnlock()
	if r.Factory == nil || r.Factory.Client() == nil {
		return nil, ErrNotInitialized
	}
	return r.Factory.Client(), nil
}

func (r *Resource) getCache() *ResourceCache {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.cache
}

func (r *Resource) logger() *zap.Logger {
	r.mx.RLock()
	defer r.mx.RUnlock()
	if r.Factory == nil || r.Factory.Logger() == nil {
		return zap.NewNop()
	}
	return r.Factory.Logger()
}

// cacheKey generates a cache key from the resource ID and a variant.
func (r *Resource) cacheKey(variant string) string {
	r.mx.RLock()
	defer r.mx.RUnlock()
	if r.rid == nil {
		return variant
	}
	if variant == "" {
		return r.rid.String()
	}
	return r.rid.String() + ":" + variant
}

// list fetches rows, serving fresh cached listings when available.
func (r *Resource) list(ctx context.Context, variant string, fetch fetchFn) (model1.Rows, error) {
	key := r.cacheKey(variant)
	return r.load(key, func() (model1.Rows, error) {
		rows, _, err := r.fetchRows(ctx, key, fetch)
		return rows, err
	})
}

// fetchRows calls the API and decodes the rows, bypassing the cache.
func (r *Resource) fetchRows(ctx context.Context, key string, fetch fetchFn) (model1.Rows, *client.Envelope, error) {
	c, err := r.api()
	if err != nil {
		return nil, nil, err
	}
	t := time.Now()
	env, err := fetch(ctx, c)
	if err != nil {
		return nil, nil, client.WrapError(err, "list "+key)
	}
	rows, err := env.Rows()
	if err != nil {
		return nil, nil, client.WrapError(err, "list "+key)
	}
	r.logger().Debug("listed",
		zap.String(slogs.Resource, key),
		zap.Int(slogs.RowCount, len(rows)),
		zap.Duration(slogs.Elapsed, time.Since(t)),
	)

	return rows, env, nil
}

// load goes through the listing cache when there is one.
func (r *Resource) load(key string, fn func() (model1.Rows, error)) (model1.Rows, error) {
	if c := r.getCache(); c != nil {
		return c.Load(key, fn)
	}
	return fn()
}

// get fetches a single row.
func (r *Resource) get(ctx context.Context, id string, fetch fetchFn) (model1.Row, error) {
	c, err := r.api()
	if err != nil {
		return nil, err
	}
	env, err := fetch(ctx, c)
	if err != nil {
		return nil, client.WrapError(err, "get "+r.cacheKey(id))
	}
	row, err := env.Row()
	if err != nil {
		return nil, client.WrapError(err, "get "+r.cacheKey(id))
	}
	return row, nil
}

// mutate runs a write call then drops the cached listings of the group.
func (r *Resource) mutate(ctx context.Context, op string, fetch fetchFn) (*client.Envelope, error) {
	c, err := r.api()
	if err != nil {
		return nil, err
	}
	env, err := fetch(ctx, c)
	if err != nil {
		return nil, client.WrapError(err, op)
	}
	r.invalidate()
	r.logger().Info(op, zap.String(slogs.Resource, r.cacheKey("")))

	return env, nil
}

func (r *Resource) invalidate() {
	cache := r.getCache()
	if cache == nil {
		return
	}
	r.mx.RLock()
	rid := r.rid
	r.mx.RUnlock()
	if rid == nil {
		cache.Clear()
		return
	}
	cache.InvalidatePrefix(rid.Group + "/")
}
