// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package dao

import (
	"time"

	"github.com/coffeelab/coffeelab/internal/client"
	"go.uber.org/zap"
)

// APIFactory implements the Factory interface using an APIClient.
type APIFactory struct {
	client *client.APIClient
	cache  *ResourceCache
	log    *zap.Logger
}

// NewFactory creates a new APIFactory with the given client.
func NewFactory(c *client.APIClient, ttl time.Duration, log *zap.Logger) *APIFactory {
	if log == nil {
		log = zap.NewNop()
	}
	return &APIFactory{
		client: c,
		cache:  NewResourceCache(ttl),
		log:    log.Named("dao"),
	}
}

// Client returns the API client.
func (f *APIFactory) Client() *client.APIClient {
	return f.client
}

// Cache returns the shared listing cache.
func (f *APIFactory) Cache() *ResourceCache {
	return f.cache
}

// Logger returns the data access logger.
func (f *APIFactory) Logger() *zap.Logger {
	return f.log
}
