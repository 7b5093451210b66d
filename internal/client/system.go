package client

import (
	"context"
	"time"
)

const infoTTL = time.Minute

// Health probes the API.
func (c *APIClient) Health(ctx context.Context) (*Envelope, error) {
	return c.Get(ctx, "/health", nil)
}

// Info returns the API description. Responses are cached.
func (c *APIClient) Info(ctx context.Context) (*Envelope, error) {
	return c.GetCached(ctx, "/info", nil, infoTTL)
}
