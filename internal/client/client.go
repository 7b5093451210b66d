package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the API root used when none is configured.
	DefaultBaseURL = "http://localhost:5000/api"

	// DefaultTimeout bounds a single API call.
	DefaultTimeout = 10 * time.Second

	maxBodySize = 10 << 20
)

// Connection represents a connection to the coffeelab API.
type Connection interface {
	Config() *ClientConfig
	ConnectionOK() bool
	CheckConnectivity(ctx context.Context) bool
	Get(ctx context.Context, endpoint string, params url.Values) (*Envelope, error)
	Post(ctx context.Context, endpoint string, body any) (*Envelope, error)
	Put(ctx context.Context, endpoint string, body any) (*Envelope, error)
	Delete(ctx context.Context, endpoint string) (*Envelope, error)
}

// ClientConfig tracks the API endpoint settings.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// APIClient talks to the coffeelab REST API.
type APIClient struct {
	config *ClientConfig
	http   *http.Client
	cache  *ResponseCache
	log    *zap.Logger
	connOK bool
	mx     sync.RWMutex
}

// NewAPIClient creates a new APIClient instance with the provided configuration.
func NewAPIClient(cfg *ClientConfig, log *zap.Logger) (*APIClient, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := ClientConfig{BaseURL: strings.TrimRight(cfg.BaseURL, "/"), Timeout: cfg.Timeout}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: base url %q: %w", ErrInvalidInput, c.BaseURL, err)
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}

	return &APIClient{
		config: &c,
		http:   &http.Client{Timeout: c.Timeout},
		cache:  NewResponseCache(nil),
		log:    log.Named("client"),
	}, nil
}

// InitConnection creates an APIClient and checks the API is reachable.
func InitConnection(ctx context.Context, cfg *ClientConfig, log *zap.Logger) (*APIClient, error) {
	c, err := NewAPIClient(cfg, log)
	if err != nil {
		return nil, err
	}
	if !c.CheckConnectivity(ctx) {
		return nil, ErrNoConnection
	}

	return c, nil
}

// Config returns the client configuration.
func (c *APIClient) Config() *ClientConfig {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.config
}

// ConnectionOK returns true if the last call reached the API.
func (c *APIClient) ConnectionOK() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.connOK
}

// CheckConnectivity verifies the API answers its health probe.
func (c *APIClient) CheckConnectivity(ctx context.Context) bool {
	_, err := c.Health(ctx)
	if err != nil {
		c.log.Warn("api health check failed", zap.Error(err))
		return false
	}
	return true
}

// Get issues a GET request.
func (c *APIClient) Get(ctx context.Context, endpoint string, params url.Values) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, endpoint, params, nil)
}

// GetCached issues a GET request, serving from the response cache while fresh.
func (c *APIClient) GetCached(ctx context.Context, endpoint string, params url.Values, ttl time.Duration) (*Envelope, error) {
	key := endpoint + "?" + params.Encode()
	if env, ok := c.cache.Get(key); ok {
		return env, nil
	}
	env, err := c.Get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	c.cache.SetWithTTL(key, env, ttl)

	return env, nil
}

// Post issues a POST request with a JSON body.
func (c *APIClient) Post(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, endpoint, nil, body)
}

// Put issues a PUT request with a JSON body.
func (c *APIClient) Put(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.do(ctx, http.MethodPut, endpoint, nil, body)
}

// Delete issues a DELETE request.
func (c *APIClient) Delete(ctx context.Context, endpoint string) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// Reset drops cached responses.
func (c *APIClient) Reset() {
	c.cache.Invalidate()
}

func (c *APIClient) do(ctx context.Context, method, endpoint string, params url.Values, body any) (*Envelope, error) {
	u := c.Config().BaseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var rd io.Reader
	if body != nil {
		bb, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding body: %w", ErrInvalidInput, err)
		}
		rd = bytes.NewReader(bb)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	t := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.setConn(false)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.log.Debug("api call failed", zap.String("method", method), zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrNoConnection, err)
	}
	defer resp.Body.Close()
	c.setConn(true)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrBadResponse, err)
	}
	c.log.Debug("api call",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(t)),
	)

	env, perr := ParseEnvelope(raw)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := APIError{Status: resp.StatusCode, Endpoint: endpoint, Message: http.StatusText(resp.StatusCode)}
		if perr == nil {
			apiErr.Message = firstOf(env.Error, env.Message, apiErr.Message)
		}
		return nil, &apiErr
	}
	if perr != nil {
		return nil, perr
	}
	if !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Endpoint: endpoint, Message: firstOf(env.Error, env.Message, "request failed")}
	}

	return env, nil
}

func (c *APIClient) setConn(ok bool) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.connOK = ok
}

func firstOf(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
