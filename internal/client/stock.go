package client

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"time"
)

// QuantityOps lists the stock quantity operations.
var QuantityOps = []string{"add", "subtract", "set"}

const categoriesTTL = 5 * time.Minute

// StockFilter narrows a stock listing.
type StockFilter struct {
	Category string
	Status   string
	Search   string
	Page     int
	Limit    int
}

func (f StockFilter) values() url.Values {
	vv := url.Values{}
	if f.Category != "" {
		vv.Set("category", f.Category)
	}
	if f.Status != "" {
		vv.Set("status", f.Status)
	}
	if f.Search != "" {
		vv.Set("search", f.Search)
	}
	if f.Page > 0 {
		vv.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		vv.Set("limit", strconv.Itoa(f.Limit))
	}
	return vv
}

// Stock lists products.
func (c *APIClient) Stock(ctx context.Context, f StockFilter) (*Envelope, error) {
	return c.Get(ctx, "/stock", f.values())
}

// Product fetches a product by id.
func (c *APIClient) Product(ctx context.Context, id string) (*Envelope, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	return c.Get(ctx, "/stock/"+url.PathEscape(id), nil)
}

// ProductByProductID fetches a product by its catalog id.
func (c *APIClient) ProductByProductID(ctx context.Context, pid string) (*Envelope, error) {
	if pid == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	return c.Get(ctx, "/stock/product-id/"+url.PathEscape(pid), nil)
}

// CreateProduct adds a product to the stock.
func (c *APIClient) CreateProduct(ctx context.Context, product map[string]any) (*Envelope, error) {
	if len(product) == 0 {
		return nil, fmt.Errorf("%w: product payload is empty", ErrInvalidInput)
	}
	return c.Post(ctx, "/stock", product)
}

// UpdateQuantity adjusts the stock level of a product.
func (c *APIClient) UpdateQuantity(ctx context.Context, id string, qty float64, op string) (*Envelope, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	if op == "" {
		op = "add"
	}
	if !slices.Contains(QuantityOps, op) {
		return nil, fmt.Errorf("%w: unknown quantity operation %q", ErrInvalidInput, op)
	}
	if qty < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	return c.Put(ctx, "/stock/"+url.PathEscape(id)+"/quantity", map[string]any{"quantity": qty, "operation": op})
}

// UpdateProduct patches product fields.
func (c *APIClient) UpdateProduct(ctx context.Context, id string, fields map[string]any) (*Envelope, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	return c.Put(ctx, "/stock/"+url.PathEscape(id), fields)
}

// DeleteProduct removes a product.
func (c *APIClient) DeleteProduct(ctx context.Context, id string) (*Envelope, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	return c.Delete(ctx, "/stock/"+url.PathEscape(id))
}

// LowStockAlerts lists products at or below their minimum stock.
func (c *APIClient) LowStockAlerts(ctx context.Context) (*Envelope, error) {
	return c.Get(ctx, "/stock/alerts/low-stock", nil)
}

// ExpiredProducts lists products past their expiry date.
func (c *APIClient) ExpiredProducts(ctx context.Context) (*Envelope, error) {
	return c.Get(ctx, "/stock/alerts/expired", nil)
}

// ExpiringSoon lists products expiring within the given number of days.
func (c *APIClient) ExpiringSoon(ctx context.Context, days int) (*Envelope, error) {
	if days < 1 {
		days = 7
	}
	return c.Get(ctx, "/stock/alerts/expiring-soon", url.Values{"days": {strconv.Itoa(days)}})
}

// StockSummary returns the stock summary.
func (c *APIClient) StockSummary(ctx context.Context) (*Envelope, error) {
	return c.Get(ctx, "/stock/summary", nil)
}

// StockStats returns stock counters.
func (c *APIClient) StockStats(ctx context.Context) (*Envelope, error) {
	return c.Get(ctx, "/stock/stats", nil)
}

// Categories lists product categories. Responses are cached.
func (c *APIClient) Categories(ctx context.Context) ([]string, error) {
	env, err := c.GetCached(ctx, "/stock/categories", nil, categoriesTTL)
	if err != nil {
		return nil, err
	}
	return env.Strings(), nil
}
