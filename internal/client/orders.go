package client

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
)

// OrderStatuses lists the valid order states, in service order.
var OrderStatuses = []string{"pending", "preparing", "ready", "completed"}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	Status string
	Limit  int
}

func (f OrderFilter) values() url.Values {
	vv := url.Values{}
	if f.Status != "" {
		vv.Set("status", f.Status)
	}
	if f.Limit > 0 {
		vv.Set("limit", strconv.Itoa(f.Limit))
	}
	return vv
}

// OrderItem is one line of a new order.
type OrderItem struct {
	ProductName    string   `json:"productName"`
	Quantity       int      `json:"quantity"`
	Price          float64  `json:"price"`
	Customizations []string `json:"customizations,omitempty"`
}

// NewOrder is the payload of an order creation.
type NewOrder struct {
	CustomerName string      `json:"customerName"`
	Items        []OrderItem `json:"items"`
	Notes        string      `json:"notes,omitempty"`
}

// Validate checks the order before it is sent.
func (o NewOrder) Validate() error {
	if o.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: an order needs at least one item", ErrInvalidInput)
	}
	for i, it := range o.Items {
		if it.ProductName == "" || it.Quantity < 1 || it.Price < 0 {
			return fmt.Errorf("%w: items[%d] is invalid", ErrInvalidInput, i)
		}
	}
	return nil
}

// Orders lists orders.
func (c *APIClient) Orders(ctx context.Context, f OrderFilter) (*Envelope, error) {
	return c.Get(ctx, "/orders", f.values())
}

// Order fetches an order by id.
func (c *APIClient) Order(ctx context.Context, id string) (*Envelope, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidInput)
	}
	return c.Get(ctx, "/orders/"+url.PathEscape(id), nil)
}

// OrderByNumber fetches an order by its order number.
func (c *APIClient) OrderByNumber(ctx context.Context, number string) (*Envelope, error) {
	if number == "" {
		return nil, fmt.Errorf("%w: order number is required", ErrInvalidInput)
	}
	return c.Get(ctx, "/orders/number/"+url.PathEscape(number), nil)
}

// CreateOrder creates an order.
func (c *APIClient) CreateOrder(ctx context.Context, o NewOrder) (*Envelope, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return c.Post(ctx, "/orders", o)
}

// UpdateOrderStatus moves an order to the given state.
func (c *APIClient) UpdateOrderStatus(ctx context.Context, id, status string) (*Envelope, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidInput)
	}
	if !slices.Contains(OrderStatuses, status) {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, status)
	}
	return c.Put(ctx, "/orders/"+url.PathEscape(id)+"/status", map[string]string{"status": status})
}

// DeleteOrder deletes an order.
func (c *APIClient) DeleteOrder(ctx context.Context, id string) (*Envelope, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidInput)
	}
	return c.Delete(ctx, "/orders/"+url.PathEscape(id))
}

// OrderStats returns order counters by state.
func (c *APIClient) OrderStats(ctx context.Context) (*Envelope, error) {
	return c.Get(ctx, "/orders/stats", nil)
}
