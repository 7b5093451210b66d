package dao

import (
	"context"
	"fmt"
	"slices"

	"github.com/coffeelab/coffeelab/internal/client"
	"github.com/coffeelab/coffeelab/internal/model1"
)

func init() {
	RegisterAccessor(&OrderRID, func() Accessor { return new(Order) })
}

// Order is the DAO for coffee orders.
type Order struct {
	Resource
}

// List returns all orders.
func (o *Order) List(ctx context.Context) (model1.Rows, error) {
	return o.list(ctx, "", func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.Orders(ctx, client.OrderFilter{})
	})
}

// Recent returns the latest n orders.
func (o *Order) Recent(ctx context.Context, n int) (model1.Rows, error) {
	return o.list(ctx, fmt.Sprintf("recent-%d", n), func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.Orders(ctx, client.OrderFilter{Limit: n})
	})
}

// Get retrieves a single order by id.
func (o *Order) Get(ctx context.Context, id string) (model1.Row, error) {
	return o.get(ctx, id, func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.Order(ctx, id)
	})
}

// ToJSON returns the order document.
func (o *Order) ToJSON(ctx context.Context, id string) (string, error) {
	return o.Resource.ToJSON(ctx, id, o)
}

// Delete removes an order.
func (o *Order) Delete(ctx context.Context, id string) error {
	_, err := o.mutate(ctx, "delete order", func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.DeleteOrder(ctx, id)
	})
	return err
}

// Advance moves an order to its next service state and returns that state.
func (o *Order) Advance(ctx context.Context, id string) (string, error) {
	row, err := o.Get(ctx, id)
	if err != nil {
		return "", err
	}
	cur := row.String("status")
	next, ok := NextOrderStatus(cur)
	if !ok {
		return "", fmt.Errorf("%w: order %s cannot leave state %q", client.ErrInvalidInput, id, cur)
	}
	_, err = o.mutate(ctx, "advance order", func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.UpdateOrderStatus(ctx, id, next)
	})
	if err != nil {
		return "", err
	}

	return next, nil
}

// SetStatus moves an order to the given state.
func (o *Order) SetStatus(ctx context.Context, id, status string) error {
	_, err := o.mutate(ctx, "update order status", func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.UpdateOrderStatus(ctx, id, status)
	})
	return err
}

// IssueBill creates the bill of an order.
func (o *Order) IssueBill(ctx context.Context, orderID, cashier string) (model1.Row, error) {
	env, err := o.mutate(ctx, "issue bill", func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.BillFromOrder(ctx, orderID, cashier)
	})
	if err != nil {
		return nil, err
	}
	return env.Row()
}

// NextOrderStatus returns the state following s, or false when s is final or unknown.
func NextOrderStatus(s string) (string, bool) {
	i := slices.Index(client.OrderStatuses, s)
	if i < 0 || i+1 >= len(client.OrderStatuses) {
		return "", false
	}
	return client.OrderStatuses[i+1], true
}
