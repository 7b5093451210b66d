package dao

import (
	"context"

	"github.com/coffeelab/coffeelab/internal/client"
	"github.com/coffeelab/coffeelab/internal/model1"
)

func init() {
	RegisterAccessor(&BillRID, func() Accessor { return new(Bill) })
}

// Bill is the DAO for bills.
type Bill struct {
	Resource
}

// List returns all bills.
func (b *Bill) List(ctx context.Context) (model1.Rows, error) {
	return b.list(ctx, "", func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.Bills(ctx, client.BillFilter{})
	})
}

// Get retrieves a single bill by id.
func (b *Bill) Get(ctx context.Context, id string) (model1.Row, error) {
	return b.get(ctx, id, func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.Bill(ctx, id)
	})
}

// ForOrder retrieves the bill issued for an order.
func (b *Bill) ForOrder(ctx context.Context, orderID string) (model1.Row, error) {
	return b.get(ctx, orderID, func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.BillForOrder(ctx, orderID)
	})
}

// ToJSON returns the bill document.
func (b *Bill) ToJSON(ctx context.Context, id string) (string, error) {
	return b.Resource.ToJSON(ctx, id, b)
}

// Delete removes a bill.
func (b *Bill) Delete(ctx context.Context, id string) error {
	_, err := b.mutate(ctx, "delete bill", func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.DeleteBill(ctx, id)
	})
	return err
}

// Pay marks a bill paid with the given method.
func (b *Bill) Pay(ctx context.Context, id, method string) error {
	_, err := b.mutate(ctx, "pay bill", func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.UpdatePayment(ctx, id, "paid", method)
	})
	return err
}

// Refund marks a bill refunded.
func (b *Bill) Refund(ctx context.Context, id string) error {
	_, err := b.mutate(ctx, "refund bill", func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.UpdatePayment(ctx, id, "refunded", "")
	})
	return err
}

// ApplyDiscount sets the discount of a bill.
func (b *Bill) ApplyDiscount(ctx context.Context, id string, amount float64) error {
	_, err := b.mutate(ctx, "discount bill", func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.ApplyDiscount(ctx, id, amount)
	})
	return err
}
