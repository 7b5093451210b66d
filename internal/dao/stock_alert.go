package dao

import (
	"context"
	"errors"
	"fmt"

	"github.com/coffeelab/coffeelab/internal/client"
	"github.com/coffeelab/coffeelab/internal/model1"
)

// DefaultExpiryWindow is the number of days ahead checked for expiring products.
const DefaultExpiryWindow = 7

func init() {
	RegisterAccessor(&StockAlertRID, func() Accessor { return new(StockAlert) })
}

// StockAlert is the DAO for low stock alerts.
type StockAlert struct {
	Resource
}

// List returns the products at or below their minimum stock.
func (s *StockAlert) List(ctx context.Context) (model1.Rows, error) {
	return s.list(ctx, "", func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.LowStockAlerts(ctx)
	})
}

// Expired returns the products past their expiry date.
func (s *StockAlert) Expired(ctx context.Context) (model1.Rows, error) {
	return s.list(ctx, "expired", func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.ExpiredProducts(ctx)
	})
}

// ExpiringSoon returns the products expiring within days.
func (s *StockAlert) ExpiringSoon(ctx context.Context, days int) (model1.Rows, error) {
	return s.list(ctx, fmt.Sprintf("expiring-%d", days), func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.ExpiringSoon(ctx, days)
	})
}

// Get retrieves the product behind an alert. Alerts may carry either the
// document id or the catalog id.
func (s *StockAlert) Get(ctx context.Context, id string) (model1.Row, error) {
	row, err := s.get(ctx, id, func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.Product(ctx, id)
	})
	if !errors.Is(err, client.ErrNotFound) {
		return row, err
	}
	return s.get(ctx, id, func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.ProductByProductID(ctx, id)
	})
}

// ToJSON returns the product document of an alert.
func (s *StockAlert) ToJSON(ctx context.Context, id string) (string, error) {
	return s.Resource.ToJSON(ctx, id, s)
}
