package dao

import (
	"context"

	"github.com/coffeelab/coffeelab/internal/client"
	"github.com/coffeelab/coffeelab/internal/model1"
)

// stockPageLimit is the largest page the stock endpoint serves.
const stockPageLimit = 100

func init() {
	RegisterAccessor(&ProductRID, func() Accessor { return new(Product) })
}

// Product is the DAO for stock items.
type Product struct {
	Resource
}

// List returns every product, walking the server pages.
func (p *Product) List(ctx context.Context) (model1.Rows, error) {
	key := p.cacheKey("")
	return p.load(key, func() (model1.Rows, error) {
		var all model1.Rows
		for page := 1; ; page++ {
			rows, env, err := p.fetchRows(ctx, key, func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
				return c.Stock(ctx, client.StockFilter{Page: page, Limit: stockPageLimit})
			})
			if err != nil {
				return nil, err
			}
			all = append(all, rows...)
			if env.Pagination == nil || len(rows) == 0 || len(all) >= env.Pagination.Total {
				return all, nil
			}
		}
	})
}

// Get retrieves a single product by id.
func (p *Product) Get(ctx context.Context, id string) (model1.Row, error) {
	return p.get(ctx, id, func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.Product(ctx, id)
	})
}

// ToJSON returns the product document.
func (p *Product) ToJSON(ctx context.Context, id string) (string, error) {
	return p.Resource.ToJSON(ctx, id, p)
}

// Delete removes a product.
func (p *Product) Delete(ctx context.Context, id string) error {
	_, err := p.mutate(ctx, "delete product", func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.DeleteProduct(ctx, id)
	})
	return err
}

// AdjustQuantity changes the stock level of a product.
func (p *Product) AdjustQuantity(ctx context.Context, id string, qty float64, op string) error {
	_, err := p.mutate(ctx, "adjust stock", func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.UpdateQuantity(ctx, id, qty, op)
	})
	return err
}

// Update patches product fields.
func (p *Product) Update(ctx context.Context, id string, fields map[string]any) error {
	_, err := p.mutate(ctx, "update product", func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
		return c.UpdateProduct(ctx, id, fields)
	})
	return err
}
