package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coffeelab/coffeelab/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type call struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

func newServer(t *testing.T, status int, body string) (*client.APIClient, *[]call) {
	t.Helper()

	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		if bb, _ := io.ReadAll(r.Body); len(bb) > 0 {
			assert.NoError(t, json.Unmarshal(bb, &c.Body))
		}
		calls = append(calls, c)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	c, err := client.NewAPIClient(&client.ClientConfig{BaseURL: srv.URL + "/api/"}, zap.NewNop())
	require.NoError(t, err)

	return c, &calls
}

func TestNewAPIClient(t *testing.T) {
	_, err := client.NewAPIClient(nil, nil)
	assert.Error(t, err)

	c, err := client.NewAPIClient(&client.ClientConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, client.DefaultBaseURL, c.Config().BaseURL)
	assert.Equal(t, client.DefaultTimeout, c.Config().Timeout)

	_, err = client.NewAPIClient(&client.ClientConfig{BaseURL: "::nope"}, nil)
	assert.ErrorIs(t, err, client.ErrInvalidInput)
}

func TestOrders(t *testing.T) {
	c, calls := newServer(t, http.StatusOK, `{
		"success": true,
		"count": 2,
		"data": [
			{"_id": "a1", "orderNumber": "ORD-001", "totalAmount": 3.5, "status": "pending"},
			{"_id": "a2", "orderNumber": "ORD-002", "totalAmount": 8, "status": "ready"}
		]
	}`)

	env, err := c.Orders(context.Background(), client.OrderFilter{Status: "pending", Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, env.Count)

	rows, err := env.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a1", rows[0].ID())
	assert.Equal(t, 8.0, rows[1]["totalAmount"])

	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodGet, (*calls)[0].Method)
	assert.Equal(t, "/api/orders", (*calls)[0].Path)
	assert.Equal(t, "limit=5&status=pending", (*calls)[0].Query)
	assert.True(t, c.ConnectionOK())
}

func TestMutations(t *testing.T) {
	uu := map[string]struct {
		fn     func(context.Context, *client.APIClient) (*client.Envelope, error)
		method string
		path   string
		body   map[string]any
	}{
		"order-status": {
			fn: func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
				return c.UpdateOrderStatus(ctx, "a1", "ready")
			},
			method: http.MethodPut,
			path:   "/api/orders/a1/status",
			body:   map[string]any{"status": "ready"},
		},
		"create-order": {
			fn: func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
				return c.CreateOrder(ctx, client.NewOrder{
					CustomerName: "Alice",
					Items:        []client.OrderItem{{ProductName: "Latte", Quantity: 1, Price: 3.5}},
				})
			},
			method: http.MethodPost,
			path:   "/api/orders",
			body: map[string]any{
				"customerName": "Alice",
				"items":        []any{map[string]any{"productName": "Latte", "quantity": 1.0, "price": 3.5}},
			},
		},
		"bill-from-order": {
			fn: func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
				return c.BillFromOrder(ctx, "a1", "Bob")
			},
			method: http.MethodPost,
			path:   "/api/bills/from-order/a1",
			body:   map[string]any{"cashier": "Bob"},
		},
		"payment": {
			fn: func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
				return c.UpdatePayment(ctx, "b1", "paid", "card")
			},
			method: http.MethodPut,
			path:   "/api/bills/b1/payment",
			body:   map[string]any{"paymentStatus": "paid", "paymentMethod": "card"},
		},
		"discount": {
			fn: func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
				return c.ApplyDiscount(ctx, "b1", 1.5)
			},
			method: http.MethodPut,
			path:   "/api/bills/b1/discount",
			body:   map[string]any{"discountAmount": 1.5},
		},
		"quantity": {
			fn: func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
				return c.UpdateQuantity(ctx, "p1", 4, "")
			},
			method: http.MethodPut,
			path:   "/api/stock/p1/quantity",
			body:   map[string]any{"quantity": 4.0, "operation": "add"},
		},
		"delete-product": {
			fn: func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
				return c.DeleteProduct(ctx, "p/1")
			},
			method: http.MethodDelete,
			path:   "/api/stock/p/1",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			c, calls := newServer(t, http.StatusOK, `{"success": true, "message": "ok"}`)

			env, err := u.fn(context.Background(), c)
			require.NoError(t, err)
			assert.Equal(t, "ok", env.Message)

			require.Len(t, *calls, 1)
			got := (*calls)[0]
			assert.Equal(t, u.method, got.Method)
			assert.Equal(t, u.path, got.Path)
			assert.Equal(t, u.body, got.Body)
		})
	}
}

func TestQueries(t *testing.T) {
	uu := map[string]struct {
		fn    func(context.Context, *client.APIClient) (*client.Envelope, error)
		path  string
		query string
	}{
		"order-by-number": {
			fn: func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
				return c.OrderByNumber(ctx, "ORD-1")
			},
			path: "/api/orders/number/ORD-1",
		},
		"order-stats": {
			fn:   func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) { return c.OrderStats(ctx) },
			path: "/api/orders/stats",
		},
		"bill-for-order": {
			fn: func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
				return c.BillForOrder(ctx, "a1")
			},
			path: "/api/bills/order/a1",
		},
		"bill-stats": {
			fn:   func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) { return c.BillStats(ctx) },
			path: "/api/bills/stats",
		},
		"low-stock": {
			fn:   func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) { return c.LowStockAlerts(ctx) },
			path: "/api/stock/alerts/low-stock",
		},
		"expired": {
			fn: func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
				return c.ExpiredProducts(ctx)
			},
			path: "/api/stock/alerts/expired",
		},
		"expiring-default": {
			fn: func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) {
				return c.ExpiringSoon(ctx, 0)
			},
			path:  "/api/stock/alerts/expiring-soon",
			query: "days=7",
		},
		"summary": {
			fn:   func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) { return c.StockSummary(ctx) },
			path: "/api/stock/summary",
		},
		"stock-stats": {
			fn:   func(ctx context.Context, c *client.APIClient) (*client.Envelope, error) { return c.StockStats(ctx) },
			path: "/api/stock/stats",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			c, calls := newServer(t, http.StatusOK, `{"success": true, "data": {}}`)

			_, err := u.fn(context.Background(), c)
			require.NoError(t, err)
			require.Len(t, *calls, 1)
			got := (*calls)[0]
			assert.Equal(t, http.MethodGet, got.Method)
			assert.Equal(t, u.path, got.Path)
			assert.Equal(t, u.query, got.Query)
		})
	}
}

func TestInvalidInput(t *testing.T) {
	c, calls := newServer(t, http.StatusOK, `{"success": true}`)
	ctx := context.Background()

	_, err := c.UpdateOrderStatus(ctx, "a1", "cancelled")
	assert.ErrorIs(t, err, client.ErrInvalidInput)
	_, err = c.UpdatePayment(ctx, "b1", "paid", "bitcoin")
	assert.ErrorIs(t, err, client.ErrInvalidInput)
	_, err = c.ApplyDiscount(ctx, "b1", -1)
	assert.ErrorIs(t, err, client.ErrInvalidInput)
	_, err = c.UpdateQuantity(ctx, "p1", 1, "multiply")
	assert.ErrorIs(t, err, client.ErrInvalidInput)
	_, err = c.Order(ctx, "")
	assert.ErrorIs(t, err, client.ErrInvalidInput)
	_, err = c.CreateOrder(ctx, client.NewOrder{CustomerName: "Alice"})
	assert.ErrorIs(t, err, client.ErrInvalidInput)

	assert.Empty(t, *calls)
}

func TestAPIErrors(t *testing.T) {
	uu := map[string]struct {
		status   int
		body     string
		msg      string
		sentinel error
	}{
		"not-found": {
			status:   http.StatusNotFound,
			body:     `{"success": false, "error": "Commande non trouvée"}`,
			msg:      "Commande non trouvée",
			sentinel: client.ErrNotFound,
		},
		"bad-request": {
			status:   http.StatusBadRequest,
			body:     `{"success": false, "error": "Statut invalide"}`,
			msg:      "Statut invalide",
			sentinel: client.ErrInvalidInput,
		},
		"html": {
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			msg:    "Bad Gateway",
		},
		"success-false": {
			status: http.StatusOK,
			body:   `{"success": false, "message": "nope"}`,
			msg:    "nope",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			c, _ := newServer(t, u.status, u.body)

			_, err := c.Order(context.Background(), "a1")
			require.Error(t, err)

			var apiErr *client.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, u.status, apiErr.Status)
			assert.Equal(t, "/orders/a1", apiErr.Endpoint)
			assert.Equal(t, u.msg, apiErr.Message)
			if u.sentinel != nil {
				assert.ErrorIs(t, err, u.sentinel)
			}
		})
	}
}

func TestMalformedBody(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `not json`)

	_, err := c.Orders(context.Background(), client.OrderFilter{})
	assert.ErrorIs(t, err, client.ErrBadResponse)
}

func TestNoConnection(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := client.NewAPIClient(&client.ClientConfig{BaseURL: url, Timeout: time.Second}, nil)
	require.NoError(t, err)

	_, err = c.Orders(context.Background(), client.OrderFilter{})
	assert.ErrorIs(t, err, client.ErrNoConnection)
	assert.False(t, c.ConnectionOK())
	assert.False(t, c.CheckConnectivity(context.Background()))

	_, err = client.InitConnection(context.Background(), &client.ClientConfig{BaseURL: url}, nil)
	assert.ErrorIs(t, err, client.ErrNoConnection)
}

func TestCanceledContext(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{"success": true}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Health(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCategoriesCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, `{"success": true, "data": ["coffee", "pastry"]}`)
	}))
	defer srv.Close()

	c, err := client.NewAPIClient(&client.ClientConfig{BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	for range 3 {
		cats, err := c.Categories(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"coffee", "pastry"}, cats)
	}
	assert.Equal(t, int32(1), hits.Load())

	c.Reset()
	_, err = c.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestInfoBarePayload(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{"name": "Coffee Shop CRUD API", "version": "1.0.0"}`)

	env, err := c.Info(context.Background())
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, "1.0.0", env.Get("version").String())
	assert.Equal(t, "1.0.0", env.Root("version").String())
}
