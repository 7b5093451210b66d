package client

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
)

var (
	// PaymentStatuses lists the valid bill payment states.
	PaymentStatuses = []string{"pending", "paid", "refunded"}

	// PaymentMethods lists the accepted payment methods.
	PaymentMethods = []string{"cash", "card", "mobile", "check"}
)

// BillFilter narrows a bill listing.
type BillFilter struct {
	PaymentStatus string
	Limit         int
}

func (f BillFilter) values() url.Values {
	vv := url.Values{}
	if f.PaymentStatus != "" {
		vv.Set("paymentStatus", f.PaymentStatus)
	}
	if f.Limit > 0 {
		vv.Set("limit", strconv.Itoa(f.Limit))
	}
	return vv
}

// Bills lists bills.
func (c *APIClient) Bills(ctx context.Context, f BillFilter) (*Envelope, error) {
	return c.Get(ctx, "/bills", f.values())
}

// Bill fetches a bill by id.
func (c *APIClient) Bill(ctx context.Context, id string) (*Envelope, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: bill id is required", ErrInvalidInput)
	}
	return c.Get(ctx, "/bills/"+url.PathEscape(id), nil)
}

// BillByNumber fetches a bill by its bill number.
func (c *APIClient) BillByNumber(ctx context.Context, number string) (*Envelope, error) {
	if number == "" {
		return nil, fmt.Errorf("%w: bill number is required", ErrInvalidInput)
	}
	return c.Get(ctx, "/bills/number/"+url.PathEscape(number), nil)
}

// BillForOrder fetches the bill issued for an order.
func (c *APIClient) BillForOrder(ctx context.Context, orderID string) (*Envelope, error) {
	if orderID == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidInput)
	}
	return c.Get(ctx, "/bills/order/"+url.PathEscape(orderID), nil)
}

// BillFromOrder issues a bill for an order.
func (c *APIClient) BillFromOrder(ctx context.Context, orderID, cashier string) (*Envelope, error) {
	if orderID == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidInput)
	}
	body := map[string]string{}
	if cashier != "" {
		body["cashier"] = cashier
	}
	return c.Post(ctx, "/bills/from-order/"+url.PathEscape(orderID), body)
}

// UpdatePayment records the payment state of a bill. An empty method keeps the current one.
func (c *APIClient) UpdatePayment(ctx context.Context, id, status, method string) (*Envelope, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: bill id is required", ErrInvalidInput)
	}
	if !slices.Contains(PaymentStatuses, status) {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, status)
	}
	body := map[string]string{"paymentStatus": status}
	if method != "" {
		if !slices.Contains(PaymentMethods, method) {
			return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, method)
		}
		body["paymentMethod"] = method
	}
	return c.Put(ctx, "/bills/"+url.PathEscape(id)+"/payment", body)
}

// ApplyDiscount sets the discount amount of a bill.
func (c *APIClient) ApplyDiscount(ctx context.Context, id string, amount float64) (*Envelope, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: bill id is required", ErrInvalidInput)
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: discount must not be negative", ErrInvalidInput)
	}
	return c.Put(ctx, "/bills/"+url.PathEscape(id)+"/discount", map[string]float64{"discountAmount": amount})
}

// DeleteBill deletes a bill.
func (c *APIClient) DeleteBill(ctx context.Context, id string) (*Envelope, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: bill id is required", ErrInvalidInput)
	}
	return c.Delete(ctx, "/bills/"+url.PathEscape(id))
}

// BillStats returns revenue and payment counters.
func (c *APIClient) BillStats(ctx context.Context) (*Envelope, error) {
	return c.Get(ctx, "/bills/stats", nil)
}
