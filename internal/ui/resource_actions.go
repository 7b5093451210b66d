// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package ui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/coffeelab/coffeelab/internal/client"
	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/coffeelab/coffeelab/internal/render"
	"github.com/derailed/tcell/v2"
)

// Dialog field labels.
const (
	FieldCashier   = "Cashier"
	FieldMethod    = "Method"
	FieldAmount    = "Amount"
	FieldQuantity  = "Quantity"
	FieldOperation = "Operation"
	FieldStatus    = "Status"
)

// DefaultCashier signs bills issued from the terminal.
const DefaultCashier = "coffeelab"

func init() {
	RegisterActions(&dao.OrderRID, []ResourceAction{
		{
			Key:         KeyA,
			Name:        "Advance",
			Description: "Advance Status",
			Enabled: func(r model1.Row) bool {
				_, ok := dao.NextOrderStatus(r.String("status"))
				return ok
			},
			Handler: advanceOrder,
		},
		{
			Key:         KeyShiftS,
			Name:        "Status",
			Description: "Set Status",
			Inputs: func(r model1.Row) []InputField {
				return []InputField{{Label: FieldStatus, Value: r.String("status"), Options: client.OrderStatuses}}
			},
			Validate: func(in map[string]string) error {
				if !slices.Contains(client.OrderStatuses, in[FieldStatus]) {
					return fmt.Errorf("unknown status %q", in[FieldStatus])
				}
				return nil
			},
			Handler: setOrderStatus,
		},
		{
			Key:         KeyB,
			Name:        "Bill",
			Description: "Issue Bill",
			Inputs: func(model1.Row) []InputField {
				return []InputField{{Label: FieldCashier, Value: DefaultCashier}}
			},
			Handler: issueBill,
		},
		deleteAction("Delete", "Delete Order"),
	})

	RegisterActions(&dao.BillRID, []ResourceAction{
		{
			Key:         KeyP,
			Name:        "Pay",
			Description: "Record Payment",
			Enabled:     func(r model1.Row) bool { return r.String("paymentStatus") == "pending" },
			Inputs: func(r model1.Row) []InputField {
				return []InputField{{Label: FieldMethod, Value: r.String("paymentMethod"), Options: client.PaymentMethods}}
			},
			Handler: payBill,
		},
		{
			Key:         KeyShiftR,
			Name:        "Refund",
			Description: "Refund",
			Dangerous:   true,
			Enabled:     func(r model1.Row) bool { return r.String("paymentStatus") == "paid" },
			Handler:     refundBill,
		},
		{
			Key:         KeyShiftD,
			Name:        "Discount",
			Description: "Apply Discount",
			Inputs: func(r model1.Row) []InputField {
				return []InputField{{Label: FieldAmount, Value: r.String("discountAmount")}}
			},
			Validate: func(in map[string]string) error {
				_, err := ParseAmount(in[FieldAmount])
				return err
			},
			Handler: discountBill,
		},
		deleteAction("Delete", "Delete Bill"),
	})

	RegisterActions(&dao.ProductRID, []ResourceAction{
		{
			Key:         KeyE,
			Name:        "Adjust",
			Description: "Adjust Stock",
			Inputs: func(model1.Row) []InputField {
				return []InputField{
					{Label: FieldQuantity},
					{Label: FieldOperation, Value: "add", Options: client.QuantityOps},
				}
			},
			Validate: func(in map[string]string) error {
				_, err := ParseAmount(in[FieldQuantity])
				return err
			},
			Handler: adjustStock,
		},
		deleteAction("Delete", "Delete Product"),
	})
}

func deleteAction(name, desc string) ResourceAction {
	return ResourceAction{
		Key:         tcell.KeyCtrlD,
		Name:        name,
		Description: desc,
		Dangerous:   true,
		Handler: func(ctx context.Context, a dao.Accessor, r model1.Row, _ map[string]string) (string, error) {
			n, ok := a.(dao.Nuker)
			if !ok {
				return "", fmt.Errorf("%s does not support deletion", a.ResourceID())
			}
			if err := n.Delete(ctx, r.ID()); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s deleted", RowLabel(r)), nil
		},
	}
}

func advanceOrder(ctx context.Context, a dao.Accessor, r model1.Row, _ map[string]string) (string, error) {
	adv, ok := a.(dao.Advancer)
	if !ok {
		return "", errors.New("orders cannot be advanced")
	}
	next, err := adv.Advance(ctx, r.ID())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s is now %s", RowLabel(r), render.TranslateStatus(next)), nil
}

func setOrderStatus(ctx context.Context, a dao.Accessor, r model1.Row, in map[string]string) (string, error) {
	adv, ok := a.(dao.Advancer)
	if !ok {
		return "", errors.New("order status cannot be changed")
	}
	status := in[FieldStatus]
	if err := adv.SetStatus(ctx, r.ID(), status); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s is now %s", RowLabel(r), render.TranslateStatus(status)), nil
}

func issueBill(ctx context.Context, a dao.Accessor, r model1.Row, in map[string]string) (string, error) {
	b, ok := a.(dao.Biller)
	if !ok {
		return "", errors.New("orders cannot be billed")
	}
	bill, err := b.IssueBill(ctx, r.ID(), in[FieldCashier])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Bill %s issued for %s", RowLabel(bill), RowLabel(r)), nil
}

func payBill(ctx context.Context, a dao.Accessor, r model1.Row, in map[string]string) (string, error) {
	p, ok := a.(dao.Payer)
	if !ok {
		return "", errors.New("bills cannot be paid")
	}
	method := in[FieldMethod]
	if err := p.Pay(ctx, r.ID(), method); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s paid by %s", RowLabel(r), render.TranslatePaymentMethod(method)), nil
}

func refundBill(ctx context.Context, a dao.Accessor, r model1.Row, _ map[string]string) (string, error) {
	p, ok := a.(dao.Payer)
	if !ok {
		return "", errors.New("bills cannot be refunded")
	}
	if err := p.Refund(ctx, r.ID()); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s refunded", RowLabel(r)), nil
}

func discountBill(ctx context.Context, a dao.Accessor, r model1.Row, in map[string]string) (string, error) {
	p, ok := a.(dao.Payer)
	if !ok {
		return "", errors.New("bills cannot be discounted")
	}
	amount, err := ParseAmount(in[FieldAmount])
	if err != nil {
		return "", err
	}
	if err := p.ApplyDiscount(ctx, r.ID(), amount); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s discounted by %s", RowLabel(r), render.FormatPrice(amount)), nil
}

func adjustStock(ctx context.Context, a dao.Accessor, r model1.Row, in map[string]string) (string, error) {
	rs, ok := a.(dao.Restocker)
	if !ok {
		return "", errors.New("stock cannot be adjusted")
	}
	qty, err := ParseAmount(in[FieldQuantity])
	if err != nil {
		return "", err
	}
	op := in[FieldOperation]
	if err := rs.AdjustQuantity(ctx, r.ID(), qty, op); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s stock %s %s", RowLabel(r), op, render.FormatQuantity(qty, r.String("unit"))), nil
}

// ParseAmount reads a non negative decimal, accepting a comma separator.
func ParseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, errors.New("a value is required")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if f < 0 {
		return 0, errors.New("value must not be negative")
	}
	return f, nil
}
