package render

import (
	"fmt"

	"github.com/coffeelab/coffeelab/internal/model1"
)

// Order renders coffee orders
type Order struct {
	Base
}

// Columns returns the order columns
func (*Order) Columns() model1.Columns {
	return model1.Columns{
		{Key: "orderNumber", Label: "ORDER"},
		{Key: "customerName", Label: "CUSTOMER"},
		{Key: "items", Label: "ITEMS", Render: itemsSummary},
		{Key: "totalAmount", Label: "TOTAL", Type: model1.ColumnCurrency},
		{Key: "status", Label: "STATUS", Type: model1.ColumnStatus},
		{Key: "estimatedTime", Label: "ETA", Render: minutes},
		{Key: "orderDate", Label: "DATE", Type: model1.ColumnDate},
	}
}

// itemsSummary renders the line count and first product of an item list.
func itemsSummary(v any, _ model1.Row) string {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return MissingValue
	}

	var first string
	if m, ok := items[0].(map[string]any); ok {
		first = model1.Row(m).String("productName")
	}
	switch {
	case first == "":
		return fmt.Sprintf("%d", len(items))
	case len(items) == 1:
		return first
	default:
		return fmt.Sprintf("%s +%d", first, len(items)-1)
	}
}

func minutes(v any, _ model1.Row) string {
	f, ok := ToFloat(v)
	if !ok {
		return MissingValue
	}
	return fmt.Sprintf("%.0f min", f)
}
