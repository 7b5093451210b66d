package render

import (
	"strings"

	"github.com/coffeelab/coffeelab/internal/model1"
)

// Product renders stock items
type Product struct {
	Base
}

// Columns returns the product columns
func (*Product) Columns() model1.Columns {
	return model1.Columns{
		{Key: "productId", Label: "ID"},
		{Key: "productName", Label: "NAME", Render: productName},
		{Key: "category", Label: "CATEGORY", Render: category},
		{Key: "currentStock", Label: "STOCK", Render: stockQuantity},
		{Key: "minStock", Label: "MIN"},
		{Key: "level", Label: "LEVEL", NoSort: true, Render: stockLevel},
		{Key: "unitPrice", Label: "PRICE", Type: model1.ColumnCurrency},
		{Key: "supplier", Label: "SUPPLIER"},
		{Key: "expiryDate", Label: "EXPIRES", Type: model1.ColumnDate},
		{Key: "status", Label: "STATUS", Type: model1.ColumnStatus},
	}
}

// productName falls back to the name field used by older records.
func productName(v any, r model1.Row) string {
	if s := model1.Stringify(v); s != "" {
		return s
	}
	if s := r.String("name"); s != "" {
		return s
	}
	return MissingValue
}

func category(v any, _ model1.Row) string {
	if model1.IsBlank(v) {
		return MissingValue
	}
	return TranslateCategory(model1.Stringify(v))
}

func stockQuantity(v any, r model1.Row) string {
	if model1.IsBlank(v) {
		return MissingValue
	}
	return FormatQuantity(v, r.String("unit"))
}

func stockLevel(_ any, r model1.Row) string {
	cur, ok := r.Float("currentStock")
	if !ok {
		return MissingValue
	}
	min, _ := r.Float("minStock")
	max, _ := r.Float("maxStock")
	lvl := StockLevel(cur, min, max)
	if max <= 0 {
		return strings.ToUpper(lvl)
	}

	return strings.ToUpper(lvl) + " " + IntToStr(StockPercentage(cur, max)) + "%"
}
