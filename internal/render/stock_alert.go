package render

import (
	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/gdamore/tcell/v2"
)

// StockAlert renders low stock alerts
type StockAlert struct {
	Base
}

// Columns returns the alert columns
func (*StockAlert) Columns() model1.Columns {
	return model1.Columns{
		{Key: "productId", Label: "ID"},
		{Key: "productName", Label: "NAME", Render: productName},
		{Key: "category", Label: "CATEGORY", Render: category},
		{Key: "currentStock", Label: "STOCK", Render: stockQuantity},
		{Key: "minStock", Label: "MIN"},
		{Key: "status", Label: "STATUS", Type: model1.ColumnStatus},
	}
}

// ColorerFunc flags every alert by severity
func (*StockAlert) ColorerFunc() model1.ColorerFunc {
	return func(cols model1.Columns, re model1.RowEvent) tcell.Color {
		cur, _ := re.Row.Float("currentStock")
		if cur <= 0 {
			return model1.ErrColor
		}
		return model1.ModColor
	}
}
