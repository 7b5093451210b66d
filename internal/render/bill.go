package render

import "github.com/coffeelab/coffeelab/internal/model1"

// Bill renders bills
type Bill struct {
	Base
}

// Columns returns the bill columns
func (*Bill) Columns() model1.Columns {
	return model1.Columns{
		{Key: "billNumber", Label: "BILL"},
		{Key: "customerName", Label: "CUSTOMER"},
		{Key: "subtotal", Label: "SUBTOTAL", Type: model1.ColumnCurrency},
		{Key: "tax", Label: "TAX", Type: model1.ColumnCurrency},
		{Key: "discount", Label: "DISCOUNT", Type: model1.ColumnCurrency},
		{Key: "totalAmount", Label: "TOTAL", Type: model1.ColumnCurrency},
		{Key: "paymentMethod", Label: "PAYMENT", Render: paymentMethod},
		{Key: "paymentStatus", Label: "STATUS", Type: model1.ColumnStatus},
		{Key: "cashier", Label: "CASHIER"},
		{Key: "billDate", Label: "DATE", Type: model1.ColumnDate},
	}
}

// ColorerFunc colors bills by payment status
func (*Bill) ColorerFunc() model1.ColorerFunc {
	return StatusColorer("paymentStatus")
}

func paymentMethod(v any, _ model1.Row) string {
	if model1.IsBlank(v) {
		return MissingValue
	}
	return TranslatePaymentMethod(model1.Stringify(v))
}
