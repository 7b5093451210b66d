package render_test

import (
	"testing"
	"time"

	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/coffeelab/coffeelab/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderersColumns(t *testing.T) {
	uu := map[string]model1.Renderer{
		"order":   &render.Order{},
		"bill":    &render.Bill{},
		"product": &render.Product{},
		"alert":   &render.StockAlert{},
	}

	for k := range uu {
		r := uu[k]
		t.Run(k, func(t *testing.T) {
			require.NoError(t, r.Columns().Validate())
			assert.NotNil(t, r.ColorerFunc())
		})
	}
}

func TestOrderCells(t *testing.T) {
	rows := model1.Rows{
		{
			"_id":          "o1",
			"orderNumber":  "ORD-001",
			"customerName": "Alice",
			"items": []any{
				map[string]any{"productName": "Latte", "quantity": 1.0, "price": 3.5},
				map[string]any{"productName": "Croissant", "quantity": 2.0, "price": 1.2},
			},
			"totalAmount":   5.9,
			"status":        "preparing",
			"estimatedTime": 7.0,
			"orderDate":     "2024-03-01T09:30:00Z",
		},
	}
	tv, err := model1.NewTabularView((&render.Order{}).Columns(), rows, model1.WithFormatter(render.NewFormatter(time.UTC)))
	require.NoError(t, err)

	v := tv.View()
	require.Len(t, v.Cells, 1)
	assert.Equal(t, []string{"ORD-001", "Alice", "Latte +1", "5,90 €", "En Préparation", "7 min", "01/03/2024 09:30"}, v.Cells[0])

	tv.SetSearchTerm("prep")
	assert.Equal(t, 1, tv.View().TotalMatching)
}

func TestProductCells(t *testing.T) {
	row := model1.Row{
		"productId":    "P-1",
		"name":         "Arabica",
		"category":     "coffee",
		"currentStock": 3.0,
		"minStock":     5.0,
		"maxStock":     50.0,
		"unit":         "kg",
		"unitPrice":    18.0,
		"status":       "low_stock",
	}
	tv, err := model1.NewTabularView((&render.Product{}).Columns(), model1.Rows{row}, model1.WithFormatter(render.NewFormatter(time.UTC)))
	require.NoError(t, err)

	assert.Equal(t, "Arabica", tv.CellText(row, "productName"))
	assert.Equal(t, "Café", tv.CellText(row, "category"))
	assert.Equal(t, "3 kg", tv.CellText(row, "currentStock"))
	assert.Equal(t, "LOW 6%", tv.CellText(row, "level"))
	assert.Equal(t, "18,00 €", tv.CellText(row, "unitPrice"))
	assert.Equal(t, "-", tv.CellText(row, "supplier"))
	assert.Equal(t, "Stock Faible", tv.CellText(row, "status"))
}

func TestStatusColorer(t *testing.T) {
	f := (&render.Order{}).ColorerFunc()

	uu := map[string]struct {
		re model1.RowEvent
		e  any
	}{
		"pending": {re: model1.RowEvent{Kind: model1.EventUnchanged, Row: model1.Row{"status": "pending"}}, e: model1.PendingColor},
		"ready":   {re: model1.RowEvent{Kind: model1.EventUnchanged, Row: model1.Row{"status": "ready"}}, e: model1.CompletedColor},
		"added":   {re: model1.RowEvent{Kind: model1.EventAdd, Row: model1.Row{"status": "ready"}}, e: model1.AddColor},
		"unknown": {re: model1.RowEvent{Kind: model1.EventUnchanged, Row: model1.Row{}}, e: model1.StdColor},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, f(nil, u.re))
		})
	}

	bill := (&render.Bill{}).ColorerFunc()
	assert.Equal(t, model1.KillColor, bill(nil, model1.RowEvent{Row: model1.Row{"paymentStatus": "refunded"}}))
}
