package render_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/coffeelab/coffeelab/internal/render"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	uu := map[string]struct {
		v any
		e string
	}{
		"float":  {v: 3.5, e: "3,50 €"},
		"int":    {v: 4, e: "4,00 €"},
		"zero":   {v: 0.0, e: "0,00 €"},
		"number": {v: json.Number("12.3"), e: "12,30 €"},
		"nil":    {v: nil, e: "-"},
		"string": {v: "bozo", e: "-"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, render.FormatPrice(u.v))
		})
	}
}

func TestFormatDate(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	uu := map[string]struct {
		v any
		e string
	}{
		"time":      {v: at, e: "01/03/2024 09:30"},
		"ptr":       {v: &at, e: "01/03/2024 09:30"},
		"rfc3339":   {v: "2024-03-01T09:30:00Z", e: "01/03/2024 09:30"},
		"isoNaive":  {v: "2024-03-01T09:30:00.123456", e: "01/03/2024 09:30"},
		"http-date": {v: "Fri, 01 Mar 2024 09:30:00 GMT", e: "01/03/2024 09:30"},
		"nil":       {v: nil, e: "-"},
		"blank":     {v: " ", e: "-"},
		"garbage":   {v: "soon", e: "soon"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, render.FormatDate(u.v, time.UTC))
		})
	}
}

func TestFormatRelativeDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	uu := map[string]struct {
		ago time.Duration
		e   string
	}{
		"now":     {ago: 30 * time.Second, e: "À l'instant"},
		"future":  {ago: -time.Hour, e: "À l'instant"},
		"minutes": {ago: 5 * time.Minute, e: "Il y a 5 min"},
		"hours":   {ago: 3*time.Hour + 10*time.Minute, e: "Il y a 3h"},
		"day":     {ago: 26 * time.Hour, e: "Il y a 1 jour"},
		"days":    {ago: 50 * time.Hour, e: "Il y a 2 jours"},
		"weeks":   {ago: 8 * 24 * time.Hour, e: "02/03/2024 12:00"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, render.FormatRelativeDate(now.Add(-u.ago), now, time.UTC))
		})
	}

	assert.Equal(t, "-", render.FormatRelativeDate(nil, now, time.UTC))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "12 kg", render.FormatQuantity(12, "kg"))
	assert.Equal(t, "2.5 L", render.FormatQuantity(2.5, "L"))
	assert.Equal(t, "0 pcs", render.FormatQuantity(nil, "pcs"))
	assert.Equal(t, "7", render.FormatQuantity(7, ""))
}

func TestStockLevel(t *testing.T) {
	uu := map[string]struct {
		cur, min, max float64
		e             string
	}{
		"empty":    {cur: 0, min: 5, max: 100, e: render.LevelEmpty},
		"negative": {cur: -2, min: 5, max: 100, e: render.LevelEmpty},
		"low":      {cur: 5, min: 5, max: 100, e: render.LevelLow},
		"medium":   {cur: 30, min: 5, max: 100, e: render.LevelMedium},
		"half":     {cur: 50, min: 5, max: 100, e: render.LevelHigh},
		"no-max":   {cur: 30, min: 5, max: 0, e: render.LevelMedium},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, render.StockLevel(u.cur, u.min, u.max))
		})
	}

	assert.Equal(t, 0, render.StockPercentage(10, 0))
	assert.Equal(t, 33, render.StockPercentage(1, 3))
	assert.Equal(t, 67, render.StockPercentage(2, 3))
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, "En Préparation", render.TranslateStatus("preparing"))
	assert.Equal(t, "Rupture", render.TranslateStatus("out_of_stock"))
	assert.Equal(t, "cancelled", render.TranslateStatus("cancelled"))
	assert.Equal(t, "Pâtisserie", render.TranslateCategory("pastry"))
	assert.Equal(t, "tea", render.TranslateCategory("tea"))
	assert.Equal(t, "Chèque", render.TranslatePaymentMethod("check"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Pâtis…", render.Truncate("Pâtisserie", 6))
	assert.Equal(t, "Café", render.Truncate("Café", 6))
}
