package render

import (
	"time"

	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/gdamore/tcell/v2"
)

// Base provides a base renderer implementation
type Base struct{}

// ColorerFunc returns the status colorer
func (*Base) ColorerFunc() model1.ColorerFunc {
	return StatusColorer("status")
}

// StatusColorer colors rows by the value of a status field. Freshly added or
// updated rows keep their change color.
func StatusColorer(field string) model1.ColorerFunc {
	return func(cols model1.Columns, re model1.RowEvent) tcell.Color {
		if re.Kind == model1.EventAdd || re.Kind == model1.EventUpdate {
			return model1.DefaultColorer(cols, re)
		}

		switch re.Row.String(field) {
		case StatusPending:
			return model1.PendingColor
		case StatusPreparing:
			return model1.ModColor
		case StatusReady, StatusPaid, StatusAvailable:
			return model1.CompletedColor
		case StatusCompleted, StatusRefunded:
			return model1.KillColor
		case StatusLowStock:
			return model1.ModColor
		case StatusOutOfStock, StatusExpired:
			return model1.ErrColor
		default:
			return model1.DefaultColorer(cols, re)
		}
	}
}

// Formatter renders prices, dates and statuses for display.
type Formatter struct {
	Location *time.Location
}

// NewFormatter returns a formatter for the given location, local time when nil.
func NewFormatter(loc *time.Location) Formatter {
	if loc == nil {
		loc = time.Local
	}
	return Formatter{Location: loc}
}

// Price implements model1.Formatter.
func (f Formatter) Price(v any) string {
	return FormatPrice(v)
}

// Date implements model1.Formatter.
func (f Formatter) Date(v any) string {
	return FormatDate(v, f.Location)
}

// Status implements model1.Formatter.
func (f Formatter) Status(v any) string {
	return TranslateStatus(model1.Stringify(v))
}
