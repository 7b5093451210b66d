package render

import (
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/coffeelab/coffeelab/internal/model1"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DateFormat is the absolute date layout, e.g. 01/03/2024 09:30.
const DateFormat = "02/01/2006 15:04"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	http.TimeFormat,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var printer = message.NewPrinter(language.French)

// FormatPrice renders an amount in euros, e.g. 3,50 €.
func FormatPrice(v any) string {
	f, ok := ToFloat(v)
	if !ok {
		return MissingValue
	}
	return printer.Sprint(number.Decimal(f, number.Scale(2))) + " €"
}

// ParseTime decodes a timestamp from the API. Strings are tried against
// RFC3339 and HTTP-date layouts.
func ParseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, l := range dateLayouts {
			if at, err := time.Parse(l, s); err == nil {
				return at, true
			}
		}
	}
	return time.Time{}, false
}

// FormatDate renders a timestamp as dd/mm/yyyy HH:MM in loc.
// Values that are not timestamps are returned as is.
func FormatDate(v any, loc *time.Location) string {
	if model1.IsBlank(v) {
		return MissingValue
	}
	at, ok := ParseTime(v)
	if !ok {
		return model1.Stringify(v)
	}
	if loc != nil {
		at = at.In(loc)
	}
	return at.Format(DateFormat)
}

// FormatRelativeDate renders how long ago v happened relative to now.
// Anything older than a week falls back to FormatDate.
func FormatRelativeDate(v any, now time.Time, loc *time.Location) string {
	if model1.IsBlank(v) {
		return MissingValue
	}
	at, ok := ParseTime(v)
	if !ok {
		return model1.Stringify(v)
	}

	d := now.Sub(at)
	mins, hours, days := int(d/time.Minute), int(d/time.Hour), int(d/(24*time.Hour))
	switch {
	case mins < 1:
		return "À l'instant"
	case mins < 60:
		return fmt.Sprintf("Il y a %d min", mins)
	case hours < 24:
		return fmt.Sprintf("Il y a %dh", hours)
	case days < 7:
		if days > 1 {
			return fmt.Sprintf("Il y a %d jours", days)
		}
		return fmt.Sprintf("Il y a %d jour", days)
	}

	return FormatDate(at, loc)
}

// FormatQuantity renders a quantity with its unit.
func FormatQuantity(q any, unit string) string {
	s := model1.Stringify(q)
	if s == "" {
		s = ZeroValue
	}
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// StockPercentage returns current over max as a rounded percentage.
func StockPercentage(current, max float64) int {
	if max == 0 {
		return 0
	}
	return int(math.Round(current / max * 100))
}

// StockLevel classifies a stock quantity against its thresholds.
func StockLevel(current, min, max float64) string {
	switch {
	case current <= 0:
		return LevelEmpty
	case current <= min:
		return LevelLow
	case StockPercentage(current, max) < 50:
		return LevelMedium
	}
	return LevelHigh
}

// ToFloat converts a numeric value decoded from the API.
func ToFloat(v any) (float64, bool) {
	return model1.Row{"v": v}.Float("v")
}
