// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package model1

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fvbommel/sortorder"
)

// Stringify renders a raw value as text. nil yields an empty string.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return ""
		}
		return Stringify(*t)
	case fmt.Stringer:
		return t.String()
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// IsBlank returns true for nil or whitespace only values.
func IsBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case *time.Time:
		return t == nil
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Kind ranks used to order values of different types.
const (
	rankNil = iota
	rankBool
	rankNumber
	rankTime
	rankString
	rankOther
)

func rank(v any) int {
	switch t := v.(type) {
	case nil:
		return rankNil
	case bool:
		return rankBool
	case time.Time:
		return rankTime
	case *time.Time:
		if t == nil {
			return rankNil
		}
		return rankTime
	case string:
		return rankString
	}
	if _, ok := toFloat(v); ok {
		return rankNumber
	}
	return rankOther
}

// Compare orders two raw values: -1 when a sorts before b, 1 after, 0 on ties.
// nil sorts lowest. Values of different kinds are ordered by kind.
func Compare(a, b any, natural bool) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch ra {
	case rankNil:
		return 0
	case rankBool:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case rankNumber:
		x, _ := toFloat(a)
		y, _ := toFloat(b)
		// NaN sorts below every number and ties with NaN.
		return cmp.Compare(x, y)
	case rankTime:
		x, y := asTime(a), asTime(b)
		return x.Compare(y)
	}

	return cmpString(Stringify(a), Stringify(b), natural)
}

// Less returns true if a sorts strictly before b.
func Less(a, b any, natural bool) bool {
	return Compare(a, b, natural) < 0
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		return *t
	}
	return time.Time{}
}

func cmpString(a, b string, natural bool) int {
	if a == b {
		return 0
	}
	if natural {
		if sortorder.NaturalLess(a, b) {
			return -1
		}
		if sortorder.NaturalLess(b, a) {
			return 1
		}
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

// matches returns true if any column value of the row contains the lower-cased term.
func matches(cols Columns, r Row, term string) bool {
	for _, c := range cols {
		v, ok := r[c.Key]
		if !ok || v == nil {
			continue
		}
		if strings.Contains(strings.ToLower(Stringify(v)), term) {
			return true
		}
	}
	return false
}
