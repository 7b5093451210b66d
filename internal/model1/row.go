// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package model1

// IDFields lists, in order, the fields holding a row identity.
var IDFields = []string{"_id", "id", "productId"}

// Row represents one record keyed by field name.
type Row map[string]any

// ID returns the row identity or an empty string.
func (r Row) ID() string {
	for _, f := range IDFields {
		if v, ok := r[f]; ok && v != nil {
			if s := Stringify(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// Get returns a field value.
func (r Row) Get(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

// String returns a field stringified, empty when missing.
func (r Row) String(key string) string {
	return Stringify(r[key])
}

// Float returns a numeric field.
func (r Row) Float(key string) (float64, bool) {
	return toFloat(r[key])
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Rows represents a collection of rows.
type Rows []Row

// Clone returns a new slice holding the same rows.
func (r Rows) Clone() Rows {
	out := make(Rows, len(r))
	copy(out, r)
	return out
}

// Index maps row ids to rows, skipping rows without identity.
func (r Rows) Index() map[string]Row {
	idx := make(map[string]Row, len(r))
	for _, row := range r {
		if id := row.ID(); id != "" {
			idx[id] = row
		}
	}
	return idx
}
