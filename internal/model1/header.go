// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package model1

import (
	"fmt"
	"strings"
)

// ColumnSpec describes one displayed column.
type ColumnSpec struct {
	Key    string
	Label  string
	NoSort bool
	Type   ColumnType
	Render RenderFunc
}

// Sortable returns true unless the column opted out of sorting.
func (c ColumnSpec) Sortable() bool {
	return !c.NoSort
}

// Title returns the column label, falling back to the upper-cased key.
func (c ColumnSpec) Title() string {
	if c.Label != "" {
		return c.Label
	}
	return strings.ToUpper(c.Key)
}

func (c ColumnSpec) String() string {
	return fmt.Sprintf("%s [%s::%t]", c.Key, c.Type, c.Sortable())
}

// Columns represents a table header, in display order.
type Columns []ColumnSpec

// Validate checks that every key is set and unique.
func (c Columns) Validate() error {
	seen := make(map[string]struct{}, len(c))
	for i, col := range c {
		if col.Key == "" {
			return &ConfigError{Field: fmt.Sprintf("columns[%d].key", i), Reason: "key is required"}
		}
		if _, ok := seen[col.Key]; ok {
			return &ConfigError{Field: fmt.Sprintf("columns[%d].key", i), Reason: fmt.Sprintf("duplicate key %q", col.Key)}
		}
		seen[col.Key] = struct{}{}
	}
	return nil
}

// IndexOf returns the position of the column with the given key.
func (c Columns) IndexOf(key string) (int, bool) {
	for i, col := range c {
		if col.Key == key {
			return i, true
		}
	}
	return -1, false
}

// Lookup returns the column with the given key.
func (c Columns) Lookup(key string) (ColumnSpec, bool) {
	if i, ok := c.IndexOf(key); ok {
		return c[i], true
	}
	return ColumnSpec{}, false
}

// Keys returns the column keys.
func (c Columns) Keys() []string {
	if len(c) == 0 {
		return nil
	}
	kk := make([]string, 0, len(c))
	for _, col := range c {
		kk = append(kk, col.Key)
	}
	return kk
}

// Labels returns the column titles.
func (c Columns) Labels() []string {
	if len(c) == 0 {
		return nil
	}
	ll := make([]string, 0, len(c))
	for _, col := range c {
		ll = append(ll, col.Title())
	}
	return ll
}

// Clone returns a copy of the columns.
func (c Columns) Clone() Columns {
	out := make(Columns, len(c))
	copy(out, c)
	return out
}
