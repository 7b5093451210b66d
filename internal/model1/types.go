// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package model1

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Placeholder is displayed in place of missing or empty cell values.
const Placeholder = "-"

// ResEvent represents a row change kind between two data snapshots.
type ResEvent int

const (
	EventUnchanged ResEvent = 1 << iota
	EventAdd
	EventUpdate
	EventDelete
	EventClear
)

// ColumnType selects the default formatting of a column.
type ColumnType int

const (
	// ColumnPlain displays the raw value.
	ColumnPlain ColumnType = iota
	// ColumnCurrency displays the value as money.
	ColumnCurrency
	// ColumnDate displays the value as a date.
	ColumnDate
	// ColumnStatus maps the value through the status labels.
	ColumnStatus
)

var columnTypeNames = map[ColumnType]string{
	ColumnPlain:    "plain",
	ColumnCurrency: "currency",
	ColumnDate:     "date",
	ColumnStatus:   "status",
}

func (c ColumnType) String() string {
	if s, ok := columnTypeNames[c]; ok {
		return s
	}
	return "plain"
}

// ParseColumnType returns the column type for a name, defaulting to plain.
func ParseColumnType(s string) ColumnType {
	for k, v := range columnTypeNames {
		if strings.EqualFold(v, s) {
			return k
		}
	}
	return ColumnPlain
}

// SortDirection represents a sort order.
type SortDirection int

const (
	SortAsc SortDirection = iota
	SortDesc
)

func (d SortDirection) String() string {
	if d == SortDesc {
		return "desc"
	}
	return "asc"
}

// Toggle flips the direction.
func (d SortDirection) Toggle() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// RenderFunc formats a cell value. value is nil when the field is missing.
type RenderFunc func(value any, row Row) string

// Formatter stringifies typed cell values.
type Formatter interface {
	Price(v any) string
	Date(v any) string
	Status(v any) string
}

// ColorerFunc represents a row colorer.
type ColorerFunc func(cols Columns, re RowEvent) tcell.Color

// Renderer describes how a resource is laid out in a table.
type Renderer interface {
	Columns() Columns
	ColorerFunc() ColorerFunc
}
