// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package model1

import "fmt"

// DefaultPageSize is the number of rows per page unless configured.
const DefaultPageSize = 10

// Options enumerates every table setting.
type Options struct {
	Searchable  bool
	Sortable    bool
	Pagination  bool
	PageSize    int
	NaturalSort bool
	OnRowSelect func(Row)
	Formatter   Formatter
}

// Option customizes table options.
type Option func(*Options)

// DefaultOptions returns options with every feature on.
func DefaultOptions() Options {
	return Options{
		Searchable: true,
		Sortable:   true,
		Pagination: true,
		PageSize:   DefaultPageSize,
		Formatter:  RawFormatter{},
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.PageSize < 1 {
		return &ConfigError{Field: "pageSize", Reason: fmt.Sprintf("must be positive, got %d", o.PageSize)}
	}
	return nil
}

// WithSearch toggles searching.
func WithSearch(b bool) Option {
	return func(o *Options) { o.Searchable = b }
}

// WithSort toggles sorting.
func WithSort(b bool) Option {
	return func(o *Options) { o.Sortable = b }
}

// WithPagination toggles pagination.
func WithPagination(b bool) Option {
	return func(o *Options) { o.Pagination = b }
}

// WithPageSize sets the page size.
func WithPageSize(n int) Option {
	return func(o *Options) { o.PageSize = n }
}

// WithNaturalSort orders strings naturally, e.g. ORD-2 before ORD-10.
func WithNaturalSort(b bool) Option {
	return func(o *Options) { o.NaturalSort = b }
}

// WithRowSelect registers the row selection callback.
func WithRowSelect(fn func(Row)) Option {
	return func(o *Options) { o.OnRowSelect = fn }
}

// WithFormatter sets the cell formatter.
func WithFormatter(f Formatter) Option {
	return func(o *Options) {
		if f != nil {
			o.Formatter = f
		}
	}
}

// RawFormatter stringifies values as is.
type RawFormatter struct{}

func (RawFormatter) Price(v any) string  { return Stringify(v) }
func (RawFormatter) Date(v any) string   { return Stringify(v) }
func (RawFormatter) Status(v any) string { return Stringify(v) }

// FormatCell renders the text of one cell.
func FormatCell(f Formatter, col ColumnSpec, row Row) string {
	v := row[col.Key]
	if col.Render != nil {
		return col.Render(v, row)
	}
	if IsBlank(v) {
		return Placeholder
	}
	if f == nil {
		f = RawFormatter{}
	}

	var s string
	switch col.Type {
	case ColumnCurrency:
		s = f.Price(v)
	case ColumnDate:
		s = f.Date(v)
	case ColumnStatus:
		s = f.Status(v)
	default:
		s = Stringify(v)
	}
	if s == "" {
		return Placeholder
	}
	return s
}
