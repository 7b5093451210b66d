// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package model1

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/wI2L/jsondiff"
)

// ViewState holds the inputs of the projection owned by the view.
type ViewState struct {
	SearchTerm    string
	SortColumn    string
	SortDirection SortDirection
	CurrentPage   int
}

// View is the projection of the current page.
type View struct {
	Columns       Columns
	Rows          Rows
	Cells         [][]string
	Kinds         []ResEvent
	CurrentPage   int
	TotalPages    int
	TotalMatching int
	State         ViewState
}

// Empty returns true if the page holds no rows.
func (v View) Empty() bool {
	return len(v.Rows) == 0
}

// TabularView filters, sorts and paginates an in-memory collection.
// TotalPages is always at least 1, an empty collection yields one empty page.
type TabularView struct {
	columns  Columns
	opts     Options
	data     Rows
	filtered Rows
	previous map[string]Row
	current  map[string]Row
	events   *RowEvents
	state    ViewState
	mx       sync.RWMutex
}

// NewTabularView validates the configuration and returns a view over data.
func NewTabularView(cols Columns, data Rows, oo ...Option) (*TabularView, error) {
	opts := DefaultOptions()
	for _, o := range oo {
		o(&opts)
	}
	if err := cols.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	t := TabularView{
		columns: cols.Clone(),
		opts:    opts,
		data:    data.Clone(),
		state:   ViewState{CurrentPage: 1},
	}
	t.current = t.data.Index()
	t.events = DiffRows(t.current, t.data)
	t.recompute()

	return &t, nil
}

// Columns returns the column specs.
func (t *TabularView) Columns() Columns {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.columns.Clone()
}

// Options returns the active options.
func (t *TabularView) Options() Options {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.opts
}

// State returns the current view state.
func (t *TabularView) State() ViewState {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.state
}

// Len returns the number of backing rows.
func (t *TabularView) Len() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return len(t.data)
}

// UpdateData replaces the backing rows and returns to the first page.
func (t *TabularView) UpdateData(rows Rows) {
	t.mx.Lock()
	defer t.mx.Unlock()

	t.previous = t.current
	t.data = rows.Clone()
	t.current = t.data.Index()
	t.events = DiffRows(t.previous, t.data)
	t.state.CurrentPage = 1
	t.recompute()
}

// SetSearchTerm filters rows whose column values contain term, ignoring case.
func (t *TabularView) SetSearchTerm(term string) {
	t.mx.Lock()
	defer t.mx.Unlock()

	if !t.opts.Searchable {
		return
	}
	t.state.SearchTerm = term
	t.state.CurrentPage = 1
	t.recompute()
}

// SetSort sorts by key, toggling the direction when key is already selected.
// Unknown or unsortable columns are ignored.
func (t *TabularView) SetSort(key string) {
	t.mx.Lock()
	defer t.mx.Unlock()

	if !t.canSort(key) {
		return
	}
	if t.state.SortColumn == key {
		t.state.SortDirection = t.state.SortDirection.Toggle()
	} else {
		t.state.SortColumn = key
		t.state.SortDirection = SortAsc
	}
	t.recompute()
}

// SortBy sorts by key in the given direction.
// Unknown or unsortable columns are ignored.
func (t *TabularView) SortBy(key string, dir SortDirection) {
	t.mx.Lock()
	defer t.mx.Unlock()

	if !t.canSort(key) {
		return
	}
	t.state.SortColumn, t.state.SortDirection = key, dir
	t.recompute()
}

// GoToPage moves to page n, clamped into the valid range.
func (t *TabularView) GoToPage(n int) {
	t.mx.Lock()
	defer t.mx.Unlock()

	t.state.CurrentPage = ClampPage(n, t.totalPages())
}

// NextPage moves one page forward.
func (t *TabularView) NextPage() {
	t.GoToPage(t.State().CurrentPage + 1)
}

// PrevPage moves one page back.
func (t *TabularView) PrevPage() {
	t.GoToPage(t.State().CurrentPage - 1)
}

// SetPageSize changes the page size and keeps the current page in range.
func (t *TabularView) SetPageSize(n int) error {
	if n < 1 {
		return &ConfigError{Field: "pageSize", Reason: fmt.Sprintf("must be positive, got %d", n)}
	}

	t.mx.Lock()
	defer t.mx.Unlock()
	t.opts.PageSize = n
	t.state.CurrentPage = ClampPage(t.state.CurrentPage, t.totalPages())

	return nil
}

// View returns the current page. It does not change any state.
func (t *TabularView) View() View {
	t.mx.RLock()
	defer t.mx.RUnlock()

	page := t.page()
	v := View{
		Columns:       t.columns.Clone(),
		Rows:          make(Rows, 0, len(page)),
		Cells:         make([][]string, 0, len(page)),
		Kinds:         make([]ResEvent, 0, len(page)),
		CurrentPage:   t.state.CurrentPage,
		TotalPages:    t.totalPages(),
		TotalMatching: len(t.filtered),
		State:         t.state,
	}
	for _, r := range page {
		cells := make([]string, len(t.columns))
		for i, c := range t.columns {
			cells[i] = FormatCell(t.opts.Formatter, c, r)
		}
		v.Rows = append(v.Rows, r)
		v.Cells = append(v.Cells, cells)
		v.Kinds = append(v.Kinds, t.events.KindOf(r))
	}

	return v
}

// CellText formats the value of a row for the given column key.
func (t *TabularView) CellText(row Row, key string) string {
	t.mx.RLock()
	defer t.mx.RUnlock()

	col, ok := t.columns.Lookup(key)
	if !ok {
		return Placeholder
	}
	return FormatCell(t.opts.Formatter, col, row)
}

// Select picks the i-th row of the current page and notifies the selection callback.
func (t *TabularView) Select(i int) (Row, bool) {
	t.mx.RLock()
	page := t.page()
	fn := t.opts.OnRowSelect
	t.mx.RUnlock()

	if i < 0 || i >= len(page) {
		return nil, false
	}
	row := page[i]
	if fn != nil {
		fn(row)
	}

	return row, true
}

// SelectByID picks a matching row by identity and notifies the selection callback.
func (t *TabularView) SelectByID(id string) (Row, bool) {
	t.mx.RLock()
	var row Row
	for _, r := range t.filtered {
		if r.ID() == id {
			row = r
			break
		}
	}
	fn := t.opts.OnRowSelect
	t.mx.RUnlock()

	if row == nil {
		return nil, false
	}
	if fn != nil {
		fn(row)
	}

	return row, true
}

// Events returns the change kinds of the last data update.
func (t *TabularView) Events() *RowEvents {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.events
}

// Delta returns the patch between the previous and current version of a row.
func (t *TabularView) Delta(id string) (jsondiff.Patch, error) {
	t.mx.RLock()
	cur, ok := t.current[id]
	old := t.previous[id]
	t.mx.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoRow, id)
	}
	return RowDelta(old, cur)
}

func (t *TabularView) canSort(key string) bool {
	if !t.opts.Sortable {
		return false
	}
	col, ok := t.columns.Lookup(key)
	return ok && col.Sortable()
}

func (t *TabularView) totalPages() int {
	if !t.opts.Pagination {
		return 1
	}
	return PageCount(len(t.filtered), t.opts.PageSize)
}

func (t *TabularView) page() Rows {
	if !t.opts.Pagination {
		return t.filtered
	}
	start, end := PageBounds(t.state.CurrentPage, t.opts.PageSize, len(t.filtered))
	return t.filtered[start:end]
}

// recompute derives the filtered projection from data, search term and sort.
func (t *TabularView) recompute() {
	rows := make(Rows, 0, len(t.data))
	term := strings.ToLower(t.state.SearchTerm)
	for _, r := range t.data {
		if term == "" || matches(t.columns, r, term) {
			rows = append(rows, r)
		}
	}

	if key := t.state.SortColumn; key != "" {
		desc, natural := t.state.SortDirection == SortDesc, t.opts.NaturalSort
		sort.SliceStable(rows, func(i, j int) bool {
			c := Compare(rows[i][key], rows[j][key], natural)
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	t.filtered = rows
	t.state.CurrentPage = ClampPage(t.state.CurrentPage, t.totalPages())
}
