// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	// TitleFmt formats the table title with resource, page and match count.
	TitleFmt = " <%s>[%d/%d][%d] "

	// SearchTitleFmt adds the active search term.
	SearchTitleFmt = " <%s>[%d/%d][%d] /%s "

	ascIndicator  = "▲"
	descIndicator = "▼"
	markIndicator = "◉ "
)

// Table renders one page of a resource.
type Table struct {
	*SelectTable

	resourceID *dao.ResourceID
	actions    *KeyActions
	colorer    model1.ColorerFunc
	columns    model1.Columns
	view       model1.View
	searchFn   func()
	errorFn    func(error)
	queueFn    func(func())
	mx         sync.RWMutex
}

// NewTable returns a new table instance.
func NewTable(rid *dao.ResourceID) *Table {
	return &Table{
		SelectTable: NewSelectTable(),
		resourceID:  rid,
		actions:     NewKeyActions(),
		colorer:     model1.DefaultColorer,
	}
}

// Init initializes the table component.
func (t *Table) Init(context.Context) error {
	t.SetFixed(1, 0)
	t.SetBorder(true)
	t.SetBorderAttributes(tcell.AttrBold)
	t.SetBorderPadding(0, 0, 1, 1)
	t.SetSelectable(true, false)
	t.SetBackgroundColor(tcell.ColorDefault)
	t.SetBorderColor(tcell.ColorDarkCyan)
	t.SetTitle(fmt.Sprintf(TitleFmt, t.resourceID, 1, 1, 0))
	t.showMessage("Loading...", tcell.ColorGray)
	t.SetInputCapture(t.keyboard)
	t.bindKeys()

	return nil
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.resourceID.String()
}

// ResourceID returns the resource identifier.
func (t *Table) ResourceID() *dao.ResourceID {
	return t.resourceID
}

// Actions returns the key actions.
func (t *Table) Actions() *KeyActions {
	return t.actions
}

// Hints returns menu hints for key bindings.
func (t *Table) Hints() MenuHints {
	return t.actions.Hints()
}

// SetColorerFn sets the row colorer.
func (t *Table) SetColorerFn(f model1.ColorerFunc) {
	t.mx.Lock()
	defer t.mx.Unlock()
	if f != nil {
		t.colorer = f
	}
}

// SetSearchFn sets the callback opening the search prompt.
func (t *Table) SetSearchFn(f func()) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.searchFn = f
}

// SetErrorFn sets the callback reporting model failures.
func (t *Table) SetErrorFn(f func(error)) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.errorFn = f
}

// SetQueueFn sets how model callbacks reach the UI goroutine.
func (t *Table) SetQueueFn(f func(func())) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.queueFn = f
}

func (t *Table) queue(f func()) {
	t.mx.RLock()
	q := t.queueFn
	t.mx.RUnlock()
	if q == nil {
		f()
		return
	}
	q(f)
}

// SetModel sets the table data model.
func (t *Table) SetModel(m Tabular) {
	if old := t.GetModel(); old != nil {
		old.RemoveListener(t)
	}
	t.SelectTable.SetModel(m)
	if m != nil {
		m.AddListener(t)
	}
}

// CurrentView returns the last rendered page.
func (t *Table) CurrentView() model1.View {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.view
}

// SelectedRow returns the row under the cursor.
func (t *Table) SelectedRow() (model1.Row, bool) {
	i := t.GetSelectedRowIndex()
	v := t.CurrentView()
	if i < 0 || i >= len(v.Rows) {
		return nil, false
	}
	return v.Rows[i], true
}

func (t *Table) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	key := AsKey(evt)
	if evt.Key() == tcell.KeyRune {
		if col, ok := SortKeyColumn(evt.Rune()); ok {
			t.sortColumn(col)
			return nil
		}
		row, c := t.GetSelection()
		n := t.GetRowCount()
		switch evt.Rune() {
		case 'j':
			if row < n-1 {
				t.Select(row+1, c)
			}
			return nil
		case 'k':
			if row > 1 {
				t.Select(row-1, c)
			}
			return nil
		case 'g':
			t.SelectFirstRow()
			return nil
		case 'G':
			if n > 1 {
				t.Select(n-1, c)
			}
			return nil
		case ' ':
			t.ToggleMark()
			t.render()
			return nil
		}
	}

	if a, ok := t.actions.Get(key); ok {
		return a.Action(evt)
	}

	return evt
}

func (t *Table) bindKeys() {
	t.actions.Bulk(KeyMap{
		tcell.KeyCtrlS: NewKeyAction("Sort Next", t.sortCmd, true),
		tcell.KeyEnter: NewKeyAction("View", t.enterCmd, true),
		KeySlash:       NewKeyAction("Search", t.searchCmd, true),
		tcell.KeyEsc:   NewKeyAction("Clear Search", t.clearSearchCmd, false),
		KeyLBracket:    NewKeyAction("Prev Page", t.prevPageCmd, true),
		KeyRBracket:    NewKeyAction("Next Page", t.nextPageCmd, true),
		tcell.KeyPgUp:  NewKeyAction("Prev Page", t.prevPageCmd, false),
		tcell.KeyPgDn:  NewKeyAction("Next Page", t.nextPageCmd, false),
		tcell.KeyCtrlR: NewKeyAction("Refresh", t.refreshCmd, true),
	})
}

// sortCmd moves the sort to the next sortable column.
func (t *Table) sortCmd(*tcell.EventKey) *tcell.EventKey {
	m := t.GetModel()
	if m == nil {
		return nil
	}
	v := m.View()
	start, _ := v.Columns.IndexOf(v.State.SortColumn)
	for i := 1; i <= len(v.Columns); i++ {
		c := v.Columns[(start+i)%len(v.Columns)]
		if c.Sortable() {
			m.SetSort(c.Key)
			break
		}
	}
	t.render()

	return nil
}

// sortColumn sorts on the i-th displayed column.
func (t *Table) sortColumn(i int) {
	m := t.GetModel()
	if m == nil {
		return
	}
	cols := m.View().Columns
	if i < 0 || i >= len(cols) {
		return
	}
	m.SetSort(cols[i].Key)
	t.render()
}

func (t *Table) enterCmd(*tcell.EventKey) *tcell.EventKey {
	m := t.GetModel()
	if m == nil {
		return nil
	}
	// The model notifies its row select callback.
	m.Select(t.GetSelectedRowIndex())

	return nil
}

func (t *Table) searchCmd(*tcell.EventKey) *tcell.EventKey {
	t.mx.RLock()
	f := t.searchFn
	t.mx.RUnlock()
	if f != nil {
		f()
	}
	return nil
}

func (t *Table) clearSearchCmd(evt *tcell.EventKey) *tcell.EventKey {
	m := t.GetModel()
	if m == nil || m.View().State.SearchTerm == "" {
		return evt
	}
	t.Search("")
	return nil
}

func (t *Table) prevPageCmd(*tcell.EventKey) *tcell.EventKey {
	if m := t.GetModel(); m != nil {
		m.PrevPage()
		t.render()
		t.SelectFirstRow()
	}
	return nil
}

func (t *Table) nextPageCmd(*tcell.EventKey) *tcell.EventKey {
	if m := t.GetModel(); m != nil {
		m.NextPage()
		t.render()
		t.SelectFirstRow()
	}
	return nil
}

func (t *Table) refreshCmd(*tcell.EventKey) *tcell.EventKey {
	m := t.GetModel()
	if m == nil {
		return nil
	}
	go func() {
		if err := m.Refresh(context.Background()); err != nil {
			t.fail(err)
		}
	}()
	return nil
}

// Search filters the model and redraws.
func (t *Table) Search(term string) {
	m := t.GetModel()
	if m == nil {
		return
	}
	m.SetSearchTerm(strings.TrimSpace(term))
	t.render()
	t.SelectFirstRow()
}

// render redraws from the model current page.
func (t *Table) render() {
	if m := t.GetModel(); m != nil {
		t.UpdateUI(m.View())
	}
}

// UpdateUI draws a page.
func (t *Table) UpdateUI(v model1.View) {
	t.mx.Lock()
	t.view = v
	t.columns = v.Columns
	colorer := t.colorer
	t.mx.Unlock()

	row, _ := t.GetSelection()
	t.Clear()
	t.buildHeader(v)
	if v.Empty() {
		msg := "No resources found"
		if v.State.SearchTerm != "" {
			msg = fmt.Sprintf("No match for %q", v.State.SearchTerm)
		}
		cell := tview.NewTableCell(msg)
		cell.SetTextColor(tcell.ColorGray)
		cell.SetSelectable(false)
		t.SetCell(1, 0, cell)
	}
	for i, r := range v.Rows {
		kind := model1.EventUnchanged
		if i < len(v.Kinds) {
			kind = v.Kinds[i]
		}
		color := AsColor(colorer(v.Columns, model1.NewRowEvent(kind, r)))
		t.buildRow(i+1, r, v.Cells[i], color)
	}
	t.updateTitle(v)
	if row > 0 {
		t.Select(row, 0)
	}
	t.ClampSelection()
}

func (t *Table) buildHeader(v model1.View) {
	for col, c := range v.Columns {
		label := c.Title()
		if c.Key == v.State.SortColumn {
			ind := ascIndicator
			if v.State.SortDirection == model1.SortDesc {
				ind = descIndicator
			}
			label += ind
		}
		cell := tview.NewTableCell(label)
		cell.SetTextColor(tcell.ColorYellow)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAttributes(tcell.AttrBold)
		cell.SetExpansion(1)
		cell.SetSelectable(false)
		if c.Type == model1.ColumnCurrency {
			cell.SetAlign(tview.AlignRight)
		}
		t.SetCell(0, col, cell)
	}
}

func (t *Table) buildRow(idx int, r model1.Row, cells []string, color tcell.Color) {
	t.mx.RLock()
	cols := t.columns
	t.mx.RUnlock()

	id := r.ID()
	marked := t.IsMarked(id)
	for col, txt := range cells {
		if col == 0 && marked {
			txt = markIndicator + txt
		}
		cell := tview.NewTableCell(txt)
		cell.SetTextColor(color)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetExpansion(1)
		if col < len(cols) && cols[col].Type == model1.ColumnCurrency {
			cell.SetAlign(tview.AlignRight)
		}
		if col == 0 {
			cell.SetReference(id)
		}
		t.SetCell(idx, col, cell)
	}
}

func (t *Table) updateTitle(v model1.View) {
	t.SetTitle(Title(t.resourceID.String(), v))
}

// Title formats a table title for a page.
func Title(resource string, v model1.View) string {
	if term := v.State.SearchTerm; term != "" {
		return fmt.Sprintf(SearchTitleFmt, resource, v.CurrentPage, v.TotalPages, v.TotalMatching, term)
	}
	return fmt.Sprintf(TitleFmt, resource, v.CurrentPage, v.TotalPages, v.TotalMatching)
}

func (t *Table) fail(err error) {
	t.mx.RLock()
	f := t.errorFn
	t.mx.RUnlock()
	if f != nil {
		f(err)
	}
}

// TableDataChanged implements model.TableListener.
func (t *Table) TableDataChanged(v model1.View) {
	t.queue(func() { t.UpdateUI(v) })
}

// TableNoData implements model.TableListener.
func (t *Table) TableNoData(v model1.View) {
	t.queue(func() { t.UpdateUI(v) })
}

// TableLoadFailed implements model.TableListener.
func (t *Table) TableLoadFailed(err error) {
	t.queue(func() {
		t.SetTitle(fmt.Sprintf(" <%s>[error] ", t.resourceID))
		if t.CurrentView().Empty() {
			t.showMessage(err.Error(), tcell.ColorRed)
		}
	})
	t.fail(err)
}
