// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package view

import (
	"context"
	"sync"

	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/model"
	"github.com/coffeelab/coffeelab/internal/ui"
)

// Table wraps ui.Table with a watched table model.
type Table struct {
	*ui.Table

	data     *model.TableData
	cancelFn context.CancelFunc
	mx       sync.RWMutex
}

// NewTable creates a new table view.
func NewTable(rid *dao.ResourceID) *Table {
	return &Table{
		Table: ui.NewTable(rid),
	}
}

// SetTableData attaches the model the table renders.
func (t *Table) SetTableData(d *model.TableData) {
	t.mx.Lock()
	t.data = d
	t.mx.Unlock()
	t.SetModel(d)
}

// TableData returns the table model.
func (t *Table) TableData() *model.TableData {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data
}

// Start watches the model until Stop is called.
func (t *Table) Start() {
	d := t.TableData()
	if d == nil {
		return
	}

	t.mx.Lock()
	if t.cancelFn != nil {
		t.cancelFn()
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancelFn = cancel
	t.mx.Unlock()

	go func() { _ = d.Watch(ctx) }()
}

// Stop ends the watch.
func (t *Table) Stop() {
	t.mx.Lock()
	if t.cancelFn != nil {
		t.cancelFn()
		t.cancelFn = nil
	}
	t.mx.Unlock()

	if d := t.TableData(); d != nil {
		d.Stop()
	}
}

// SetFilter applies a search term.
func (t *Table) SetFilter(term string) {
	t.Search(term)
}

// SearchTerm returns the active search term.
func (t *Table) SearchTerm() string {
	return t.CurrentView().State.SearchTerm
}
