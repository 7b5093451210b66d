// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package view

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coffeelab/coffeelab/internal/config/data"
	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/model"
	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/coffeelab/coffeelab/internal/render"
	"github.com/coffeelab/coffeelab/internal/slogs"
	"github.com/coffeelab/coffeelab/internal/ui"
	"github.com/derailed/tcell/v2"
	"go.uber.org/zap"
)

const (
	actionTimeout = 30 * time.Second
	minPageSize   = 1
	maxPageSize   = 100
)

// Browser is the screen listing one coffeelab resource.
type Browser struct {
	*Table

	app      *App
	accessor dao.Accessor
	pageSize int
	mx       sync.RWMutex
}

// NewBrowser returns a new resource browser.
func NewBrowser(app *App, rid *dao.ResourceID) *Browser {
	return &Browser{
		Table: NewTable(rid),
		app:   app,
	}
}

// Init wires the table model and the key bindings.
func (b *Browser) Init(ctx context.Context) error {
	if err := b.Table.Init(ctx); err != nil {
		return err
	}

	rid := b.ResourceID()
	acc, err := dao.AccessorFor(b.app.Factory(), rid)
	if err != nil {
		return err
	}
	r, err := model.RendererFor(rid)
	if err != nil {
		return err
	}

	s := b.app.Settings()
	td := model.NewTableData(rid, s.RefreshDuration(), b.app.Logger())
	td.SetAccessor(acc)
	oo := append(s.TableOptions(rid.String()),
		model1.WithFormatter(render.NewFormatter(s.Location())),
		model1.WithRowSelect(func(row model1.Row) { b.showDescribe(row, false) }),
	)
	if err := td.Init(r, oo...); err != nil {
		return err
	}
	vs := s.ViewSettings(rid.String())
	if vs.SortColumn != "" {
		dir := model1.SortAsc
		if vs.SortDesc {
			dir = model1.SortDesc
		}
		td.SortBy(vs.SortColumn, dir)
	}

	b.mx.Lock()
	b.accessor, b.pageSize = acc, vs.PageSize
	b.mx.Unlock()

	b.SetColorerFn(r.ColorerFunc())
	b.SetQueueFn(b.app.QueueUpdateDraw)
	b.SetErrorFn(b.loadFailed)
	b.SetSearchFn(func() { b.app.activateSearch(b.SearchTerm()) })
	b.SetTableData(td)
	b.bindKeys(b.Actions())
	if b.app.IsReadOnly() {
		b.Actions().ClearDanger()
	}

	return nil
}

// Stop ends the refresh loop and remembers the table settings.
func (b *Browser) Stop() {
	b.Table.Stop()
	b.saveSettings()
}

// Accessor returns the resource accessor.
func (b *Browser) Accessor() dao.Accessor {
	b.mx.RLock()
	defer b.mx.RUnlock()
	return b.accessor
}

// PageSize returns the number of rows per page.
func (b *Browser) PageSize() int {
	b.mx.RLock()
	defer b.mx.RUnlock()
	return b.pageSize
}

func (b *Browser) bindKeys(aa *ui.KeyActions) {
	aa.Bulk(ui.KeyMap{
		ui.KeyD:      ui.NewKeyAction("Describe", b.describeCmd, true),
		ui.KeyX:      ui.NewKeyAction("Changes", b.deltaCmd, true),
		ui.KeyPlus:   ui.NewKeyAction("More Rows", b.pageSizeCmd(1), false),
		ui.KeyMinus:  ui.NewKeyAction("Less Rows", b.pageSizeCmd(-1), false),
		tcell.KeyEsc: ui.NewKeyAction("Back", b.escCmd, false),
	})
	if _, ok := b.Accessor().(dao.Updater); ok {
		aa.Add(ui.KeyE, ui.NewDangerousKeyAction("Edit", b.editCmd, true))
	}

	for _, act := range ui.GetActions(b.ResourceID()) {
		aa.Add(act.Key, ui.NewDangerousKeyAction(act.Description, b.actionCmd(act), true))
	}
}

func (b *Browser) escCmd(*tcell.EventKey) *tcell.EventKey {
	if b.SearchTerm() != "" {
		b.Search("")
		return nil
	}
	b.app.back()

	return nil
}

func (b *Browser) describeCmd(*tcell.EventKey) *tcell.EventKey {
	if row, ok := b.SelectedRow(); ok {
		b.showDescribe(row, false)
	}
	return nil
}

func (b *Browser) deltaCmd(*tcell.EventKey) *tcell.EventKey {
	if row, ok := b.SelectedRow(); ok {
		b.showDescribe(row, true)
	}
	return nil
}

func (b *Browser) showDescribe(row model1.Row, delta bool) {
	d := NewDescribe(b.app, b.ResourceID(), row.ID())
	d.SetAccessor(b.Accessor())
	d.SetDeltaFn(b.TableData().Delta)
	d.SetLabel(ui.RowLabel(row))
	if delta {
		d.SetFormat(FormatDelta)
	}
	if err := b.app.push(d); err != nil {
		b.app.Flash().Err(err)
	}
}

func (b *Browser) pageSizeCmd(inc int) ui.ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		n := b.PageSize() + inc
		if n < minPageSize || n > maxPageSize {
			return nil
		}
		if err := b.TableData().SetPageSize(n); err != nil {
			b.app.Flash().Err(err)
			return nil
		}
		b.mx.Lock()
		b.pageSize = n
		b.mx.Unlock()
		b.app.Flash().Infof("%d rows per page", n)

		return nil
	}
}

func (b *Browser) editCmd(*tcell.EventKey) *tcell.EventKey {
	row, ok := b.SelectedRow()
	if !ok {
		return nil
	}
	u, ok := b.Accessor().(dao.Updater)
	if !ok {
		return nil
	}

	err := EditRow(context.Background(), b.app.Application, u, row)
	switch {
	case errors.Is(err, ErrEditorCancelled):
		b.app.Flash().Info("Edit cancelled")
	case errors.Is(err, ErrNoChanges):
		b.app.Flash().Info("No changes detected")
	case err != nil:
		b.app.Flash().Err(fmt.Errorf("edit failed: %w", err))
	default:
		b.app.Flash().Infof("%s updated", ui.RowLabel(row))
		b.refresh()
	}

	return nil
}

// actionCmd runs a registered resource action on the selected row.
func (b *Browser) actionCmd(act ui.ResourceAction) ui.ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		row, ok := b.SelectedRow()
		if !ok {
			return nil
		}
		if !act.Allowed(row) {
			b.app.Flash().Warn(fmt.Sprintf("%s is not available for %s", act.Name, ui.RowLabel(row)))
			return nil
		}

		run := func(in map[string]string) {
			if !act.Dangerous {
				b.runAction(act, row, in)
				return
			}
			ui.ShowConfirm(b.app.Content, act.ConfirmMessage(row), true, func() {
				b.runAction(act, row, in)
			})
		}
		if act.Inputs == nil {
			run(nil)
			return nil
		}
		ui.ShowInput(b.app.Content, act.Description, act.Inputs(row), func(in map[string]string) error {
			if err := act.Check(in); err != nil {
				return err
			}
			run(in)
			return nil
		})

		return nil
	}
}

func (b *Browser) runAction(act ui.ResourceAction, row model1.Row, in map[string]string) {
	acc, flash := b.Accessor(), b.app.Flash()
	flash.Infof("%s %s...", act.Name, ui.RowLabel(row))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		msg, err := act.Handler(ctx, acc, row, in)
		if err != nil {
			b.app.Logger().Warn("action failed",
				zap.String(slogs.Resource, b.ResourceID().String()),
				zap.String(slogs.Command, act.Name),
				zap.Error(err),
			)
			flash.Err(fmt.Errorf("%s failed: %w", act.Name, err))
			return
		}
		flash.Info(msg)
		if err := b.TableData().Refresh(ctx); err != nil {
			b.loadFailed(err)
		}
	}()
}

func (b *Browser) refresh() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		if err := b.TableData().Refresh(ctx); err != nil {
			b.loadFailed(err)
		}
	}()
}

func (b *Browser) loadFailed(err error) {
	b.app.Flash().Err(err)
}

// saveSettings records the sort and page size of the resource.
func (b *Browser) saveSettings() {
	td := b.TableData()
	if td == nil {
		return
	}
	st := td.View().State
	b.app.Settings().SetViewSettings(b.ResourceID().String(), data.View{
		PageSize:   b.PageSize(),
		SortColumn: st.SortColumn,
		SortDesc:   st.SortDirection == model1.SortDesc,
	})
}
