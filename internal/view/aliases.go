// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package view

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/coffeelab/coffeelab/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const aliasesTitle = "aliases"

// AliasView lists the command aliases of every resource.
type AliasView struct {
	*tview.Table

	app *App
}

// NewAliasView creates a new alias view.
func NewAliasView(app *App) *AliasView {
	v := AliasView{
		Table: tview.NewTable(),
		app:   app,
	}

	v.SetBorder(true)
	v.SetTitle(" Aliases ")
	v.SetTitleAlign(tview.AlignCenter)
	v.SetBorderColor(tcell.ColorAqua)
	v.SetBackgroundColor(tcell.ColorDefault)
	v.SetSelectable(true, false)
	v.SetFixed(1, 0)

	return &v
}

// Init initializes the alias view.
func (v *AliasView) Init(context.Context) error {
	v.SetInputCapture(v.keyboard)
	v.load()
	return nil
}

// Start reloads the aliases.
func (v *AliasView) Start() {
	v.load()
}

// Stop is a no-op.
func (*AliasView) Stop() {}

// Name returns the view name.
func (*AliasView) Name() string {
	return aliasesTitle
}

// Hints returns menu hints.
func (*AliasView) Hints() ui.MenuHints {
	return ui.MenuHints{
		{Mnemonic: "enter", Description: "Goto", Visible: true},
		{Mnemonic: "esc", Description: "Back", Visible: true},
	}
}

func (v *AliasView) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, col := v.GetSelection()
	count := v.GetRowCount()

	if evt.Key() == tcell.KeyRune {
		switch evt.Rune() {
		case 'j':
			if row < count-1 {
				v.Select(row+1, col)
			}
			return nil
		case 'k':
			if row > 1 {
				v.Select(row-1, col)
			}
			return nil
		case 'g':
			if count > 1 {
				v.Select(1, col)
			}
			return nil
		case 'G':
			if count > 1 {
				v.Select(count-1, col)
			}
			return nil
		case 'q':
			v.app.back()
			return nil
		}
	}

	switch evt.Key() {
	case tcell.KeyEnter:
		v.gotoSelected()
		return nil
	case tcell.KeyEsc:
		v.app.back()
		return nil
	}

	return evt
}

func (v *AliasView) gotoSelected() {
	row, _ := v.GetSelection()
	if row < 1 {
		return
	}
	res, ok := v.GetCell(row, 0).GetReference().(string)
	if !ok {
		return
	}
	if err := v.app.command.Run(res); err != nil {
		v.app.Flash().Err(err)
	}
}

func (v *AliasView) load() {
	v.Clear()

	for col, h := range []string{"RESOURCE", "ALIASES"} {
		v.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false).
			SetExpansion(1))
	}

	mm := v.app.Aliases().ShortNames()
	rr := make([]string, 0, len(mm))
	for res := range mm {
		rr = append(rr, res)
	}
	sort.Strings(rr)

	for i, res := range rr {
		v.SetCell(i+1, 0, tview.NewTableCell(res).
			SetTextColor(tcell.ColorAqua).
			SetExpansion(1).
			SetReference(res))
		v.SetCell(i+1, 1, tview.NewTableCell(strings.Join(mm[res], ", ")).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(2))
	}
	if len(rr) > 0 {
		v.Select(1, 0)
	}
	v.SetTitle(fmt.Sprintf(" Aliases [%d] ", len(rr)))
}
