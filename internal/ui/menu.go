// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package ui

import (
	"fmt"
	"sort"

	"github.com/coffeelab/coffeelab/internal/model"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// DefaultMenuRows is the height of the key hints bar.
const DefaultMenuRows = 2

// Menu shows the key hints of the top view, laid out column by column.
// Mutations are flagged in red so read-only sessions are easy to spot.
type Menu struct {
	*tview.Table

	rows int
}

// NewMenu returns a new menu.
func NewMenu() *Menu {
	m := Menu{
		Table: tview.NewTable(),
		rows:  DefaultMenuRows,
	}
	m.SetBackgroundColor(tcell.ColorDefault)
	m.SetBorderPadding(0, 0, 1, 1)

	return &m
}

// SetRows sets how many hints stack in one column.
func (m *Menu) SetRows(n int) {
	if n > 0 {
		m.rows = n
	}
}

// HydrateMenu redraws the menu from hints.
func (m *Menu) HydrateMenu(hh MenuHints) {
	m.Clear()
	for r, cells := range MenuCells(hh, m.rows) {
		for c, txt := range cells {
			m.SetCell(r, c, tview.NewTableCell(txt).SetBackgroundColor(tcell.ColorDefault))
		}
	}
}

// MenuCells lays out the visible hints in rows, sorted and padded per column.
func MenuCells(hh MenuHints, rows int) [][]string {
	vv := make(MenuHints, 0, len(hh))
	for _, h := range hh {
		if h.Visible && h.Mnemonic != "" && h.Description != "" {
			vv = append(vv, h)
		}
	}
	if len(vv) == 0 || rows < 1 {
		return nil
	}
	sort.Stable(vv)

	cols := (len(vv) + rows - 1) / rows
	out := make([][]string, min(rows, len(vv)))
	for r := range out {
		out[r] = make([]string, cols)
	}
	for c := range cols {
		group := vv[c*rows : min((c+1)*rows, len(vv))]
		var width int
		for _, h := range group {
			width = max(width, len(h.Mnemonic)+2)
		}
		for r, h := range group {
			out[r][c] = formatHint(h, width)
		}
	}

	return out
}

func formatHint(h MenuHint, width int) string {
	color := "yellow"
	if h.Dangerous {
		color = "red"
	}
	return fmt.Sprintf(" [%s::b]%-*s[white::-] %s ", color, width, "<"+h.Mnemonic+">", h.Description)
}

// StackPushed notifies a component was added.
func (*Menu) StackPushed(model.Component) {}

// StackPopped notifies a component was removed.
func (m *Menu) StackPopped(_, top model.Component) {
	if top == nil {
		m.Clear()
	}
}

// StackTop notifies the top component.
func (m *Menu) StackTop(t model.Component) {
	if h, ok := t.(Hinter); ok {
		m.HydrateMenu(h.Hints())
	}
}
