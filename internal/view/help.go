// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package view

import (
	"context"
	"sort"

	"github.com/coffeelab/coffeelab/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const helpTitle = "help"

// HelpBind represents a single keybinding.
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection is one column of the help screen.
type HelpSection struct {
	Title string
	Binds []HelpBind
}

// Help lists the commands and key bindings.
type Help struct {
	*tview.Table

	app   *App
	hints ui.MenuHints
}

// NewHelp returns a help screen showing the hints of the current view.
func NewHelp(app *App, hints ui.MenuHints) *Help {
	return &Help{
		Table: tview.NewTable(),
		app:   app,
		hints: hints,
	}
}

// Init builds the help table.
func (h *Help) Init(context.Context) error {
	h.SetBorder(true)
	h.SetTitle(" Help ")
	h.SetTitleAlign(tview.AlignCenter)
	h.SetBorderColor(tcell.ColorYellow)
	h.SetBackgroundColor(tcell.ColorDefault)
	h.SetSelectable(false, false)
	h.SetInputCapture(h.keyboard)
	h.build(h.Sections())

	return nil
}

// Name returns the view name.
func (*Help) Name() string {
	return helpTitle
}

// Start is a no-op.
func (*Help) Start() {}

// Stop is a no-op.
func (*Help) Stop() {}

// Hints returns the menu hints.
func (*Help) Hints() ui.MenuHints {
	return ui.MenuHints{{Mnemonic: "esc", Description: "Back", Visible: true}}
}

// Sections returns the help columns.
func (h *Help) Sections() []HelpSection {
	return []HelpSection{
		{Title: "RESOURCES", Binds: resourceBinds(h.app.Aliases().ShortNames())},
		{Title: "GENERAL", Binds: []HelpBind{
			{"<:>", "Command"},
			{"</>", "Search"},
			{"<?>", "Help"},
			{"<esc>", "Back"},
			{"<ctrl-r>", "Refresh"},
			{"<ctrl-c>", "Quit"},
		}},
		{Title: "NAVIGATION", Binds: []HelpBind{
			{"<j>", "Down"},
			{"<k>", "Up"},
			{"<g>", "Top"},
			{"<G>", "Bottom"},
			{"<[>", "Prev Page"},
			{"<]>", "Next Page"},
			{"<shift-n>", "Sort Column n"},
			{"<ctrl-s>", "Sort Next"},
			{"<space>", "Mark"},
		}},
		{Title: "VIEW", Binds: hintBinds(h.hints)},
	}
}

func (h *Help) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	switch {
	case evt.Key() == tcell.KeyEsc, evt.Key() == tcell.KeyEnter:
	case evt.Key() == tcell.KeyRune && (evt.Rune() == '?' || evt.Rune() == 'q'):
	default:
		return evt
	}
	h.app.back()

	return nil
}

// resourceBinds lists the shortest alias of every resource.
func resourceBinds(mm map[string][]string) []HelpBind {
	bb := make([]HelpBind, 0, len(mm))
	for res, aa := range mm {
		if len(aa) == 0 {
			continue
		}
		short := aa[0]
		for _, a := range aa[1:] {
			if len(a) < len(short) {
				short = a
			}
		}
		bb = append(bb, HelpBind{Key: ":" + short, Desc: res})
	}
	sort.Slice(bb, func(i, j int) bool { return bb[i].Desc < bb[j].Desc })

	return bb
}

func hintBinds(hh ui.MenuHints) []HelpBind {
	bb := make([]HelpBind, 0, len(hh))
	for _, h := range hh {
		if !h.Visible {
			continue
		}
		bb = append(bb, HelpBind{Key: "<" + h.Mnemonic + ">", Desc: h.Description})
	}

	return bb
}

func (h *Help) build(sections []HelpSection) {
	h.Clear()

	var rows int
	for _, s := range sections {
		rows = max(rows, len(s.Binds))
	}

	// Each section takes a key, a description and a spacer column.
	const width = 3
	for i, s := range sections {
		base := i * width
		h.SetCell(0, base, tview.NewTableCell(s.Title).
			SetTextColor(tcell.ColorAqua).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
		for r, b := range s.Binds {
			h.SetCell(r+1, base, tview.NewTableCell(b.Key).
				SetTextColor(tcell.ColorYellow).
				SetSelectable(false))
			h.SetCell(r+1, base+1, tview.NewTableCell(b.Desc).
				SetTextColor(tcell.ColorWhite).
				SetSelectable(false).
				SetExpansion(1))
		}
		if i < len(sections)-1 {
			for r := 0; r <= rows; r++ {
				h.SetCell(r, base+2, tview.NewTableCell("").SetSelectable(false).SetExpansion(1))
			}
		}
	}
	h.SetCell(rows+2, 0, tview.NewTableCell("<esc> to close").
		SetTextColor(tcell.ColorGray).
		SetSelectable(false))
}
