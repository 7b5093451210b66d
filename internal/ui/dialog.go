// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package ui

import (
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// DialogCallback is called when dialog is dismissed.
type DialogCallback func()

// Dialog represents a generic modal dialog base.
type Dialog struct {
	*tview.Modal

	pages  *Pages
	pageID string
	onDone DialogCallback
}

// NewDialog creates a new dialog.
func NewDialog(pages *Pages, pageID string) *Dialog {
	d := &Dialog{
		Modal:  tview.NewModal(),
		pages:  pages,
		pageID: pageID,
	}
	d.SetBackgroundColor(tcell.ColorDefault)
	d.SetTextColor(tcell.ColorWhite)

	return d
}

// SetMessage sets the dialog message.
func (d *Dialog) SetMessage(msg string) *Dialog {
	d.Modal.SetText(msg)
	return d
}

// SetButtons configures dialog buttons.
func (d *Dialog) SetButtons(labels []string) *Dialog {
	d.AddButtons(labels)
	return d
}

// SetDoneCallback sets the callback for when dialog closes.
func (d *Dialog) SetDoneCallback(fn DialogCallback) *Dialog {
	d.onDone = fn
	return d
}

// SetButtonHandler sets the button click handler.
func (d *Dialog) SetButtonHandler(handler func(int, string)) *Dialog {
	d.SetDoneFunc(func(idx int, label string) {
		d.Dismiss()
		if handler != nil {
			handler(idx, label)
		}
	})
	return d
}

// SetColors configures dialog colors.
func (d *Dialog) SetColors(text, btnBg, btnText tcell.Color) *Dialog {
	d.SetTextColor(text)
	d.SetButtonBackgroundColor(btnBg)
	d.SetButtonTextColor(btnText)
	return d
}

// Show displays the dialog as a modal overlay.
func (d *Dialog) Show() {
	if d.pages != nil {
		d.pages.ShowModal(d.pageID, d)
	}
}

// Dismiss removes the dialog from display.
func (d *Dialog) Dismiss() {
	if d.pages != nil {
		d.pages.DismissModal(d.pageID)
	}
	if d.onDone != nil {
		d.onDone()
	}
}

// PageID returns the dialog's page identifier.
func (d *Dialog) PageID() string {
	return d.pageID
}

// ErrorDialog creates a styled error dialog.
func ErrorDialog(pages *Pages, message string) *Dialog {
	return NewDialog(pages, "error-dialog").
		SetMessage(message).
		SetButtons([]string{"OK"}).
		SetColors(tcell.ColorRed, tcell.ColorRed, tcell.ColorWhite).
		SetButtonHandler(func(int, string) {})
}

const inputKey = "input"

// InputField describes one field of an input dialog. A field with
// options is shown as a drop down.
type InputField struct {
	Label   string
	Value   string
	Options []string
}

// InputOkFunc receives the field values, keyed by label. A non nil error
// keeps the dialog open.
type InputOkFunc func(map[string]string) error

// ShowInput displays a form and hands its values to ok.
func ShowInput(pages *Pages, title string, ff []InputField, ok InputOkFunc) {
	f := tview.NewForm()
	f.SetItemPadding(0)
	f.SetButtonsAlign(tview.AlignCenter)
	f.SetBackgroundColor(tcell.ColorDefault)
	f.SetFieldBackgroundColor(tcell.ColorDarkSlateGray)
	f.SetButtonBackgroundColor(tcell.ColorDarkCyan)
	f.SetLabelColor(tcell.ColorYellow)

	values := make(map[string]string, len(ff))
	for _, fld := range ff {
		label := fld.Label
		values[label] = fld.Value
		if len(fld.Options) > 0 {
			initial := 0
			for i, o := range fld.Options {
				if o == fld.Value {
					initial = i
				}
			}
			values[label] = fld.Options[initial]
			f.AddDropDown(label, fld.Options, initial, func(opt string, _ int) {
				values[label] = opt
			})
			continue
		}
		f.AddInputField(label, fld.Value, 20, nil, func(s string) {
			values[label] = strings.TrimSpace(s)
		})
	}

	dismiss := func() { pages.DismissModal(inputKey) }
	f.AddButton("OK", func() {
		if err := ok(values); err != nil {
			f.SetTitle(" " + title + " [red::]" + err.Error() + " ")
			return
		}
		dismiss()
	})
	f.AddButton("Cancel", dismiss)
	f.SetCancelFunc(dismiss)

	f.SetBorder(true)
	f.SetTitle(" " + title + " ")
	f.SetTitleColor(tcell.ColorAqua)
	f.SetBorderColor(tcell.ColorDarkCyan)

	pages.ShowModal(inputKey, centered(f, 50, 5+2*len(ff)))
}

func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
