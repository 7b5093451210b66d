// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package ui

import "github.com/derailed/tcell/v2"

const confirmKey = "confirm"

// ConfirmFunc is called when user confirms action.
type ConfirmFunc func()

// Confirm is a Yes/No dialog guarding a mutation. Yes is the first button.
type Confirm struct {
	*Dialog

	confirmed bool
	onConfirm ConfirmFunc
	onCancel  func()
}

// NewConfirm creates a new confirmation dialog.
func NewConfirm(pages *Pages) *Confirm {
	c := Confirm{Dialog: NewDialog(pages, confirmKey).SetButtons([]string{"Yes", "No"})}
	c.SetButtonHandler(func(idx int, _ string) { c.answer(idx == 0) })
	c.SetDangerous(false)

	return &c
}

// SetMessage sets the question.
func (c *Confirm) SetMessage(msg string) *Confirm {
	c.Dialog.SetMessage(msg)
	return c
}

// SetDangerous paints the dialog red for destructive operations.
func (c *Confirm) SetDangerous(dangerous bool) *Confirm {
	if dangerous {
		c.SetColors(tcell.ColorRed, tcell.ColorRed, tcell.ColorWhite)
	} else {
		c.SetColors(tcell.ColorWhite, tcell.ColorDarkCyan, tcell.ColorWhite)
	}
	return c
}

// SetOnConfirm sets the callback for when user confirms.
func (c *Confirm) SetOnConfirm(fn ConfirmFunc) *Confirm {
	c.onConfirm = fn
	return c
}

// SetOnCancel sets the callback for when user cancels.
func (c *Confirm) SetOnCancel(fn func()) *Confirm {
	c.onCancel = fn
	return c
}

// IsConfirmed returns true if user confirmed the action.
func (c *Confirm) IsConfirmed() bool {
	return c.confirmed
}

func (c *Confirm) answer(yes bool) {
	c.confirmed = yes
	switch {
	case yes && c.onConfirm != nil:
		c.onConfirm()
	case !yes && c.onCancel != nil:
		c.onCancel()
	}
}

// ShowConfirm asks a yes/no question and runs ok on yes.
func ShowConfirm(pages *Pages, msg string, dangerous bool, ok ConfirmFunc) {
	NewConfirm(pages).
		SetMessage(msg).
		SetDangerous(dangerous).
		SetOnConfirm(ok).
		Show()
}
