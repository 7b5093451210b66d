package ui

import (
	"github.com/derailed/tcell/v2"
	gtcell "github.com/gdamore/tcell/v2"
)

// AsColor converts a row color to the terminal color used by tview.
func AsColor(c gtcell.Color) tcell.Color {
	if c == gtcell.ColorDefault {
		return tcell.ColorDefault
	}
	hex := c.Hex()
	if hex < 0 {
		return tcell.ColorDefault
	}
	return tcell.NewHexColor(hex)
}
