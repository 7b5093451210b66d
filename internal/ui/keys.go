// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package ui

import (
	"fmt"

	"github.com/derailed/tcell/v2"
)

// Rune keys are carried as tcell.Key so they can share a KeyMap with
// special keys.
const (
	KeyHelp     tcell.Key = '?'
	KeySlash    tcell.Key = '/'
	KeyColon    tcell.Key = ':'
	KeyLBracket tcell.Key = '['
	KeyRBracket tcell.Key = ']'
	KeyPlus     tcell.Key = '+'
	KeyMinus    tcell.Key = '-'
	KeyShiftA   tcell.Key = 'A'
	KeyShiftD   tcell.Key = 'D'
	KeyShiftR   tcell.Key = 'R'
	KeyShiftS   tcell.Key = 'S'
	KeyA        tcell.Key = 'a'
	KeyB        tcell.Key = 'b'
	KeyD        tcell.Key = 'd'
	KeyE        tcell.Key = 'e'
	KeyP        tcell.Key = 'p'
	KeyQ        tcell.Key = 'q'
	KeyR        tcell.Key = 'r'
	KeyS        tcell.Key = 's'
	KeyX        tcell.Key = 'x'
	KeyY        tcell.Key = 'y'
)

// Shift-digit as sent by a US layout terminal, Shift-1 through Shift-9.
var shiftDigits = []rune{'!', '@', '#', '$', '%', '^', '&', '*', '('}

// SortKeyColumn returns the zero based column a Shift-digit key sorts on.
func SortKeyColumn(r rune) (int, bool) {
	for i, d := range shiftDigits {
		if d == r {
			return i, true
		}
	}
	return 0, false
}

// SortKeyName returns the mnemonic of the Shift-digit key for column i.
func SortKeyName(i int) string {
	return fmt.Sprintf("Shift-%d", i+1)
}

// AsKey maps a key event to the key used in a KeyMap.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}
	return tcell.Key(evt.Rune())
}

var keyNames = map[tcell.Key]string{
	KeyHelp:     "?",
	KeySlash:    "/",
	KeyColon:    ":",
	KeyLBracket: "[",
	KeyRBracket: "]",
	KeyPlus:     "+",
	KeyMinus:    "-",
}

// KeyName returns a human readable key name.
func KeyName(k tcell.Key) string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	if n, ok := tcell.KeyNames[k]; ok {
		return n
	}
	if k > 32 && k < 127 {
		return string(rune(k))
	}
	return fmt.Sprintf("Key[%d]", k)
}
