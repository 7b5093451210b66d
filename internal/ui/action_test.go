// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package ui

import (
	"testing"

	"github.com/derailed/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func noop(*tcell.EventKey) *tcell.EventKey { return nil }

func TestKeyActions(t *testing.T) {
	aa := NewKeyActions()
	aa.Add(KeyA, NewKeyAction("Advance", noop, true))
	aa.Bulk(KeyMap{
		tcell.KeyCtrlD: NewDangerousKeyAction("Delete", noop, true),
		KeySlash:       NewKeyAction("Search", noop, false),
	})
	assert.Equal(t, 3, aa.Len())

	a, ok := aa.Get(KeyA)
	assert.True(t, ok)
	assert.Equal(t, "Advance", a.Description)

	aa.ClearDanger()
	assert.Equal(t, 2, aa.Len())
	_, ok = aa.Get(tcell.KeyCtrlD)
	assert.False(t, ok)

	aa.Delete(KeyA)
	assert.Equal(t, 1, aa.Len())
}

func TestKeyActionsHints(t *testing.T) {
	aa := NewKeyActions()
	aa.Bulk(KeyMap{
		KeyA:           NewKeyAction("Advance", noop, true),
		tcell.KeyCtrlD: NewKeyAction("Delete", noop, true),
		KeySlash:       NewKeyAction("Search", noop, false),
	})

	assert.Equal(t, MenuHints{
		{Mnemonic: "Ctrl-D", Description: "Delete", Visible: true},
		{Mnemonic: "/", Description: "Search"},
		{Mnemonic: "a", Description: "Advance", Visible: true},
	}, aa.Hints())
}

func TestSortKeyColumn(t *testing.T) {
	uu := map[string]struct {
		r   rune
		col int
		ok  bool
	}{
		"first": {r: '!', col: 0, ok: true},
		"third": {r: '#', col: 2, ok: true},
		"ninth": {r: '(', col: 8, ok: true},
		"digit": {r: '1'},
		"alpha": {r: 'a'},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			col, ok := SortKeyColumn(u.r)
			assert.Equal(t, u.ok, ok)
			assert.Equal(t, u.col, col)
		})
	}
	assert.Equal(t, "Shift-3", SortKeyName(2))
}

func TestKeyName(t *testing.T) {
	uu := map[string]struct {
		k tcell.Key
		e string
	}{
		"rune":    {k: KeyShiftR, e: "R"},
		"bracket": {k: KeyLBracket, e: "["},
		"ctrl":    {k: tcell.KeyCtrlR, e: "Ctrl-R"},
		"enter":   {k: tcell.KeyEnter, e: "Enter"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, KeyName(u.k))
		})
	}
}

func TestAsKey(t *testing.T) {
	assert.Equal(t, KeyP, AsKey(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))
	assert.Equal(t, tcell.KeyEsc, AsKey(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone)))
}

func TestMenuHintsSort(t *testing.T) {
	hh := MenuHints{
		{Mnemonic: "b", Description: "Bill"},
		{Mnemonic: "2", Description: "Two"},
		{Mnemonic: "a", Description: "Advance"},
		{Mnemonic: "1", Description: "One"},
	}
	assert.True(t, hh.Less(3, 1))
	assert.True(t, hh.Less(1, 0))
	assert.True(t, hh.Less(2, 0))
	assert.False(t, hh.Less(0, 3))

	dd := MenuHints{
		{Mnemonic: "ctrl-d", Description: "Advance", Dangerous: true},
		{Mnemonic: "x", Description: "Changes"},
	}
	assert.True(t, dd.Less(1, 0))
	assert.False(t, dd.Less(0, 1))
}
