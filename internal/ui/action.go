// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package ui

import (
	"sort"
	"sync"

	"github.com/derailed/tcell/v2"
)

// ActionHandler handles a keyboard command.
type ActionHandler func(*tcell.EventKey) *tcell.EventKey

// ActionOpts tracks various action options.
type ActionOpts struct {
	Visible   bool
	Shared    bool
	Dangerous bool
}

// KeyAction represents a keyboard action.
type KeyAction struct {
	Description string
	Action      ActionHandler
	Opts        ActionOpts
}

// KeyMap tracks key to action mappings.
type KeyMap map[tcell.Key]KeyAction

// NewKeyAction returns a new keyboard action.
func NewKeyAction(d string, a ActionHandler, display bool) KeyAction {
	return KeyAction{
		Description: d,
		Action:      a,
		Opts:        ActionOpts{Visible: display},
	}
}

// NewDangerousKeyAction returns an action that is hidden in read-only mode.
func NewDangerousKeyAction(d string, a ActionHandler, display bool) KeyAction {
	ka := NewKeyAction(d, a, display)
	ka.Opts.Dangerous = true
	return ka
}

// KeyActions tracks the actions of a component.
type KeyActions struct {
	actions KeyMap
	mx      sync.RWMutex
}

// NewKeyActions returns a new instance.
func NewKeyActions() *KeyActions {
	return &KeyActions{actions: make(KeyMap)}
}

// Add registers an action.
func (a *KeyActions) Add(k tcell.Key, ka KeyAction) {
	a.mx.Lock()
	defer a.mx.Unlock()
	a.actions[k] = ka
}

// Bulk registers many actions at once.
func (a *KeyActions) Bulk(km KeyMap) {
	a.mx.Lock()
	defer a.mx.Unlock()
	for k, v := range km {
		a.actions[k] = v
	}
}

// Get fetches an action by key.
func (a *KeyActions) Get(k tcell.Key) (KeyAction, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()
	ka, ok := a.actions[k]
	return ka, ok
}

// Delete removes actions by key.
func (a *KeyActions) Delete(kk ...tcell.Key) {
	a.mx.Lock()
	defer a.mx.Unlock()
	for _, k := range kk {
		delete(a.actions, k)
	}
}

// ClearDanger removes every dangerous action.
func (a *KeyActions) ClearDanger() {
	a.mx.Lock()
	defer a.mx.Unlock()
	for k, v := range a.actions {
		if v.Opts.Dangerous {
			delete(a.actions, k)
		}
	}
}

// Len returns the number of actions.
func (a *KeyActions) Len() int {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return len(a.actions)
}

// Hints returns the visible actions as menu hints.
func (a *KeyActions) Hints() MenuHints {
	a.mx.RLock()
	defer a.mx.RUnlock()

	kk := make([]tcell.Key, 0, len(a.actions))
	for k := range a.actions {
		kk = append(kk, k)
	}
	sort.Slice(kk, func(i, j int) bool { return kk[i] < kk[j] })

	hh := make(MenuHints, 0, len(kk))
	for _, k := range kk {
		ka := a.actions[k]
		hh = append(hh, MenuHint{
			Mnemonic:    KeyName(k),
			Description: ka.Description,
			Visible:     ka.Opts.Visible,
			Dangerous:   ka.Opts.Dangerous,
		})
	}

	return hh
}
