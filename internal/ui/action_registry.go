// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package ui

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/derailed/tcell/v2"
)

// ActionHandlerFunc runs a resource action and returns a status message.
// in holds the values entered in the action dialog, keyed by label.
type ActionHandlerFunc func(ctx context.Context, a dao.Accessor, row model1.Row, in map[string]string) (string, error)

// ResourceAction represents an action that can be performed on a resource.
type ResourceAction struct {
	Key         tcell.Key
	Name        string
	Description string
	Dangerous   bool
	Inputs      func(model1.Row) []InputField
	Validate    func(map[string]string) error
	Enabled     func(model1.Row) bool
	Handler     ActionHandlerFunc
}

// Allowed returns true when the action applies to row.
func (a ResourceAction) Allowed(row model1.Row) bool {
	return a.Enabled == nil || a.Enabled(row)
}

// Check validates dialog values before the action runs.
func (a ResourceAction) Check(in map[string]string) error {
	if a.Validate == nil {
		return nil
	}
	return a.Validate(in)
}

// ConfirmMessage returns the question asked before a dangerous action.
func (a ResourceAction) ConfirmMessage(row model1.Row) string {
	return fmt.Sprintf("%s %s?", a.Name, RowLabel(row))
}

var (
	actionRegistry = map[string][]ResourceAction{}
	actionMx       sync.RWMutex
)

// RegisterActions registers actions for a resource type.
func RegisterActions(rid *dao.ResourceID, actions []ResourceAction) {
	actionMx.Lock()
	defer actionMx.Unlock()

	aa := make([]ResourceAction, len(actions))
	copy(aa, actions)
	sort.SliceStable(aa, func(i, j int) bool { return aa[i].Key < aa[j].Key })
	actionRegistry[rid.String()] = aa
}

// GetActions returns available actions for a resource type.
func GetActions(rid *dao.ResourceID) []ResourceAction {
	if rid == nil {
		return nil
	}

	actionMx.RLock()
	defer actionMx.RUnlock()
	return actionRegistry[rid.String()]
}

// GetAction returns a specific action by key for a resource type.
func GetAction(rid *dao.ResourceID, key tcell.Key) *ResourceAction {
	actions := GetActions(rid)
	for i := range actions {
		if actions[i].Key == key {
			return &actions[i]
		}
	}
	return nil
}

// RowLabel returns a human name for a row.
func RowLabel(row model1.Row) string {
	for _, k := range []string{"orderNumber", "billNumber", "productName", "name", "productId"} {
		if s := row.String(k); s != "" {
			return s
		}
	}
	return row.ID()
}
