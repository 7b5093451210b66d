// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package ui

import (
	"sort"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// SelectTable represents a table with selectable and markable rows.
type SelectTable struct {
	*tview.Table

	model Tabular
	marks map[string]struct{}
	mx    sync.RWMutex
}

// NewSelectTable returns a new selectable table.
func NewSelectTable() *SelectTable {
	return &SelectTable{
		Table: tview.NewTable(),
		marks: make(map[string]struct{}),
	}
}

// SetModel sets the data model.
func (s *SelectTable) SetModel(m Tabular) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.model = m
}

// GetModel returns the current model.
func (s *SelectTable) GetModel() Tabular {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.model
}

// GetSelectedItem returns the id of the selected row.
func (s *SelectTable) GetSelectedItem() string {
	row, _ := s.GetSelection()
	if row == 0 {
		return ""
	}

	cell := s.GetCell(row, 0)
	if cell == nil {
		return ""
	}
	if ref := cell.GetReference(); ref != nil {
		if id, ok := ref.(string); ok {
			return id
		}
	}

	return ""
}

// GetSelectedRowIndex returns the index of the selection within the page.
func (s *SelectTable) GetSelectedRowIndex() int {
	row, _ := s.GetSelection()
	return row - 1
}

// SelectFirstRow selects the first data row.
func (s *SelectTable) SelectFirstRow() {
	if s.GetRowCount() > 1 {
		s.Select(1, 0)
	}
}

// ClampSelection keeps the selection on a data row.
func (s *SelectTable) ClampSelection() {
	row, _ := s.GetSelection()
	switch n := s.GetRowCount(); {
	case n <= 1:
		return
	case row < 1:
		s.Select(1, 0)
	case row >= n:
		s.Select(n-1, 0)
	}
}

// ClearMarks clears all marks.
func (s *SelectTable) ClearMarks() {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.marks = make(map[string]struct{})
}

// ToggleMark toggles mark on current selection.
func (s *SelectTable) ToggleMark() {
	item := s.GetSelectedItem()
	if item == "" {
		return
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	if _, ok := s.marks[item]; ok {
		delete(s.marks, item)
	} else {
		s.marks[item] = struct{}{}
	}
}

// IsMarked checks if an item is marked.
func (s *SelectTable) IsMarked(item string) bool {
	s.mx.RLock()
	defer s.mx.RUnlock()
	_, ok := s.marks[item]
	return ok
}

// GetMarked returns all marked items, sorted.
func (s *SelectTable) GetMarked() []string {
	s.mx.RLock()
	defer s.mx.RUnlock()

	marked := make([]string, 0, len(s.marks))
	for k := range s.marks {
		marked = append(marked, k)
	}
	sort.Strings(marked)

	return marked
}

// showMessage displays a centered message with the given color.
func (s *SelectTable) showMessage(msg string, color tcell.Color) {
	s.Clear()
	cell := tview.NewTableCell(msg)
	cell.SetTextColor(color)
	cell.SetAlign(tview.AlignCenter)
	cell.SetSelectable(false)
	cell.SetExpansion(1)
	s.SetCell(0, 0, cell)
}
