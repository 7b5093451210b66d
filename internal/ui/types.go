package ui

import (
	"context"
	"strconv"
	"strings"

	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/model"
	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/derailed/tview"
)

// Tabular represents a paged tabular model.
type Tabular interface {
	// ResourceID returns the resource the model lists.
	ResourceID() *dao.ResourceID

	// View returns the current page.
	View() model1.View

	// Empty returns true if model has no data.
	Empty() bool

	// SetSearchTerm filters the rows.
	SetSearchTerm(string)

	// SetSort sorts on a column, toggling the direction on repeat.
	SetSort(string)

	// GoToPage jumps to a page.
	GoToPage(int)

	// NextPage moves one page forward.
	NextPage()

	// PrevPage moves one page back.
	PrevPage()

	// Select picks a row of the current page.
	Select(int) (model1.Row, bool)

	// Refresh forces a new refresh.
	Refresh(context.Context) error

	// AddListener registers a model listener.
	AddListener(model.TableListener)

	// RemoveListener unregister a model listener.
	RemoveListener(model.TableListener)
}

// MenuHint represents a keyboard mnemonic.
type MenuHint struct {
	Mnemonic    string
	Description string
	Visible     bool
	Dangerous   bool
}

// IsBlank checks if menu hint is a placeholder.
func (m MenuHint) IsBlank() bool {
	return m.Mnemonic == "" && m.Description == "" && !m.Visible
}

// MenuHints represents a collection of hints.
type MenuHints []MenuHint

// Len returns the hints length.
func (h MenuHints) Len() int {
	return len(h)
}

// Swap swaps two elements.
func (h MenuHints) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// Less orders numeric mnemonics first, then safe actions before
// dangerous ones, then by description.
func (h MenuHints) Less(i, j int) bool {
	n, err1 := strconv.Atoi(h[i].Mnemonic)
	m, err2 := strconv.Atoi(h[j].Mnemonic)
	switch {
	case err1 == nil && err2 == nil:
		return n < m
	case err1 == nil:
		return true
	case err2 == nil:
		return false
	case h[i].Dangerous != h[j].Dangerous:
		return !h[i].Dangerous
	}
	return h[i].Description < h[j].Description
}

// Hinter represent a menu mnemonic provider.
type Hinter interface {
	// Hints returns a collection of menu hints.
	Hints() MenuHints
}

// Primitive represents a UI primitive.
type Primitive interface {
	tview.Primitive

	// Name returns the view name.
	Name() string
}

// Igniter represents a runnable view.
type Igniter interface {
	// Init initializes a component.
	Init(ctx context.Context) error

	// Start starts a component.
	Start()

	// Stop terminates a component.
	Stop()
}

// Component represents a ui component.
type Component interface {
	Primitive
	Igniter
	Hinter
}

// TrimCell removes superfluous padding from a table cell.
func TrimCell(tv *SelectTable, row, col int) string {
	c := tv.GetCell(row, col)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text)
}
