package ui

import (
	"slices"
	"sync"

	"github.com/derailed/tview"
)

type page struct {
	name string
	view tview.Primitive
}

// Pages stacks full screen views and modal overlays.
// Pushing a name already on the stack moves it to the top.
type Pages struct {
	*tview.Pages

	pages  []page
	modals []string
	mx     sync.RWMutex
}

// NewPages returns a new pages manager.
func NewPages() *Pages {
	return &Pages{Pages: tview.NewPages()}
}

func (p *Pages) indexOf(name string) int {
	return slices.IndexFunc(p.pages, func(pg page) bool { return pg.name == name })
}

// Push shows a page on top of the stack.
func (p *Pages) Push(name string, view tview.Primitive) {
	p.mx.Lock()
	if i := p.indexOf(name); i >= 0 {
		p.pages = slices.Delete(p.pages, i, i+1)
	}
	p.pages = append(p.pages, page{name: name, view: view})
	p.mx.Unlock()

	p.AddPage(name, view, true, true)
	p.SwitchToPage(name)
}

// Pop drops the top page and returns the name of the one now showing.
func (p *Pages) Pop() (string, bool) {
	p.mx.Lock()
	n := len(p.pages)
	if n == 0 {
		p.mx.Unlock()
		return "", false
	}
	gone := p.pages[n-1].name
	p.pages = p.pages[:n-1]
	var top string
	if n > 1 {
		top = p.pages[n-2].name
	}
	p.mx.Unlock()

	p.RemovePage(gone)
	if top != "" {
		p.SwitchToPage(top)
	}

	return top, true
}

func (p *Pages) top() (page, bool) {
	p.mx.RLock()
	defer p.mx.RUnlock()

	if len(p.pages) == 0 {
		return page{}, false
	}
	return p.pages[len(p.pages)-1], true
}

// Current returns the name of the top page.
func (p *Pages) Current() string {
	pg, _ := p.top()
	return pg.name
}

// CurrentPage returns the top page.
func (p *Pages) CurrentPage() tview.Primitive {
	pg, _ := p.top()
	return pg.view
}

// StackSize returns the stack depth.
func (p *Pages) StackSize() int {
	p.mx.RLock()
	defer p.mx.RUnlock()
	return len(p.pages)
}

// ShowModal overlays a dialog on the current page.
func (p *Pages) ShowModal(name string, m tview.Primitive) {
	p.mx.Lock()
	p.modals = append(p.modals, name)
	p.mx.Unlock()

	p.AddPage(name, m, true, true)
}

// DismissModal removes a dialog.
func (p *Pages) DismissModal(name string) {
	p.mx.Lock()
	p.modals = slices.DeleteFunc(p.modals, func(s string) bool { return s == name })
	p.mx.Unlock()

	p.RemovePage(name)
}

// HasModal returns true while a dialog is shown.
func (p *Pages) HasModal() bool {
	p.mx.RLock()
	defer p.mx.RUnlock()
	return len(p.modals) > 0
}

// ClearStack removes every page, leaving dialogs alone.
func (p *Pages) ClearStack() {
	p.mx.Lock()
	gone := p.pages
	p.pages = nil
	p.mx.Unlock()

	for _, pg := range gone {
		p.RemovePage(pg.name)
	}
}
