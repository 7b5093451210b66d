// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"strings"

	"github.com/coffeelab/coffeelab/internal/model"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// maxCrumbs caps the trail, older screens collapse into an ellipsis.
const maxCrumbs = 5

// Crumbs shows the trail of stacked screens, e.g. <orders> <describe:ORD-12>.
type Crumbs struct {
	*tview.TextView

	stack *model.Stack
}

// NewCrumbs returns a breadcrumb view tracking a navigation stack.
func NewCrumbs(stack *model.Stack) *Crumbs {
	c := Crumbs{
		stack:    stack,
		TextView: tview.NewTextView(),
	}
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextAlign(tview.AlignLeft)
	c.SetBorderPadding(0, 0, 1, 1)
	c.SetDynamicColors(true)

	return &c
}

// StackPushed indicates a new item was added.
func (c *Crumbs) StackPushed(model.Component) {
	c.SetText(CrumbsText(c.stack.Flatten()))
}

// StackPopped indicates an item was deleted.
func (c *Crumbs) StackPopped(_, _ model.Component) {
	c.SetText(CrumbsText(c.stack.Flatten()))
}

// StackTop indicates the top of the stack.
func (*Crumbs) StackTop(model.Component) {}

// CrumbsText renders screen names, highlighting the last one.
// Resource screens named group/resource show the resource only.
func CrumbsText(names []string) string {
	var b strings.Builder
	if len(names) > maxCrumbs {
		b.WriteString("[gray::-] … [-:-:-] ")
		names = names[len(names)-maxCrumbs:]
	}
	for i, n := range names {
		label := crumbLabel(n)
		if i == len(names)-1 {
			b.WriteString("[black:orange:b] <" + label + "> [-:-:-] ")
			continue
		}
		b.WriteString("[gray::-] <" + label + "> [-:-:-] ")
	}

	return strings.TrimSuffix(b.String(), " ")
}

func crumbLabel(name string) string {
	if kind, rest, ok := strings.Cut(name, ":"); ok {
		return strings.ToLower(kind) + ":" + tview.Escape(rest)
	}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}
