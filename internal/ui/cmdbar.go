// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// DefaultSearchDebounce delays live search while the user types.
const DefaultSearchDebounce = 250 * time.Millisecond

var defaultCommands = []string{
	"orders",
	"bills",
	"stock",
	"alerts",
	"dashboard",
	"help",
	"quit",
}

// CmdBar is the prompt above the content. In command mode it completes
// commands with ghost text and recalls history, in filter mode it searches
// the current table as the user types.
type CmdBar struct {
	*tview.TextView

	mode       IndicatorMode
	isActive   bool
	text       []rune
	filterText string
	suggest    *Suggester
	matches    []string
	matchIdx   int
	histIdx    int
	debounce   time.Duration
	timer      *time.Timer
	cmdFn      func(string)
	filterFn   func(string)
	cancelFn   func()
	activeFn   func(bool)
	mx         sync.RWMutex
}

// NewCmdBar creates a new command bar.
func NewCmdBar() *CmdBar {
	c := CmdBar{
		TextView: tview.NewTextView(),
		mode:     ModeNormal,
		suggest:  NewSuggester(defaultCommands, DefaultHistorySize),
		debounce: DefaultSearchDebounce,
		histIdx:  -1,
	}

	c.SetBorder(true)
	c.SetBorderColor(tcell.ColorDarkCyan)
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextColor(tcell.ColorWhite)
	c.SetDynamicColors(true)
	c.SetWrap(false)
	c.SetInputCapture(c.keyboard)
	c.render()

	return &c
}

func (c *CmdBar) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if !c.IsActive() {
		return evt
	}

	switch evt.Key() {
	case tcell.KeyEnter:
		c.execute()
	case tcell.KeyEsc:
		c.cancel()
	case tcell.KeyTab, tcell.KeyRight:
		c.accept()
	case tcell.KeyUp:
		c.cycle(-1)
	case tcell.KeyDown:
		c.cycle(1)
	case tcell.KeyCtrlU, tcell.KeyCtrlW:
		c.edit(func([]rune) []rune { return nil })
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		c.edit(func(rr []rune) []rune {
			if len(rr) == 0 {
				return rr
			}
			return rr[:len(rr)-1]
		})
	case tcell.KeyRune:
		r := evt.Rune()
		c.edit(func(rr []rune) []rune { return append(rr, r) })
	default:
		return evt
	}

	return nil
}

// edit changes the input then refreshes completions and the live search.
func (c *CmdBar) edit(fn func([]rune) []rune) {
	c.mx.Lock()
	c.text = fn(c.text)
	c.histIdx = -1
	c.refreshMatches()
	c.mx.Unlock()

	c.render()
	c.scheduleSearch()
}

// refreshMatches must be called with the lock held.
func (c *CmdBar) refreshMatches() {
	c.matches, c.matchIdx = nil, 0
	if c.mode == ModeCommand {
		c.matches = c.suggest.Suggest(string(c.text))
	}
}

func (c *CmdBar) clearMatches() {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.matches, c.matchIdx = nil, 0
}

// accept takes the ghost suggestion.
func (c *CmdBar) accept() {
	c.mx.Lock()
	if s := c.ghostLocked(); s != "" {
		c.text = []rune(s)
		c.matches, c.matchIdx = nil, 0
	}
	c.mx.Unlock()
	c.render()
}

// cycle walks the completions, or the history when there is nothing to complete.
func (c *CmdBar) cycle(step int) {
	c.mx.Lock()
	switch {
	case len(c.matches) > 0:
		c.matchIdx = (c.matchIdx + step + len(c.matches)) % len(c.matches)
	case c.mode == ModeCommand:
		hh := c.suggest.History()
		if len(hh) > 0 {
			// Up goes back in time.
			c.histIdx = min(max(c.histIdx-step, 0), len(hh)-1)
			c.text = []rune(hh[c.histIdx])
		}
	}
	c.mx.Unlock()
	c.render()
}

func (c *CmdBar) ghostLocked() string {
	if len(c.matches) == 0 {
		return ""
	}
	return c.matches[c.matchIdx]
}

func (c *CmdBar) render() {
	c.mx.RLock()
	text, ghost, mode := string(c.text), c.ghostLocked(), c.mode
	c.mx.RUnlock()

	c.Clear()
	line := fmt.Sprintf("%s%s [::b]%s", mode.Icon(), mode.Prefix(), tview.Escape(text))
	if rest, ok := strings.CutPrefix(strings.ToLower(ghost), strings.ToLower(text)); ok && rest != "" {
		line += "[gray::]" + tview.Escape(rest) + "[-::]"
	}
	fmt.Fprint(c.TextView, line)
}

// getSuggestions returns the completions of text.
func (c *CmdBar) getSuggestions(text string) []string {
	return c.suggest.Suggest(text)
}

// AddCommands adds commands to the completions.
func (c *CmdBar) AddCommands(cmds []string) {
	c.suggest.Add(cmds...)
}

// SetCommands replaces the completions.
func (c *CmdBar) SetCommands(cmds []string) {
	c.suggest.Set(cmds)
}

// History returns the commands run from the bar, most recent first.
func (c *CmdBar) History() []string {
	return c.suggest.History()
}

// SetDebounce changes the live search delay. Zero searches on Enter only.
func (c *CmdBar) SetDebounce(d time.Duration) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.debounce = d
}

// scheduleSearch runs the search callback once the user stops typing.
func (c *CmdBar) scheduleSearch() {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.mode != ModeFilter || c.filterFn == nil || c.debounce <= 0 {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	text, fn := string(c.text), c.filterFn
	c.timer = time.AfterFunc(c.debounce, func() { fn(text) })
}

func (c *CmdBar) stopTimer() {
	c.mx.Lock()
	defer c.mx.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// GetText returns the current input text.
func (c *CmdBar) GetText() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return string(c.text)
}

// SetText sets the input text.
func (c *CmdBar) SetText(s string) {
	c.mx.Lock()
	c.text = []rune(s)
	c.mx.Unlock()
	c.render()
}

// Activate enters command or filter mode.
func (c *CmdBar) Activate(mode IndicatorMode) {
	c.ActivateWith(mode, "")
}

// ActivateWith enters a mode with a prefilled input, e.g. the active search.
func (c *CmdBar) ActivateWith(mode IndicatorMode, text string) {
	c.mx.Lock()
	c.mode, c.isActive = mode, true
	c.text, c.histIdx = []rune(text), -1
	c.mx.Unlock()
	c.clearMatches()
	c.render()

	if c.activeFn != nil {
		c.activeFn(true)
	}
}

// Deactivate exits input mode and returns to normal.
func (c *CmdBar) Deactivate() {
	c.mx.Lock()
	c.mode, c.isActive = ModeNormal, false
	c.text = c.text[:0]
	c.mx.Unlock()
	c.clearMatches()
	c.render()

	if c.activeFn != nil {
		c.activeFn(false)
	}
}

// execute runs the command or confirms the filter.
func (c *CmdBar) execute() {
	text := c.GetText()

	switch c.Mode() {
	case ModeCommand:
		if text = strings.TrimSpace(text); text != "" {
			c.suggest.Remember(text)
			if c.cmdFn != nil {
				c.cmdFn(":" + text)
			}
		}
	case ModeFilter:
		c.stopTimer()
		c.mx.Lock()
		c.filterText = text
		c.mx.Unlock()
		if c.filterFn != nil {
			c.filterFn(text)
		}
	}

	c.Deactivate()
}

// cancel aborts the current input.
func (c *CmdBar) cancel() {
	c.stopTimer()
	if c.Mode() == ModeFilter && c.cancelFn != nil {
		c.cancelFn()
	}
	c.Deactivate()
}

// IsActive returns whether the command bar is accepting input.
func (c *CmdBar) IsActive() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.isActive
}

// Mode returns the current mode.
func (c *CmdBar) Mode() IndicatorMode {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.mode
}

// SetCommandFn sets the callback for command execution.
func (c *CmdBar) SetCommandFn(fn func(string)) {
	c.cmdFn = fn
}

// SetFilterFn sets the callback for filter text changes.
func (c *CmdBar) SetFilterFn(fn func(string)) {
	c.filterFn = fn
}

// SetCancelFn sets the callback for when filter is cancelled.
func (c *CmdBar) SetCancelFn(fn func()) {
	c.cancelFn = fn
}

// SetActiveFn sets the callback for when active state changes.
func (c *CmdBar) SetActiveFn(fn func(bool)) {
	c.activeFn = fn
}

// GetFilterText returns the last confirmed filter.
func (c *CmdBar) GetFilterText() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.filterText
}

// ClearFilter clears the filter text.
func (c *CmdBar) ClearFilter() {
	c.mx.Lock()
	c.filterText = ""
	c.mx.Unlock()
	if c.filterFn != nil {
		c.filterFn("")
	}
}
