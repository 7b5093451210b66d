// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/google/uuid"
)

// DefaultFlashDelay is how long a message stays up.
const DefaultFlashDelay = 4 * time.Second

// FlashLevel represents a message severity.
type FlashLevel int

const (
	// FlashInfo is a plain notification.
	FlashInfo FlashLevel = iota
	// FlashWarn needs attention.
	FlashWarn
	// FlashErr reports a failure.
	FlashErr
)

func (l FlashLevel) color() tcell.Color {
	switch l {
	case FlashWarn:
		return tcell.ColorOrange
	case FlashErr:
		return tcell.ColorOrangeRed
	default:
		return tcell.ColorNavajoWhite
	}
}

func (l FlashLevel) icon() string {
	switch l {
	case FlashWarn:
		return "😗"
	case FlashErr:
		return "😡"
	default:
		return "😎"
	}
}

// FlashMessage is one notification.
type FlashMessage struct {
	ID    string
	Level FlashLevel
	Text  string
	At    time.Time
}

// IsZero returns true when no message is shown.
func (m FlashMessage) IsZero() bool {
	return m.ID == ""
}

// Flash shows transient notifications below the main view.
type Flash struct {
	*tview.TextView

	current FlashMessage
	delay   time.Duration
	queueFn func(func())
	mx      sync.RWMutex
}

// NewFlash returns a new flash view.
func NewFlash() *Flash {
	f := Flash{
		TextView: tview.NewTextView(),
		delay:    DefaultFlashDelay,
	}
	f.SetTextColor(tcell.ColorNavajoWhite)
	f.SetTextAlign(tview.AlignCenter)
	f.SetBorderPadding(0, 0, 1, 1)
	f.SetBackgroundColor(tcell.ColorDefault)

	return &f
}

// SetQueueFn sets how the auto clear reaches the UI goroutine.
func (f *Flash) SetQueueFn(q func(func())) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.queueFn = q
}

// SetDelay changes how long messages stay up.
func (f *Flash) SetDelay(d time.Duration) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.delay = d
}

// Info displays an info message.
func (f *Flash) Info(msg string) string {
	return f.SetMessage(FlashInfo, msg)
}

// Infof displays a formatted info message.
func (f *Flash) Infof(format string, args ...any) string {
	return f.Info(fmt.Sprintf(format, args...))
}

// Warn displays a warning message.
func (f *Flash) Warn(msg string) string {
	return f.SetMessage(FlashWarn, msg)
}

// Err displays an error message.
func (f *Flash) Err(err error) string {
	return f.SetMessage(FlashErr, err.Error())
}

// Last returns the message on display.
func (f *Flash) Last() FlashMessage {
	f.mx.RLock()
	defer f.mx.RUnlock()
	return f.current
}

// SetMessage displays a message and returns its id. The message clears
// itself unless a newer one replaced it.
func (f *Flash) SetMessage(level FlashLevel, msg string) string {
	m := FlashMessage{
		ID:    uuid.NewString(),
		Level: level,
		Text:  msg,
		At:    time.Now(),
	}

	f.mx.Lock()
	f.current = m
	delay := f.delay
	f.mx.Unlock()

	f.SetTextColor(level.color())
	f.SetText(level.icon() + " " + msg)
	if delay > 0 {
		time.AfterFunc(delay, func() { f.expire(m.ID) })
	}

	return m.ID
}

// Clear removes the message on display.
func (f *Flash) Clear() {
	f.mx.Lock()
	f.current = FlashMessage{}
	f.mx.Unlock()
	f.TextView.Clear()
}

func (f *Flash) expire(id string) {
	f.mx.RLock()
	stale := f.current.ID != id
	q := f.queueFn
	f.mx.RUnlock()
	if stale {
		return
	}

	wipe := func() {
		if f.Last().ID == id {
			f.Clear()
		}
	}
	if q == nil {
		wipe()
		return
	}
	q(wipe)
}
