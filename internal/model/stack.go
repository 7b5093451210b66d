package model

import (
	"slices"
	"sync"
)

// Component represents a screen that can be stacked.
type Component interface {
	Name() string
	Start()
	Stop()
}

// StackListener listens to stack events.
type StackListener interface {
	StackPushed(Component)
	StackPopped(old, new Component)
	StackTop(Component)
}

// Stack tracks the screens the user navigated through. Only the top one runs.
type Stack struct {
	components []Component
	listeners  []StackListener
	mx         sync.RWMutex
}

// NewStack returns a new stack.
func NewStack() *Stack {
	return &Stack{}
}

// AddListener adds a stack listener and tells it about the current top.
func (s *Stack) AddListener(l StackListener) {
	s.mx.Lock()
	s.listeners = append(s.listeners, l)
	s.mx.Unlock()

	if top := s.Top(); top != nil {
		l.StackTop(top)
	}
}

// RemoveListener removes a stack listener.
func (s *Stack) RemoveListener(l StackListener) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if i := slices.Index(s.listeners, l); i >= 0 {
		s.listeners = slices.Delete(s.listeners, i, i+1)
	}
}

// Push stops the current top and starts c on top of it.
func (s *Stack) Push(c Component) {
	if top := s.Top(); top != nil {
		top.Stop()
	}

	s.mx.Lock()
	s.components = append(s.components, c)
	s.mx.Unlock()
	c.Start()

	for _, l := range s.snapshot() {
		l.StackPushed(c)
		l.StackTop(c)
	}
}

// Pop stops and removes the top component, restarting the one below.
func (s *Stack) Pop() (Component, bool) {
	s.mx.Lock()
	if len(s.components) == 0 {
		s.mx.Unlock()
		return nil, false
	}
	c := s.components[len(s.components)-1]
	s.components = s.components[:len(s.components)-1]
	s.mx.Unlock()
	c.Stop()

	top := s.Top()
	if top != nil {
		top.Start()
	}
	for _, l := range s.snapshot() {
		l.StackPopped(c, top)
		if top != nil {
			l.StackTop(top)
		}
	}

	return c, true
}

// Top returns the top component.
func (s *Stack) Top() Component {
	s.mx.RLock()
	defer s.mx.RUnlock()

	if len(s.components) == 0 {
		return nil
	}
	return s.components[len(s.components)-1]
}

// Empty checks if stack is empty.
func (s *Stack) Empty() bool {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return len(s.components) == 0
}

// IsLast indicates if stack only has one item left.
func (s *Stack) IsLast() bool {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return len(s.components) == 1
}

// Clear stops the top component and removes every component, top first.
// Components below the top are not restarted.
func (s *Stack) Clear() {
	s.mx.Lock()
	cc := s.components
	s.components = nil
	s.mx.Unlock()

	if len(cc) == 0 {
		return
	}
	cc[len(cc)-1].Stop()
	for i := len(cc) - 1; i >= 0; i-- {
		var below Component
		if i > 0 {
			below = cc[i-1]
		}
		for _, l := range s.snapshot() {
			l.StackPopped(cc[i], below)
		}
	}
}

// Flatten returns all component names, bottom first.
func (s *Stack) Flatten() []string {
	s.mx.RLock()
	defer s.mx.RUnlock()

	ss := make([]string, len(s.components))
	for i, c := range s.components {
		ss[i] = c.Name()
	}
	return ss
}

func (s *Stack) snapshot() []StackListener {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return slices.Clone(s.listeners)
}
