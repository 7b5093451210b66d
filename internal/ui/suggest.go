// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package ui

import (
	"slices"
	"sort"
	"strings"
	"sync"
)

// DefaultHistorySize caps the remembered commands.
const DefaultHistorySize = 20

// Suggester completes command prefixes and remembers the commands that ran.
type Suggester struct {
	commands []string
	history  []string
	limit    int
	mx       sync.RWMutex
}

// NewSuggester returns a suggester for cmds keeping up to limit history entries.
func NewSuggester(cmds []string, limit int) *Suggester {
	if limit <= 0 {
		limit = DefaultHistorySize
	}
	s := Suggester{limit: limit}
	s.Set(cmds)

	return &s
}

// Set replaces the known commands.
func (s *Suggester) Set(cmds []string) {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.commands = s.commands[:0]
	for _, c := range cmds {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" && !slices.Contains(s.commands, c) {
			s.commands = append(s.commands, c)
		}
	}
	sort.Strings(s.commands)
}

// Add registers more commands.
func (s *Suggester) Add(cmds ...string) {
	s.mx.RLock()
	all := append(slices.Clone(s.commands), cmds...)
	s.mx.RUnlock()
	s.Set(all)
}

// Remember records cmd as the most recent command.
func (s *Suggester) Remember(cmd string) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	s.history = slices.DeleteFunc(s.history, func(h string) bool { return h == cmd })
	s.history = append([]string{cmd}, s.history...)
	if len(s.history) > s.limit {
		s.history = s.history[:s.limit]
	}
}

// History returns the remembered commands, most recent first.
func (s *Suggester) History() []string {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return slices.Clone(s.history)
}

// Suggest returns completions of prefix, recent commands first.
// The prefix itself is never suggested.
func (s *Suggester) Suggest(prefix string) []string {
	prefix = strings.ToLower(prefix)
	if prefix == "" {
		return nil
	}

	s.mx.RLock()
	defer s.mx.RUnlock()

	var out []string
	add := func(c string) {
		lc := strings.ToLower(c)
		if lc != prefix && strings.HasPrefix(lc, prefix) && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	for _, h := range s.history {
		add(h)
	}
	for _, c := range s.commands {
		add(c)
	}

	return out
}
