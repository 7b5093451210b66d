// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package model1

import "reflect"

// RowEvent tracks how a row changed since the previous snapshot.
type RowEvent struct {
	Kind ResEvent
	Row  Row
}

func NewRowEvent(kind ResEvent, row Row) RowEvent {
	return RowEvent{
		Kind: kind,
		Row:  row,
	}
}

// RowEvents a collection of row events indexed by row id.
type RowEvents struct {
	events []RowEvent
	index  map[string]int
}

func NewRowEvents(size int) *RowEvents {
	return &RowEvents{
		events: make([]RowEvent, 0, size),
		index:  make(map[string]int, size),
	}
}

// DiffRows classifies each row of next against the previous snapshot.
// Rows without identity are reported unchanged.
func DiffRows(prev map[string]Row, next Rows) *RowEvents {
	ee := NewRowEvents(len(next))
	for _, r := range next {
		id := r.ID()
		kind := EventUnchanged
		if id != "" {
			old, ok := prev[id]
			switch {
			case !ok:
				kind = EventAdd
			case !reflect.DeepEqual(old, r):
				kind = EventUpdate
			}
		}
		ee.Add(NewRowEvent(kind, r))
	}
	return ee
}

func (r *RowEvents) At(i int) (RowEvent, bool) {
	if i < 0 || i >= len(r.events) {
		return RowEvent{}, false
	}
	return r.events[i], true
}

func (r *RowEvents) Add(re RowEvent) {
	r.events = append(r.events, re)
	if id := re.Row.ID(); id != "" {
		r.index[id] = len(r.events) - 1
	}
}

func (r *RowEvents) Len() int {
	return len(r.events)
}

func (r *RowEvents) Empty() bool {
	return len(r.events) == 0
}

func (r *RowEvents) Get(id string) (RowEvent, bool) {
	i, ok := r.index[id]
	if !ok {
		return RowEvent{}, false
	}
	return r.At(i)
}

// KindOf returns the event kind recorded for a row.
func (r *RowEvents) KindOf(row Row) ResEvent {
	if re, ok := r.Get(row.ID()); ok {
		return re.Kind
	}
	return EventUnchanged
}

// Count returns the number of events of the given kind.
func (r *RowEvents) Count(kind ResEvent) int {
	var n int
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (r *RowEvents) Range(f func(int, RowEvent) bool) {
	for i, e := range r.events {
		if !f(i, e) {
			return
		}
	}
}
