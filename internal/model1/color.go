// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package model1

import "github.com/gdamore/tcell/v2"

// Row colors. Change colors win over status colors for one refresh.
var (
	// AddColor marks rows that appeared since the last refresh.
	AddColor tcell.Color = tcell.ColorBlue

	// ModColor marks updated rows and in-progress statuses.
	ModColor tcell.Color = tcell.ColorYellow

	// KillColor marks removed rows and closed statuses.
	KillColor tcell.Color = tcell.ColorGray

	// PendingColor marks work waiting to start.
	PendingColor tcell.Color = tcell.ColorDarkCyan

	// CompletedColor marks work done or stock available.
	CompletedColor tcell.Color = tcell.ColorGreen

	// ErrColor marks missing or expired stock.
	ErrColor tcell.Color = tcell.ColorRed

	// StdColor is used for unchanged rows without a status.
	StdColor tcell.Color = tcell.ColorWhite
)

// EventColor returns the color of a row change.
func EventColor(kind ResEvent) tcell.Color {
	switch kind {
	case EventAdd:
		return AddColor
	case EventUpdate:
		return ModColor
	case EventDelete:
		return KillColor
	}
	return StdColor
}

// DefaultColorer colors rows by change kind only.
func DefaultColorer(_ Columns, re RowEvent) tcell.Color {
	return EventColor(re.Kind)
}
