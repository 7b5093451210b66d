// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package ui

// IndicatorMode represents the current input mode.
type IndicatorMode int

const (
	// ModeNormal is the default navigation mode.
	ModeNormal IndicatorMode = iota
	// ModeCommand is for entering commands (: prefix).
	ModeCommand
	// ModeFilter is for searching rows (/ prefix).
	ModeFilter
)

// Mode indicators.
const (
	IndicatorNormal  = "☕"
	IndicatorCommand = "☕"
	IndicatorFilter  = "🔍"
)

// Prefix returns the prompt prefix of the mode.
func (m IndicatorMode) Prefix() string {
	switch m {
	case ModeCommand:
		return ":"
	case ModeFilter:
		return "/"
	default:
		return ">"
	}
}

// Icon returns the prompt icon of the mode.
func (m IndicatorMode) Icon() string {
	if m == ModeFilter {
		return IndicatorFilter
	}
	return IndicatorNormal
}
