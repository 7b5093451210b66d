// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package model1

import "fmt"

// Error represents a table error.
type Error string

const (
	// ErrConfig matches every table configuration error.
	ErrConfig = Error("invalid table configuration")
	// ErrNoRow is returned when a row id is not part of the data.
	ErrNoRow = Error("no such row")
)

func (e Error) Error() string {
	return string(e)
}

// ConfigError reports an invalid table configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfig, e.Field, e.Reason)
}

// Is lets errors.Is match ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
