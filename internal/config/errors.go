package config

import "fmt"

// Error represents a config error.
type Error string

// Error returns the error text.
func (e Error) Error() string {
	return string(e)
}

// ErrConfig matches every configuration error.
const ErrConfig = Error("invalid configuration")

// ConfigError reports an invalid setting.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

// Is matches ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
