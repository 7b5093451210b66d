package config

import "github.com/coffeelab/coffeelab/internal/config/data"

// DefaultRefreshRate is the default data refresh interval in seconds.
const DefaultRefreshRate = 5.0

// DefaultLogLevel is the default logging level.
const DefaultLogLevel = data.DefaultLogLevel

// NewFlags creates a new Flags instance.
// Values start out zero so Override only applies flags the user set.
func NewFlags() *data.Flags {
	return data.NewFlags()
}

// IsBoolSet returns true if a bool pointer is non-nil and true.
func IsBoolSet(b *bool) bool {
	return b != nil && *b
}

// IsStringSet returns true if a string pointer is non-nil and non-empty.
func IsStringSet(s *string) bool {
	return s != nil && *s != ""
}
