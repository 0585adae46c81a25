package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimezone is returned when the configured zone is not an
	// IANA timezone name.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrConfig matches every *ConfigError via errors.Is.
	ErrConfig = errors.New("calendar configuration error")
)

// ConfigError reports a configuration value the engine cannot accept.
type ConfigError struct {
	// Key is the configuration key the value came from.
	Key string
	// Value is the offending value.
	Value any
	// Reason is a short human-readable explanation.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("calendar: %s: %s (got %#v)", e.Key, e.Reason, e.Value)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
