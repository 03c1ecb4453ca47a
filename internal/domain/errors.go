package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for pricing runs.
var (
	// ErrConfiguration indicates a run was rejected before any simulation started.
	ErrConfiguration = errors.New("zcbond: invalid configuration")

	// ErrRandomSource indicates the normal variate provider could not produce a sample.
	ErrRandomSource = errors.New("zcbond: random source failure")
)

// ConfigurationError names the offending setting.
type ConfigurationError struct {
	Field  string
	Reason string
}

// NewConfigurationError builds a ConfigurationError with a formatted reason.
func NewConfigurationError(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// RandomSourceError records where in a simulation the provider failed.
// Path is -1 for draws outside the Monte Carlo loop (spot rate, diagnostic path).
type RandomSourceError struct {
	Path int
	Step int
	Err  error
}

func (e *RandomSourceError) Error() string {
	if e.Path < 0 {
		return fmt.Sprintf("random source failed at step %d: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("random source failed on path %d at step %d: %v", e.Path, e.Step, e.Err)
}

func (e *RandomSourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRandomSource}
	}
	return []error{ErrRandomSource, e.Err}
}
