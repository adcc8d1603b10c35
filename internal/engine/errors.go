package engine

import (
	"errors"
	"fmt"

	"nestegg/internal/core"
	"nestegg/internal/limits"
)

// ConfigurationError marks a fault in the deployment, not the client
// data: an archetype with no registered strategy, or a limit table
// missing an expected entry. It is fatal for the affected client and
// must reach an operator; it is never silently defaulted.
type ConfigurationError struct {
	ClientID string
	Err      error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for client %s: %v", e.ClientID, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is (or wraps) a
// ConfigurationError. Limit-table lookup failures count as one.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce) ||
		errors.Is(err, limits.ErrMissingEntry) ||
		errors.Is(err, core.ErrUnknownArchetype)
}
