package reservation

import (
	"fmt"
	"strings"
)

// ValidationError reports missing or out-of-range input. Recoverable: the
// caller should ask for the offending piece again.
type ValidationError struct {
	Message string
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("validationError: missing fields: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("validationError: %s", e.Message)
}

// SlotUnavailableError reports capacity contention: the requested slot had
// no remaining capacity at evaluation time.
type SlotUnavailableError struct {
	Date string
	Slot string
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("slotUnavailableError: %s on %s is fully booked", e.Slot, e.Date)
}

// NotFoundError reports an unknown or already-cancelled reservation id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("notFoundError: no confirmed reservation %q", e.ID)
}

// ConfigurationError reports input that falls outside the configured slot
// grid, or an exhausted confirmation-number space.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configurationError: %s", e.Message)
}
