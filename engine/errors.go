package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRange is returned by the partitioners when start > end.
	// Always fatal to the call, never retried.
	ErrInvalidRange = errors.New("invalid range: start date after end date")

	// ErrInvalidPeriodDays is returned when a period length below one day
	// is requested.
	ErrInvalidPeriodDays = errors.New("period length must be at least one day")
)

// RangeError carries the offending bounds for an invalid date range.
type RangeError struct {
	Start Date
	End   Date
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range: start %s after end %s", e.Start, e.End)
}

func (e *RangeError) Unwrap() error { return ErrInvalidRange }
