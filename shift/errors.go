/*
errors.go - Error types for interval arithmetic and conflict detection

ERROR CATEGORIES:
  1. Input validation - malformed times, dates, sectors, zero-length intervals
  2. Conflicts - overlapping intervals for the same person and day

Validation errors are raised at the boundary (ParseClock, ParseSector,
ValidateInterval). The arithmetic itself assumes validated input.
*/
package shift

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidTime is returned for a time string that is not a valid hhmm.
	ErrInvalidTime = errors.New("invalid time")

	// ErrInvalidDate is returned for unparseable dates or months.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidSector is returned for a sector outside the closed set.
	ErrInvalidSector = errors.New("invalid sector")

	// ErrZeroLengthInterval is returned when start equals end.
	ErrZeroLengthInterval = errors.New("interval start equals end")

	// ErrIntervalConflict is returned when an interval overlaps an existing one.
	ErrIntervalConflict = errors.New("interval conflict")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// TimeFormatError names the offending time string.
type TimeFormatError struct {
	Value  string
	Reason string
}

func (e *TimeFormatError) Error() string {
	return fmt.Sprintf("invalid time %q: %s", e.Value, e.Reason)
}

func (e *TimeFormatError) Unwrap() error { return ErrInvalidTime }

// ConflictError carries the candidate interval and the existing entry it hits.
type ConflictError struct {
	Candidate Candidate
	Existing  Entry
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("interval %s overlaps existing entry %s on %s",
		rangeString(e.Candidate.Start, e.Candidate.End),
		rangeString(e.Existing.Start, e.Existing.End),
		e.Existing.Date)
}

func (e *ConflictError) Unwrap() error { return ErrIntervalConflict }

func rangeString(start Clock, end *Clock) string {
	if end == nil {
		return start.Display() + "-"
	}
	return start.Display() + "-" + end.Display()
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidTime) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidSector) ||
		errors.Is(err, ErrZeroLengthInterval)
}
