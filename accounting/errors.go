package accounting

import (
	"errors"

	"github.com/warp/shift-hours/balance"
	"github.com/warp/shift-hours/shift"
)

var (
	// ErrPersonNotFound is returned when a referenced person does not exist.
	ErrPersonNotFound = errors.New("person not found")

	// ErrEntryNotFound is returned when a referenced entry does not exist.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrUnknownShift is returned when an assignment names a shift code the
	// unit catalogue does not have.
	ErrUnknownShift = errors.New("unknown shift code")

	// ErrInvalidShift is returned when a shift type cannot join a catalogue
	// (empty code, zero-length interval).
	ErrInvalidShift = errors.New("invalid shift type")
)

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return shift.IsClientError(err) ||
		balance.IsClientError(err) ||
		errors.Is(err, ErrUnknownShift) ||
		errors.Is(err, ErrInvalidShift)
}

// IsConflict returns true for overlapping-interval errors.
func IsConflict(err error) bool {
	return errors.Is(err, shift.ErrIntervalConflict)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPersonNotFound) || errors.Is(err, ErrEntryNotFound)
}
