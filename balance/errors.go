package balance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidConfig is returned for unit configuration outside its bands.
	ErrInvalidConfig = errors.New("invalid unit configuration")

	// ErrInvalidAdjustment is returned for malformed manual adjustments.
	ErrInvalidAdjustment = errors.New("invalid balance adjustment")

	// ErrMonthsOutOfOrder is returned when a chain is not strictly chronological.
	ErrMonthsOutOfOrder = errors.New("months out of chronological order")

	// ErrUnknownSource is returned for an hours source other than registry or roster.
	ErrUnknownSource = errors.New("unknown hours source")
)

// RangeError names the field and value that fell outside its band.
type RangeError struct {
	Field        string
	Value        decimal.Decimal
	Min          decimal.Decimal
	Max          decimal.Decimal
	MinExclusive bool

	kind error
}

func (e *RangeError) Error() string {
	open := "["
	if e.MinExclusive {
		open = "("
	}
	return fmt.Sprintf("%s: %s out of range %s%s, %s]", e.Field, e.Value, open, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return e.kind }

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrInvalidAdjustment) ||
		errors.Is(err, ErrMonthsOutOfOrder) ||
		errors.Is(err, ErrUnknownSource)
}
