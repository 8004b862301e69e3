/*
Package shift provides the interval arithmetic behind shift-hours accounting.

PURPOSE:
  Converts the 4-digit "hhmm" strings controllers type into minute offsets,
  turns start/end pairs into decimal hours, and classifies intervals as
  night work or work on a non-working day. Everything here is pure: no I/O,
  no clocks, no shared state.

KEY CONCEPTS IN THIS FILE (clock.go):
  - Clock: minutes since local midnight (0..1439)
  - Duration: elapsed hours, overnight when end < start
  - FormatHours: decimal hours rendered as HH:MM
  - Night window: [21:00, 24:00) and [00:00, 07:00)

OVERNIGHT RULE:
  An interval whose end is numerically before its start crosses midnight.
  2200 -> 0600 is 8 hours, never -16. Equal start and end is 0 hours; the
  accounting service rejects that case before it is stored.

SEE ALSO:
  - date.go: calendar days and months
  - holiday.go: non-working day classification
  - conflict.go: overlap detection between intervals
*/
package shift

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CLOCK - Minutes since local midnight
// =============================================================================

const (
	MinutesPerDay  = 24 * 60
	minutesPerHour = 60

	// NightStart and NightEnd bound the night window used for classification.
	NightStart Clock = 21 * 60
	NightEnd   Clock = 7 * 60
)

var (
	sixty = decimal.NewFromInt(minutesPerHour)
)

// Clock is a wall-clock time of day expressed in minutes since midnight.
type Clock int

// ParseClock validates and converts a 4-digit "hhmm" string.
func ParseClock(hhmm string) (Clock, error) {
	if len(hhmm) != 4 {
		return 0, &TimeFormatError{Value: hhmm, Reason: "must be 4 digits"}
	}
	for i := 0; i < len(hhmm); i++ {
		if hhmm[i] < '0' || hhmm[i] > '9' {
			return 0, &TimeFormatError{Value: hhmm, Reason: "must contain only digits"}
		}
	}
	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[2]-'0')*10 + int(hhmm[3]-'0')
	if h > 23 {
		return 0, &TimeFormatError{Value: hhmm, Reason: "hour out of range 00-23"}
	}
	if m > 59 {
		return 0, &TimeFormatError{Value: hhmm, Reason: "minute out of range 00-59"}
	}
	return Clock(h*minutesPerHour + m), nil
}

// MustParseClock is ParseClock for literals known to be valid.
func MustParseClock(hhmm string) Clock {
	c, err := ParseClock(hhmm)
	if err != nil {
		panic(err)
	}
	return c
}

// ToMinutes converts an "hhmm" string to minutes since midnight, or 0 when
// the string is not a valid clock.
func ToMinutes(hhmm string) int {
	c, err := ParseClock(hhmm)
	if err != nil {
		return 0
	}
	return c.Minutes()
}

func (c Clock) Minutes() int { return int(c) }
func (c Clock) Hour() int    { return int(c) / minutesPerHour }
func (c Clock) Minute() int  { return int(c) % minutesPerHour }

// String renders the storage form "hhmm".
func (c Clock) String() string { return fmt.Sprintf("%02d%02d", c.Hour(), c.Minute()) }

// Display renders "HH:MM".
func (c Clock) Display() string { return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute()) }

// =============================================================================
// DURATION
// =============================================================================

// span returns the minute range [start, end) with end shifted past midnight
// when the interval wraps.
func span(start, end Clock) (int, int) {
	s, e := int(start), int(end)
	if e < s {
		e += MinutesPerDay
	}
	return s, e
}

// ElapsedMinutes returns the minutes between start and end, overnight aware.
func ElapsedMinutes(start, end Clock) int {
	s, e := span(start, end)
	return e - s
}

// CrossesMidnight reports whether end falls on the following day.
func CrossesMidnight(start, end Clock) bool { return end < start }

// Duration returns the elapsed hours between start and end as a decimal.
// It is never negative.
func Duration(start, end Clock) decimal.Decimal {
	return decimal.NewFromInt(int64(ElapsedMinutes(start, end))).Div(sixty)
}

// FormatHours renders decimal hours as HH:MM, rounding the fraction to the
// nearest minute and carrying into the hour.
func FormatHours(h decimal.Decimal) string {
	sign := ""
	if h.IsNegative() {
		sign = "-"
		h = h.Neg()
	}
	whole := h.Floor()
	minutes := h.Sub(whole).Mul(sixty).Round(0).IntPart()
	hours := whole.IntPart()
	if minutes == minutesPerHour {
		hours++
		minutes = 0
	}
	return fmt.Sprintf("%s%02d:%02d", sign, hours, minutes)
}

// =============================================================================
// NIGHT WINDOW
// =============================================================================

// IsNightWindow reports whether c falls in [21:00, 24:00) or [00:00, 07:00).
func IsNightWindow(c Clock) bool {
	return c >= NightStart || c < NightEnd
}
