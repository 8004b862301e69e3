package shift

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar day (registrations are keyed by day, never by instant)
// =============================================================================

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Date is a calendar day. The wrapped time is always UTC midnight so two
// Dates for the same day compare equal with ==.
type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the time-of-day of t, keeping the calendar day in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }
func (d Date) Equal(o Date) bool     { return d.Time.Equal(o.Time) }
func (d Date) Before(o Date) bool    { return d.Time.Before(o.Time) }
func (d Date) After(o Date) bool     { return d.Time.After(o.Time) }
func (d Date) AddDays(n int) Date    { return DateOf(d.Time.AddDate(0, 0, n)) }
func (d Date) AddMonths(n int) Date  { return DateOf(d.Time.AddDate(0, n, 0)) }
func (d Date) String() string        { return d.Time.Format(DateLayout) }
func (d Date) CalendarMonth() Month  { return Month{Year: d.Year(), Month: d.Month()} }
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// =============================================================================
// MONTH - The accounting period
// =============================================================================

// Month identifies one calendar month. Metrics are always computed per Month.
type Month struct {
	Year  int
	Month time.Month
}

func NewMonth(year int, month time.Month) Month { return Month{Year: year, Month: month} }

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: month %q", ErrInvalidDate, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) Start() Date { return NewDate(m.Year, m.Month, 1) }

func (m Month) End() Date {
	return DateOf(time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
}

func (m Month) Next() Month     { return m.Start().AddMonths(1).CalendarMonth() }
func (m Month) Previous() Month { return m.Start().AddMonths(-1).CalendarMonth() }

func (m Month) Contains(d Date) bool { return d.Year() == m.Year && d.Month() == m.Month }

func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

func (m Month) IsZero() bool   { return m.Year == 0 && m.Month == 0 }
func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)) }

// Days returns every day of the month in order.
func (m Month) Days() []Date {
	var days []Date
	for d := m.Start(); m.Contains(d); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
