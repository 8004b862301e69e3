package shift

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SECTOR
// =============================================================================

// Sector is the control position an interval was worked in.
type Sector string

const (
	SectorNone     Sector = ""
	SectorTower    Sector = "TWR"
	SectorApproach Sector = "APP"
	SectorControl  Sector = "ACC"
)

// Sectors lists the closed set of named sectors in display order.
var Sectors = []Sector{SectorTower, SectorApproach, SectorControl}

// ParseSector accepts a sector code case-insensitively; empty means none.
func ParseSector(s string) (Sector, error) {
	code := Sector(strings.ToUpper(strings.TrimSpace(s)))
	switch code {
	case SectorNone, SectorTower, SectorApproach, SectorControl:
		return code, nil
	}
	return SectorNone, fmt.Errorf("%w: %q", ErrInvalidSector, s)
}

func (s Sector) Label() string {
	if s == SectorNone {
		return "none"
	}
	return string(s)
}

// =============================================================================
// ENTRY - One registered worked interval (TimeRegistryEntry)
// =============================================================================

// Entry is a worked interval registered by a controller or a supervisor.
// Hours, Night and NonWorkingDay are derived; call Derive after any edit.
type Entry struct {
	ID       string
	PersonID string
	Date     Date
	Sector   Sector
	Start    Clock
	End      *Clock // nil = open, in-progress registration

	// Derived
	Hours         decimal.Decimal
	Night         bool
	NonWorkingDay bool

	Note      string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen reports whether the entry has no end time yet.
func (e Entry) IsOpen() bool { return e.End == nil }

// Range renders "HH:MM-HH:MM" (or "HH:MM-" when open).
func (e Entry) Range() string { return rangeString(e.Start, e.End) }

// Derive recomputes the derived fields of e. Open entries get zero hours.
// An entry is a night shift when it starts inside the night window or runs
// past midnight.
func Derive(e Entry, cal HolidayCalendar) Entry {
	e.NonWorkingDay = IsNonWorkingDay(e.Date, cal)
	if e.End == nil {
		e.Hours = decimal.Zero
		e.Night = IsNightWindow(e.Start)
		return e
	}
	e.Hours = Duration(e.Start, *e.End)
	e.Night = IsNightWindow(e.Start) || CrossesMidnight(e.Start, *e.End)
	return e
}

// ValidateInterval rejects closed intervals whose start equals their end.
func ValidateInterval(start Clock, end *Clock) error {
	if end != nil && *end == start {
		return fmt.Errorf("%w: %s-%s", ErrZeroLengthInterval, start.Display(), end.Display())
	}
	return nil
}

// ClockPtr is a helper for building closed entries.
func ClockPtr(c Clock) *Clock { return &c }
