/*
store.go - Persistence interfaces consumed by the accounting service

PURPOSE:
  Defines the boundary between the accounting service and the database.
  The engine packages (shift, balance) never see these interfaces; the
  service loads plain records through them and hands them to the engine.

KEY INTERFACES:
  PersonStore:     Controllers and the unit they belong to
  EntryStore:      Registered worked intervals
  RosterStore:     Shift catalogue and roster assignments
  UnitStore:       Unit configuration
  AdjustmentStore: Manual SA overrides, unique per (person, month)
  MetricsStore:    Computed monthly rows, the carry-forward source
  HolidayStore:    Unit holidays

NOT-FOUND CONVENTION:
  Getters return (nil, nil) when the record does not exist. Absence is a
  valid business state (new hire, unconfigured unit) and the service turns
  it into defaults, never into an error.

IMPLEMENTATIONS:
  - store/sqlite: SQLite (production)
  - store/memory: in-memory (tests, demos)

SEE ALSO:
  - service.go: uses these interfaces
*/
package accounting

import (
	"context"

	"github.com/warp/shift-hours/balance"
	"github.com/warp/shift-hours/shift"
)

// Person is a controller on a unit roster.
type Person struct {
	ID     string
	Name   string
	UnitID string
}

type PersonStore interface {
	SavePerson(ctx context.Context, p Person) error
	GetPerson(ctx context.Context, id string) (*Person, error)
	ListPersons(ctx context.Context, unitID string) ([]Person, error)
}

type EntryStore interface {
	SaveEntry(ctx context.Context, e shift.Entry) error
	GetEntry(ctx context.Context, id string) (*shift.Entry, error)
	DeleteEntry(ctx context.Context, id string) error

	// EntriesForDay returns the entries of one person and day, in creation order.
	EntriesForDay(ctx context.Context, personID string, date shift.Date) ([]shift.Entry, error)

	// EntriesForMonth returns the entries of one person and month, ordered by date and start.
	EntriesForMonth(ctx context.Context, personID string, month shift.Month) ([]shift.Entry, error)
}

type RosterStore interface {
	SaveShiftType(ctx context.Context, unitID string, st shift.ShiftType) error
	ShiftTypes(ctx context.Context, unitID string) ([]shift.ShiftType, error)
	SaveAssignment(ctx context.Context, a shift.Assignment) error
	AssignmentsForMonth(ctx context.Context, personID string, month shift.Month) ([]shift.Assignment, error)
}

type UnitStore interface {
	SaveUnitConfig(ctx context.Context, cfg balance.UnitConfig) error
	GetUnitConfig(ctx context.Context, unitID string) (*balance.UnitConfig, error)
}

type AdjustmentStore interface {
	// SaveAdjustment inserts or replaces the adjustment of (person, month).
	SaveAdjustment(ctx context.Context, a balance.Adjustment) error
	GetAdjustment(ctx context.Context, personID string, month shift.Month) (*balance.Adjustment, error)
}

type MetricsStore interface {
	// SaveMetrics inserts or replaces the row of (person, month).
	SaveMetrics(ctx context.Context, m balance.Metrics) error
	GetMetrics(ctx context.Context, personID string, month shift.Month) (*balance.Metrics, error)

	// LatestMetricsBefore returns the most recent row strictly before month.
	LatestMetricsBefore(ctx context.Context, personID string, month shift.Month) (*balance.Metrics, error)

	// MetricsRange returns rows in [from, to], chronologically.
	MetricsRange(ctx context.Context, personID string, from, to shift.Month) ([]balance.Metrics, error)
}

type HolidayStore interface {
	// SaveHoliday inserts h, or updates the holiday with the same unit, date
	// and name. It returns the stored holiday, whose ID is the existing one
	// on update.
	SaveHoliday(ctx context.Context, h shift.Holiday) (shift.Holiday, error)
	DeleteHoliday(ctx context.Context, id string) error
	HolidaysForUnit(ctx context.Context, unitID string) ([]shift.Holiday, error)
}

// Store is everything the service needs.
type Store interface {
	PersonStore
	EntryStore
	RosterStore
	UnitStore
	AdjustmentStore
	MetricsStore
	HolidayStore
}
