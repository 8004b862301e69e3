/*
Package accounting orchestrates the shift-hours engine over persisted data.

PURPOSE:
  The engine packages are pure. This service is the calling layer that
  validates raw input at the boundary, runs the conflict gate, stores
  entries, and keeps the monthly metrics chain consistent.

CAUSAL ORDERING:
  A month's SA reads the previous month's HAC, so a month must be computed
  and saved before the next one is resolved. The service guarantees this by:
  1. Serialising work per person (one lock per person ID)
  2. Filling any gap months before computing a later month
  3. Recomputing forward, in order, whenever an input of a stored month
     changes (entry edited or deleted, adjustment set, assignment added)
  Different people never depend on each other, so CloseMonth computes them
  concurrently.

MISSING DATA:
  No entries, no unit configuration, no prior month: none of these are
  errors. They resolve to HT = 0, the default configuration and SA = 0.

SEE ALSO:
  - store.go: persistence interfaces
  - shift/, balance/: the pure engine
  - api/handlers.go: HTTP boundary
*/
package accounting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/warp/shift-hours/balance"
	"github.com/warp/shift-hours/shift"
)

var lastMonth = shift.NewMonth(9999, time.December)

// Service is the accounting entry point shared by the API, the scheduler
// and the CLI.
type Service struct {
	Store  Store
	Logger *slog.Logger

	// Defaults is used for units without stored configuration.
	Defaults balance.UnitConfig

	// Concurrency bounds the number of persons computed at once by CloseMonth.
	Concurrency int

	Now   func() time.Time
	NewID func() string

	locks sync.Map // person ID -> *sync.Mutex
}

// NewService creates a service with the engine defaults.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Store:       store,
		Logger:      logger,
		Defaults:    balance.DefaultUnitConfig(),
		Concurrency: 4,
		Now:         time.Now,
		NewID:       uuid.NewString,
	}
}

func (s *Service) lock(personID string) func() {
	mu, _ := s.locks.LoadOrStore(personID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// =============================================================================
// PERSONS
// =============================================================================

// CreatePerson registers a controller on a unit.
func (s *Service) CreatePerson(ctx context.Context, p Person) (Person, error) {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		p.ID = s.NewID()
	}
	if err := s.Store.SavePerson(ctx, p); err != nil {
		return Person{}, fmt.Errorf("save person: %w", err)
	}
	return p, nil
}

// Person returns a person or ErrPersonNotFound.
func (s *Service) Person(ctx context.Context, id string) (Person, error) {
	return s.person(ctx, id)
}

// Persons lists the persons of a unit; an empty unit lists everyone.
func (s *Service) Persons(ctx context.Context, unitID string) ([]Person, error) {
	return s.Store.ListPersons(ctx, unitID)
}

func (s *Service) person(ctx context.Context, id string) (Person, error) {
	p, err := s.Store.GetPerson(ctx, id)
	if err != nil {
		return Person{}, fmt.Errorf("load person %s: %w", id, err)
	}
	if p == nil {
		return Person{}, fmt.Errorf("%w: %s", ErrPersonNotFound, id)
	}
	return *p, nil
}

// =============================================================================
// ENTRIES
// =============================================================================

// EntryInput is a registration as typed by a user: raw strings, validated here.
type EntryInput struct {
	PersonID string
	Date     string // YYYY-MM-DD
	Sector   string // TWR, APP, ACC or empty
	Start    string // hhmm
	End      string // hhmm, empty = open entry
	Note     string
	Actor    string
}

func parseEntryInput(in EntryInput) (shift.Entry, error) {
	date, err := shift.ParseDate(in.Date)
	if err != nil {
		return shift.Entry{}, err
	}
	sector, err := shift.ParseSector(in.Sector)
	if err != nil {
		return shift.Entry{}, err
	}
	start, err := shift.ParseClock(in.Start)
	if err != nil {
		return shift.Entry{}, fmt.Errorf("start: %w", err)
	}
	var end *shift.Clock
	if strings.TrimSpace(in.End) != "" {
		c, err := shift.ParseClock(in.End)
		if err != nil {
			return shift.Entry{}, fmt.Errorf("end: %w", err)
		}
		end = &c
	}
	if err := shift.ValidateInterval(start, end); err != nil {
		return shift.Entry{}, err
	}
	return shift.Entry{
		PersonID: in.PersonID,
		Date:     date,
		Sector:   sector,
		Start:    start,
		End:      end,
		Note:     strings.TrimSpace(in.Note),
	}, nil
}

// RegisterEntry validates, conflict-checks, derives and stores a new entry.
func (s *Service) RegisterEntry(ctx context.Context, in EntryInput) (shift.Entry, error) {
	draft, err := parseEntryInput(in)
	if err != nil {
		return shift.Entry{}, err
	}
	p, err := s.person(ctx, in.PersonID)
	if err != nil {
		return shift.Entry{}, err
	}

	unlock := s.lock(p.ID)
	defer unlock()

	if err := s.checkConflict(ctx, shift.CandidateFor(draft)); err != nil {
		return shift.Entry{}, err
	}

	cal, err := s.calendar(ctx, p.UnitID)
	if err != nil {
		return shift.Entry{}, err
	}

	now := s.Now().UTC()
	draft.ID = s.NewID()
	draft.CreatedBy = in.Actor
	draft.CreatedAt = now
	draft.UpdatedAt = now
	entry := shift.Derive(draft, cal)

	if err := s.Store.SaveEntry(ctx, entry); err != nil {
		return shift.Entry{}, fmt.Errorf("save entry: %w", err)
	}
	s.Logger.InfoContext(ctx, "entry registered",
		slog.String("person_id", p.ID),
		slog.String("entry_id", entry.ID),
		slog.String("date", entry.Date.String()),
		slog.String("range", entry.Range()),
		slog.String("hours", entry.Hours.String()))

	if err := s.refresh(ctx, p, entry.Date.CalendarMonth()); err != nil {
		return entry, err
	}
	return entry, nil
}

// EditEntry replaces the editable fields of an entry and re-runs the
// arithmetic and the conflict gate.
func (s *Service) EditEntry(ctx context.Context, id string, in EntryInput) (shift.Entry, error) {
	current, err := s.entry(ctx, id)
	if err != nil {
		return shift.Entry{}, err
	}
	in.PersonID = current.PersonID
	draft, err := parseEntryInput(in)
	if err != nil {
		return shift.Entry{}, err
	}
	p, err := s.person(ctx, current.PersonID)
	if err != nil {
		return shift.Entry{}, err
	}

	unlock := s.lock(p.ID)
	defer unlock()

	draft.ID = current.ID
	if err := s.checkConflict(ctx, shift.CandidateFor(draft)); err != nil {
		return shift.Entry{}, err
	}

	cal, err := s.calendar(ctx, p.UnitID)
	if err != nil {
		return shift.Entry{}, err
	}
	draft.CreatedBy = current.CreatedBy
	draft.CreatedAt = current.CreatedAt
	draft.UpdatedAt = s.Now().UTC()
	entry := shift.Derive(draft, cal)

	if err := s.Store.SaveEntry(ctx, entry); err != nil {
		return shift.Entry{}, fmt.Errorf("save entry: %w", err)
	}
	s.Logger.InfoContext(ctx, "entry edited",
		slog.String("person_id", p.ID),
		slog.String("entry_id", entry.ID),
		slog.String("actor", in.Actor),
		slog.String("range", entry.Range()))

	from := earlier(current.Date.CalendarMonth(), entry.Date.CalendarMonth())
	if err := s.refresh(ctx, p, from); err != nil {
		return entry, err
	}
	return entry, nil
}

// CloseEntry sets the end time of an open entry.
func (s *Service) CloseEntry(ctx context.Context, id, end, actor string) (shift.Entry, error) {
	current, err := s.entry(ctx, id)
	if err != nil {
		return shift.Entry{}, err
	}
	in := EntryInput{
		Date:   current.Date.String(),
		Sector: string(current.Sector),
		Start:  current.Start.String(),
		End:    end,
		Note:   current.Note,
		Actor:  actor,
	}
	return s.EditEntry(ctx, id, in)
}

// DeleteEntry removes an entry and recomputes its month.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	current, err := s.entry(ctx, id)
	if err != nil {
		return err
	}
	p, err := s.person(ctx, current.PersonID)
	if err != nil {
		return err
	}

	unlock := s.lock(p.ID)
	defer unlock()

	if err := s.Store.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	s.Logger.InfoContext(ctx, "entry deleted",
		slog.String("person_id", p.ID),
		slog.String("entry_id", id),
		slog.String("date", current.Date.String()))

	return s.refresh(ctx, p, current.Date.CalendarMonth())
}

// MonthEntries returns the entries of one person and month.
func (s *Service) MonthEntries(ctx context.Context, personID string, month shift.Month) ([]shift.Entry, error) {
	return s.Store.EntriesForMonth(ctx, personID, month)
}

func (s *Service) entry(ctx context.Context, id string) (shift.Entry, error) {
	e, err := s.Store.GetEntry(ctx, id)
	if err != nil {
		return shift.Entry{}, fmt.Errorf("load entry %s: %w", id, err)
	}
	if e == nil {
		return shift.Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return *e, nil
}

func (s *Service) checkConflict(ctx context.Context, c shift.Candidate) error {
	existing, err := s.Store.EntriesForDay(ctx, c.PersonID, c.Date)
	if err != nil {
		return fmt.Errorf("load day entries: %w", err)
	}
	return shift.CheckConflict(c, existing)
}

func (s *Service) calendar(ctx context.Context, unitID string) (shift.HolidayCalendar, error) {
	holidays, err := s.Store.HolidaysForUnit(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("load holidays: %w", err)
	}
	return shift.NewHolidaySet(holidays), nil
}

// =============================================================================
// SECTOR CONSOLIDATION
// =============================================================================

// SectorReport is the consolidation of one month plus its compliance check.
type SectorReport struct {
	PersonID      string
	Month         shift.Month
	Consolidation shift.Consolidation
	Compliance    shift.Compliance
}

// SectorSummary consolidates a person's closed entries for a month and
// checks the unit's minimum activity hours.
func (s *Service) SectorSummary(ctx context.Context, personID string, month shift.Month) (SectorReport, error) {
	p, err := s.person(ctx, personID)
	if err != nil {
		return SectorReport{}, err
	}
	entries, err := s.Store.EntriesForMonth(ctx, personID, month)
	if err != nil {
		return SectorReport{}, fmt.Errorf("load entries: %w", err)
	}
	cfg, err := s.UnitConfig(ctx, p.UnitID)
	if err != nil {
		return SectorReport{}, err
	}
	c := shift.Consolidate(entries)
	return SectorReport{
		PersonID:      personID,
		Month:         month,
		Consolidation: c,
		Compliance:    shift.CheckMinimum(c.Total, cfg.MinimumHours),
	}, nil
}

// =============================================================================
// UNIT CONFIGURATION
// =============================================================================

// UnitConfig returns the stored configuration or the service defaults.
func (s *Service) UnitConfig(ctx context.Context, unitID string) (balance.UnitConfig, error) {
	stored, err := s.Store.GetUnitConfig(ctx, unitID)
	if err != nil {
		return balance.UnitConfig{}, fmt.Errorf("load unit config: %w", err)
	}
	if stored == nil {
		cfg := s.Defaults
		cfg.UnitID = unitID
		return balance.OrDefault(&cfg, unitID), nil
	}
	return balance.OrDefault(stored, unitID), nil
}

// SetUnitConfig validates and stores a unit configuration. Stored metrics
// are not recomputed; months closed under the old configuration keep it.
func (s *Service) SetUnitConfig(ctx context.Context, cfg balance.UnitConfig) error {
	if cfg.MinimumHours.IsZero() {
		cfg.MinimumHours = s.Defaults.MinimumHours
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := s.Store.SaveUnitConfig(ctx, cfg); err != nil {
		return fmt.Errorf("save unit config: %w", err)
	}
	s.Logger.InfoContext(ctx, "unit configuration updated",
		slog.String("unit_id", cfg.UnitID),
		slog.String("standard_monthly_hours", cfg.StandardMonthlyHours.String()),
		slog.String("payment_percentage", cfg.PaymentPercentage.String()))
	return nil
}

// =============================================================================
// ROSTER
// =============================================================================

// AddShiftType adds a shift to a unit catalogue.
func (s *Service) AddShiftType(ctx context.Context, unitID string, st shift.ShiftType) error {
	if _, err := shift.NewCatalog([]shift.ShiftType{st}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShift, err)
	}
	return s.Store.SaveShiftType(ctx, unitID, st)
}

// AssignmentInput places a person on a shift for one day.
type AssignmentInput struct {
	PersonID  string
	Date      string
	ShiftCode string
}

// AddAssignment validates the shift code against the unit catalogue and
// stores the assignment.
func (s *Service) AddAssignment(ctx context.Context, in AssignmentInput) (shift.Assignment, error) {
	date, err := shift.ParseDate(in.Date)
	if err != nil {
		return shift.Assignment{}, err
	}
	p, err := s.person(ctx, in.PersonID)
	if err != nil {
		return shift.Assignment{}, err
	}
	catalog, err := s.catalog(ctx, p.UnitID)
	if err != nil {
		return shift.Assignment{}, err
	}
	if _, ok := catalog[in.ShiftCode]; !ok {
		return shift.Assignment{}, fmt.Errorf("%w: %q", ErrUnknownShift, in.ShiftCode)
	}

	unlock := s.lock(p.ID)
	defer unlock()

	a := shift.Assignment{ID: s.NewID(), PersonID: p.ID, Date: date, ShiftCode: in.ShiftCode}
	if err := s.Store.SaveAssignment(ctx, a); err != nil {
		return shift.Assignment{}, fmt.Errorf("save assignment: %w", err)
	}
	return a, s.refresh(ctx, p, date.CalendarMonth())
}

func (s *Service) catalog(ctx context.Context, unitID string) (shift.Catalog, error) {
	types, err := s.Store.ShiftTypes(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("load shift types: %w", err)
	}
	return shift.NewCatalog(types)
}

// =============================================================================
// MANUAL ADJUSTMENTS
// =============================================================================

// SetAdjustment creates or replaces the manual SA override of (person, month)
// and recomputes that month and every later stored month.
func (s *Service) SetAdjustment(ctx context.Context, a balance.Adjustment) (balance.Adjustment, error) {
	a.Reason = strings.TrimSpace(a.Reason)
	if err := a.Validate(); err != nil {
		return balance.Adjustment{}, err
	}
	p, err := s.person(ctx, a.PersonID)
	if err != nil {
		return balance.Adjustment{}, err
	}

	unlock := s.lock(p.ID)
	defer unlock()

	existing, err := s.Store.GetAdjustment(ctx, a.PersonID, a.Month)
	if err != nil {
		return balance.Adjustment{}, fmt.Errorf("load adjustment: %w", err)
	}
	if existing != nil {
		a.ID = existing.ID
	} else if a.ID == "" {
		a.ID = s.NewID()
	}
	a.CreatedAt = s.Now().UTC()

	if err := s.Store.SaveAdjustment(ctx, a); err != nil {
		return balance.Adjustment{}, fmt.Errorf("save adjustment: %w", err)
	}
	s.Logger.InfoContext(ctx, "manual balance adjustment",
		slog.String("person_id", a.PersonID),
		slog.String("month", a.Month.String()),
		slog.String("override", a.Override.String()),
		slog.String("reason", a.Reason),
		slog.String("actor", a.CreatedBy),
		slog.Bool("replaced", existing != nil))

	if err := s.refresh(ctx, p, a.Month); err != nil {
		return a, err
	}
	return a, nil
}

// =============================================================================
// MONTHLY METRICS
// =============================================================================

// ComputeMonth computes and records the metrics of one person and month.
// Missing months between the last recorded row and month are computed
// first, in order. An unknown person yields a zero row that is not stored.
func (s *Service) ComputeMonth(ctx context.Context, personID string, month shift.Month, source balance.HoursSource) (balance.Metrics, error) {
	p, err := s.person(ctx, personID)
	if IsNotFound(err) {
		cfg := s.Defaults
		return balance.ComputeMonth(personID, month, decimal.Zero, cfg, nil, nil, source), nil
	}
	if err != nil {
		return balance.Metrics{}, err
	}

	unlock := s.lock(p.ID)
	defer unlock()

	return s.computeLocked(ctx, p, month, source)
}

func (s *Service) computeLocked(ctx context.Context, p Person, month shift.Month, source balance.HoursSource) (balance.Metrics, error) {
	prior, err := s.Store.LatestMetricsBefore(ctx, p.ID, month)
	if err != nil {
		return balance.Metrics{}, fmt.Errorf("load prior metrics: %w", err)
	}
	if prior != nil {
		for m := prior.Month.Next(); m.Before(month); m = m.Next() {
			gap, err := s.computeAndSave(ctx, p, m, source, prior)
			if err != nil {
				return balance.Metrics{}, err
			}
			prior = &gap
		}
	}
	m, err := s.computeAndSave(ctx, p, month, source, prior)
	if err != nil {
		return balance.Metrics{}, err
	}
	// Later months may already be stored with an SA that predates this row.
	if err := s.refresh(ctx, p, month.Next()); err != nil {
		return balance.Metrics{}, err
	}
	return m, nil
}

func (s *Service) computeAndSave(ctx context.Context, p Person, month shift.Month, source balance.HoursSource, prior *balance.Metrics) (balance.Metrics, error) {
	if source == "" {
		source = balance.SourceRegistry
	}
	ht, err := s.hoursWorked(ctx, p, month, source)
	if err != nil {
		return balance.Metrics{}, err
	}
	cfg, err := s.UnitConfig(ctx, p.UnitID)
	if err != nil {
		return balance.Metrics{}, err
	}
	adj, err := s.Store.GetAdjustment(ctx, p.ID, month)
	if err != nil {
		return balance.Metrics{}, fmt.Errorf("load adjustment: %w", err)
	}

	m := balance.ComputeMonth(p.ID, month, ht, cfg, adj, prior, source)
	if err := s.Store.SaveMetrics(ctx, m); err != nil {
		return balance.Metrics{}, fmt.Errorf("save metrics: %w", err)
	}
	s.Logger.DebugContext(ctx, "metrics computed",
		slog.String("person_id", p.ID),
		slog.String("month", month.String()),
		slog.String("source", string(source)),
		slog.String("ht", m.HT.String()),
		slog.String("he", m.HE.String()),
		slog.String("sa", m.SA.String()),
		slog.String("sa_source", string(m.SASource)),
		slog.String("hcp", m.HCP.String()),
		slog.String("hac", m.HAC.String()))
	return m, nil
}

func (s *Service) hoursWorked(ctx context.Context, p Person, month shift.Month, source balance.HoursSource) (decimal.Decimal, error) {
	if source == balance.SourceRoster {
		catalog, err := s.catalog(ctx, p.UnitID)
		if err != nil {
			return decimal.Zero, err
		}
		assignments, err := s.Store.AssignmentsForMonth(ctx, p.ID, month)
		if err != nil {
			return decimal.Zero, fmt.Errorf("load assignments: %w", err)
		}
		total, unknown := shift.AssignedHours(month, assignments, catalog)
		if len(unknown) > 0 {
			s.Logger.WarnContext(ctx, "assignments with unknown shift codes ignored",
				slog.String("person_id", p.ID),
				slog.String("month", month.String()),
				slog.Any("codes", unknown))
		}
		return total, nil
	}

	entries, err := s.Store.EntriesForMonth(ctx, p.ID, month)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load entries: %w", err)
	}
	return shift.Consolidate(entries).Total, nil
}

// refresh walks forward through the last stored month, so that every
// recorded row again reflects its inputs. The walk starts right after the
// latest row before month, filling unstored months on the way, or at month
// when there is none. Nothing happens when no row at or after month is
// stored; those months are computed on demand. Each month keeps the hours
// source it was recorded with.
func (s *Service) refresh(ctx context.Context, p Person, month shift.Month) error {
	stored, err := s.Store.MetricsRange(ctx, p.ID, month, lastMonth)
	if err != nil {
		return fmt.Errorf("load stored metrics: %w", err)
	}
	if len(stored) == 0 {
		return nil
	}

	sources := make(map[shift.Month]balance.HoursSource, len(stored))
	for _, m := range stored {
		sources[m.Month] = m.Source
	}
	last := stored[len(stored)-1].Month

	prior, err := s.Store.LatestMetricsBefore(ctx, p.ID, month)
	if err != nil {
		return fmt.Errorf("load prior metrics: %w", err)
	}
	start := month
	if prior != nil {
		start = prior.Month.Next()
	}
	for m := start; !last.Before(m); m = m.Next() {
		src, ok := sources[m]
		if !ok {
			src = stored[0].Source
		}
		row, err := s.computeAndSave(ctx, p, m, src, prior)
		if err != nil {
			return err
		}
		prior = &row
	}
	s.Logger.InfoContext(ctx, "metrics recomputed",
		slog.String("person_id", p.ID),
		slog.String("from", start.String()),
		slog.String("to", last.String()))
	return nil
}

// RecomputeFrom recomputes every stored month of a person from month on.
func (s *Service) RecomputeFrom(ctx context.Context, personID string, month shift.Month) error {
	p, err := s.person(ctx, personID)
	if err != nil {
		return err
	}
	unlock := s.lock(p.ID)
	defer unlock()
	return s.refresh(ctx, p, month)
}

// MetricsHistory returns stored rows in [from, to].
func (s *Service) MetricsHistory(ctx context.Context, personID string, from, to shift.Month) ([]balance.Metrics, error) {
	return s.Store.MetricsRange(ctx, personID, from, to)
}

// CloseMonth computes month for every person of a unit. People are
// independent, so their chains run concurrently.
func (s *Service) CloseMonth(ctx context.Context, unitID string, month shift.Month, source balance.HoursSource) ([]balance.Metrics, error) {
	persons, err := s.Store.ListPersons(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}

	results := make([]balance.Metrics, len(persons))
	g, gctx := errgroup.WithContext(ctx)
	if s.Concurrency > 0 {
		g.SetLimit(s.Concurrency)
	}
	for i, p := range persons {
		i, p := i, p
		g.Go(func() error {
			unlock := s.lock(p.ID)
			defer unlock()
			m, err := s.computeLocked(gctx, p, month, source)
			if err != nil {
				return fmt.Errorf("person %s: %w", p.ID, err)
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.Logger.InfoContext(ctx, "month closed",
		slog.String("unit_id", unitID),
		slog.String("month", month.String()),
		slog.Int("persons", len(persons)))
	return results, nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// AddHoliday stores a unit holiday. Entries already registered keep their
// derived classification.
func (s *Service) AddHoliday(ctx context.Context, h shift.Holiday) (shift.Holiday, error) {
	if h.ID == "" {
		h.ID = s.NewID()
	}
	if h.Date.IsZero() {
		return shift.Holiday{}, fmt.Errorf("%w: holiday date is required", shift.ErrInvalidDate)
	}
	h.Date = shift.DateOf(h.Date.Time)
	stored, err := s.Store.SaveHoliday(ctx, h)
	if err != nil {
		return shift.Holiday{}, fmt.Errorf("save holiday: %w", err)
	}
	return stored, nil
}

func (s *Service) DeleteHoliday(ctx context.Context, id string) error {
	return s.Store.DeleteHoliday(ctx, id)
}

func (s *Service) Holidays(ctx context.Context, unitID string) ([]shift.Holiday, error) {
	return s.Store.HolidaysForUnit(ctx, unitID)
}

// =============================================================================
// UNIT PROFILES
// =============================================================================

// UnitProfile bundles everything a unit needs: configuration, shift
// catalogue and holidays.
type UnitProfile struct {
	Name     string
	Config   balance.UnitConfig
	Shifts   []shift.ShiftType
	Holidays []shift.Holiday
}

// ApplyProfile stores a unit's configuration, catalogue and holidays.
// Shifts and holidays are upserted; nothing is removed.
func (s *Service) ApplyProfile(ctx context.Context, p UnitProfile) error {
	unitID := p.Config.UnitID
	if err := s.SetUnitConfig(ctx, p.Config); err != nil {
		return err
	}
	for _, st := range p.Shifts {
		if err := s.AddShiftType(ctx, unitID, st); err != nil {
			return err
		}
	}
	for _, h := range p.Holidays {
		h.UnitID = unitID
		if _, err := s.AddHoliday(ctx, h); err != nil {
			return err
		}
	}
	s.Logger.InfoContext(ctx, "unit profile applied",
		slog.String("unit_id", unitID),
		slog.Int("shifts", len(p.Shifts)),
		slog.Int("holidays", len(p.Holidays)))
	return nil
}

// Profile returns the current profile of a unit.
func (s *Service) Profile(ctx context.Context, unitID string) (UnitProfile, error) {
	cfg, err := s.UnitConfig(ctx, unitID)
	if err != nil {
		return UnitProfile{}, err
	}
	shifts, err := s.Store.ShiftTypes(ctx, unitID)
	if err != nil {
		return UnitProfile{}, fmt.Errorf("load shift types: %w", err)
	}
	holidays, err := s.Store.HolidaysForUnit(ctx, unitID)
	if err != nil {
		return UnitProfile{}, fmt.Errorf("load holidays: %w", err)
	}
	var own []shift.Holiday
	for _, h := range holidays {
		if h.UnitID == unitID {
			own = append(own, h)
		}
	}
	return UnitProfile{Config: cfg, Shifts: shifts, Holidays: own}, nil
}

func earlier(a, b shift.Month) shift.Month {
	if b.Before(a) {
		return b
	}
	return a
}
