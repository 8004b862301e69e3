/*
Package sqlite provides a SQLite-backed implementation of accounting.Store.

PURPOSE:
  Persists everything the accounting service reads and writes: persons,
  registered entries, the roster, unit configuration, manual adjustments,
  computed monthly metrics and holidays.

KEY TABLES:
  persons:       Controllers and their unit
  entries:       Worked intervals (clock values stored as minutes)
  shift_types:   Unit shift catalogue
  assignments:   Roster placements
  unit_configs:  Standard hours, payment percentage, minimum hours
  adjustments:   Manual SA overrides, UNIQUE(person_id, month)
  metrics:       Computed months, UNIQUE(person_id, month)
  holidays:      Unit (or global, unit_id = '') holidays

DECIMALS:
  Hour quantities are stored as TEXT through decimal.Decimal's Scanner and
  Valuer, so nothing is ever rounded by a float column.

MONTHS AND DATES:
  Months are stored as "YYYY-MM" and dates as "YYYY-MM-DD"; both sort
  lexically, which is what the range queries rely on.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. The connection pool is limited to
  one connection so ":memory:" databases are shared across calls.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/shift-hours.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := accounting.NewService(store, logger)

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - accounting/store.go: Interface definitions
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/shift-hours/accounting"
	"github.com/warp/shift-hours/balance"
	"github.com/warp/shift-hours/shift"
)

// Store implements accounting.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ accounting.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Persons (controllers)
	CREATE TABLE IF NOT EXISTS persons (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		unit_id TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_persons_unit
		ON persons(unit_id);

	-- Registered worked intervals
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL,
		date TEXT NOT NULL,
		sector TEXT NOT NULL DEFAULT '',
		start_min INTEGER NOT NULL,
		end_min INTEGER,
		hours TEXT NOT NULL,
		night BOOLEAN NOT NULL DEFAULT FALSE,
		non_working_day BOOLEAN NOT NULL DEFAULT FALSE,
		note TEXT,
		created_by TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Conflict gate and monthly consolidation (hot path)
	CREATE INDEX IF NOT EXISTS idx_entries_person_date
		ON entries(person_id, date, start_min);

	-- Shift catalogue
	CREATE TABLE IF NOT EXISTS shift_types (
		unit_id TEXT NOT NULL,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		start_min INTEGER NOT NULL,
		end_min INTEGER NOT NULL,
		PRIMARY KEY (unit_id, code)
	);

	-- Roster assignments
	CREATE TABLE IF NOT EXISTS assignments (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL,
		date TEXT NOT NULL,
		shift_code TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_person_date
		ON assignments(person_id, date);

	-- Unit configuration
	CREATE TABLE IF NOT EXISTS unit_configs (
		unit_id TEXT PRIMARY KEY,
		standard_monthly_hours TEXT NOT NULL,
		payment_percentage TEXT NOT NULL,
		minimum_hours TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Manual SA overrides (at most one per person and month)
	CREATE TABLE IF NOT EXISTS adjustments (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL,
		month TEXT NOT NULL,
		override TEXT NOT NULL,
		reason TEXT NOT NULL,
		created_by TEXT,
		created_at TEXT NOT NULL,
		UNIQUE(person_id, month)
	);

	-- Computed monthly metrics (carry-forward source)
	CREATE TABLE IF NOT EXISTS metrics (
		person_id TEXT NOT NULL,
		month TEXT NOT NULL,
		ht TEXT NOT NULL,
		he TEXT NOT NULL,
		sa TEXT NOT NULL,
		hcp TEXT NOT NULL,
		hac TEXT NOT NULL,
		sa_source TEXT NOT NULL,
		source TEXT NOT NULL,
		computed_at TEXT NOT NULL,
		UNIQUE(person_id, month)
	);

	-- Holidays
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		unit_id TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		recurring BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL,
		UNIQUE(unit_id, date, name)
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_unit
		ON holidays(unit_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PERSON STORE
// =============================================================================

// SavePerson saves a person.
func (s *Store) SavePerson(ctx context.Context, p accounting.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO persons (id, name, unit_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			unit_id = excluded.unit_id
	`

	_, err := s.db.ExecContext(ctx, query, p.ID, p.Name, p.UnitID, now())
	return err
}

// GetPerson retrieves a person by ID.
func (s *Store) GetPerson(ctx context.Context, id string) (*accounting.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p accounting.Person
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, unit_id FROM persons WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &p.UnitID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPersons returns the persons of a unit, or all persons when unitID is empty.
func (s *Store) ListPersons(ctx context.Context, unitID string) ([]accounting.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, unit_id FROM persons WHERE ? = '' OR unit_id = ? ORDER BY id",
		unitID, unitID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var persons []accounting.Person
	for rows.Next() {
		var p accounting.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitID); err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

// =============================================================================
// ENTRY STORE
// =============================================================================

const entryColumns = `id, person_id, date, sector, start_min, end_min, hours, night,
	non_working_day, note, created_by, created_at, updated_at`

// SaveEntry inserts or replaces an entry.
func (s *Store) SaveEntry(ctx context.Context, e shift.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			sector = excluded.sector,
			start_min = excluded.start_min,
			end_min = excluded.end_min,
			hours = excluded.hours,
			night = excluded.night,
			non_working_day = excluded.non_working_day,
			note = excluded.note,
			updated_at = excluded.updated_at
	`

	var end sql.NullInt64
	if e.End != nil {
		end = sql.NullInt64{Int64: int64(*e.End), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.PersonID, e.Date.String(), string(e.Sector),
		int(e.Start), end, e.Hours, e.Night, e.NonWorkingDay,
		nullString(e.Note), nullString(e.CreatedBy),
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	)
	return err
}

// GetEntry retrieves an entry by ID.
func (s *Store) GetEntry(ctx context.Context, id string) (*shift.Entry, error) {
	entries, err := s.queryEntries(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE id = ?", id)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[0], nil
}

// DeleteEntry removes an entry.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	return err
}

// EntriesForDay returns one person's entries of a day, in insertion order.
func (s *Store) EntriesForDay(ctx context.Context, personID string, date shift.Date) ([]shift.Entry, error) {
	return s.queryEntries(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE person_id = ? AND date = ? ORDER BY rowid",
		personID, date.String())
}

// EntriesForMonth returns one person's entries of a month, by date and start.
func (s *Store) EntriesForMonth(ctx context.Context, personID string, month shift.Month) ([]shift.Entry, error) {
	return s.queryEntries(ctx,
		"SELECT "+entryColumns+` FROM entries
		WHERE person_id = ? AND date BETWEEN ? AND ?
		ORDER BY date, start_min, rowid`,
		personID, month.Start().String(), month.End().String())
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]shift.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []shift.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (shift.Entry, error) {
	var e shift.Entry
	var date, sector, createdAt, updatedAt string
	var start int
	var end sql.NullInt64
	var note, createdBy sql.NullString

	err := rows.Scan(&e.ID, &e.PersonID, &date, &sector, &start, &end, &e.Hours,
		&e.Night, &e.NonWorkingDay, &note, &createdBy, &createdAt, &updatedAt)
	if err != nil {
		return e, err
	}

	e.Date, err = shift.ParseDate(date)
	if err != nil {
		return e, err
	}
	e.Sector = shift.Sector(sector)
	e.Start = shift.Clock(start)
	if end.Valid {
		e.End = shift.ClockPtr(shift.Clock(end.Int64))
	}
	e.Note = note.String
	e.CreatedBy = createdBy.String
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return e, nil
}

// =============================================================================
// ROSTER STORE
// =============================================================================

// SaveShiftType inserts or replaces a shift of a unit catalogue.
func (s *Store) SaveShiftType(ctx context.Context, unitID string, st shift.ShiftType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO shift_types (unit_id, code, name, start_min, end_min)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(unit_id, code) DO UPDATE SET
			name = excluded.name,
			start_min = excluded.start_min,
			end_min = excluded.end_min
	`

	_, err := s.db.ExecContext(ctx, query, unitID, st.Code, st.Name, int(st.Start), int(st.End))
	return err
}

// ShiftTypes returns a unit catalogue ordered by code.
func (s *Store) ShiftTypes(ctx context.Context, unitID string) ([]shift.ShiftType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT code, name, start_min, end_min FROM shift_types WHERE unit_id = ? ORDER BY code",
		unitID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []shift.ShiftType
	for rows.Next() {
		var st shift.ShiftType
		var start, end int
		if err := rows.Scan(&st.Code, &st.Name, &start, &end); err != nil {
			return nil, err
		}
		st.Start, st.End = shift.Clock(start), shift.Clock(end)
		types = append(types, st)
	}
	return types, rows.Err()
}

// SaveAssignment stores a roster placement.
func (s *Store) SaveAssignment(ctx context.Context, a shift.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO assignments (id, person_id, date, shift_code)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			shift_code = excluded.shift_code
	`

	_, err := s.db.ExecContext(ctx, query, a.ID, a.PersonID, a.Date.String(), a.ShiftCode)
	return err
}

// AssignmentsForMonth returns one person's placements of a month.
func (s *Store) AssignmentsForMonth(ctx context.Context, personID string, month shift.Month) ([]shift.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, person_id, date, shift_code FROM assignments
		WHERE person_id = ? AND date BETWEEN ? AND ?
		ORDER BY date, rowid`,
		personID, month.Start().String(), month.End().String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []shift.Assignment
	for rows.Next() {
		var a shift.Assignment
		var date string
		if err := rows.Scan(&a.ID, &a.PersonID, &date, &a.ShiftCode); err != nil {
			return nil, err
		}
		if a.Date, err = shift.ParseDate(date); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// =============================================================================
// UNIT CONFIGURATION STORE
// =============================================================================

// SaveUnitConfig inserts or replaces a unit configuration.
func (s *Store) SaveUnitConfig(ctx context.Context, cfg balance.UnitConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO unit_configs (unit_id, standard_monthly_hours, payment_percentage, minimum_hours, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(unit_id) DO UPDATE SET
			standard_monthly_hours = excluded.standard_monthly_hours,
			payment_percentage = excluded.payment_percentage,
			minimum_hours = excluded.minimum_hours,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, cfg.UnitID,
		cfg.StandardMonthlyHours, cfg.PaymentPercentage, cfg.MinimumHours, now())
	return err
}

// GetUnitConfig retrieves a unit configuration.
func (s *Store) GetUnitConfig(ctx context.Context, unitID string) (*balance.UnitConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cfg balance.UnitConfig
	err := s.db.QueryRowContext(ctx, `
		SELECT unit_id, standard_monthly_hours, payment_percentage, minimum_hours
		FROM unit_configs WHERE unit_id = ?`, unitID,
	).Scan(&cfg.UnitID, &cfg.StandardMonthlyHours, &cfg.PaymentPercentage, &cfg.MinimumHours)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// =============================================================================
// ADJUSTMENT STORE
// =============================================================================

// SaveAdjustment inserts or replaces the adjustment of (person, month).
func (s *Store) SaveAdjustment(ctx context.Context, a balance.Adjustment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO adjustments (id, person_id, month, override, reason, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(person_id, month) DO UPDATE SET
			override = excluded.override,
			reason = excluded.reason,
			created_by = excluded.created_by,
			created_at = excluded.created_at
	`

	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.PersonID, a.Month.String(), a.Override, a.Reason,
		nullString(a.CreatedBy), formatTime(a.CreatedAt),
	)
	return err
}

// GetAdjustment retrieves the adjustment of (person, month).
func (s *Store) GetAdjustment(ctx context.Context, personID string, month shift.Month) (*balance.Adjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var a balance.Adjustment
	var monthStr, createdAt string
	var createdBy sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, person_id, month, override, reason, created_by, created_at
		FROM adjustments WHERE person_id = ? AND month = ?`,
		personID, month.String(),
	).Scan(&a.ID, &a.PersonID, &monthStr, &a.Override, &a.Reason, &createdBy, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if a.Month, err = shift.ParseMonth(monthStr); err != nil {
		return nil, err
	}
	a.CreatedBy = createdBy.String
	a.CreatedAt = parseTime(createdAt)
	return &a, nil
}

// =============================================================================
// METRICS STORE
// =============================================================================

const metricsColumns = "person_id, month, ht, he, sa, hcp, hac, sa_source, source"

// SaveMetrics inserts or replaces the row of (person, month).
func (s *Store) SaveMetrics(ctx context.Context, m balance.Metrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO metrics (` + metricsColumns + `, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(person_id, month) DO UPDATE SET
			ht = excluded.ht,
			he = excluded.he,
			sa = excluded.sa,
			hcp = excluded.hcp,
			hac = excluded.hac,
			sa_source = excluded.sa_source,
			source = excluded.source,
			computed_at = excluded.computed_at
	`

	_, err := s.db.ExecContext(ctx, query,
		m.PersonID, m.Month.String(), m.HT, m.HE, m.SA, m.HCP, m.HAC,
		string(m.SASource), string(m.Source), now(),
	)
	return err
}

// GetMetrics retrieves the row of (person, month).
func (s *Store) GetMetrics(ctx context.Context, personID string, month shift.Month) (*balance.Metrics, error) {
	rows, err := s.queryMetrics(ctx,
		"SELECT "+metricsColumns+" FROM metrics WHERE person_id = ? AND month = ?",
		personID, month.String())
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

// LatestMetricsBefore returns the most recent row strictly before month.
func (s *Store) LatestMetricsBefore(ctx context.Context, personID string, month shift.Month) (*balance.Metrics, error) {
	rows, err := s.queryMetrics(ctx,
		"SELECT "+metricsColumns+" FROM metrics WHERE person_id = ? AND month < ? ORDER BY month DESC LIMIT 1",
		personID, month.String())
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

// MetricsRange returns rows in [from, to], chronologically.
func (s *Store) MetricsRange(ctx context.Context, personID string, from, to shift.Month) ([]balance.Metrics, error) {
	return s.queryMetrics(ctx,
		"SELECT "+metricsColumns+" FROM metrics WHERE person_id = ? AND month BETWEEN ? AND ? ORDER BY month",
		personID, from.String(), to.String())
}

func (s *Store) queryMetrics(ctx context.Context, query string, args ...any) ([]balance.Metrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []balance.Metrics
	for rows.Next() {
		var m balance.Metrics
		var month, saSource, source string
		if err := rows.Scan(&m.PersonID, &month, &m.HT, &m.HE, &m.SA, &m.HCP, &m.HAC, &saSource, &source); err != nil {
			return nil, err
		}
		if m.Month, err = shift.ParseMonth(month); err != nil {
			return nil, err
		}
		m.SASource = balance.SASource(saSource)
		m.Source = balance.HoursSource(source)
		out = append(out, m)
	}
	return out, rows.Err()
}

// =============================================================================
// HOLIDAY CALENDAR
// =============================================================================

// SaveHoliday saves a holiday to the database. On a duplicate
// (unit, date, name) the existing row keeps its ID, which is returned.
func (s *Store) SaveHoliday(ctx context.Context, h shift.Holiday) (shift.Holiday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (id, unit_id, date, name, recurring, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(unit_id, date, name) DO UPDATE SET
			recurring = excluded.recurring
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		h.ID, h.UnitID, h.Date.String(), h.Name, h.Recurring, now()).Scan(&h.ID)
	if err != nil {
		return shift.Holiday{}, err
	}
	return h, nil
}

// DeleteHoliday deletes a holiday by ID.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	return err
}

// HolidaysForUnit returns the unit's holidays plus global ones.
func (s *Store) HolidaysForUnit(ctx context.Context, unitID string) ([]shift.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, unit_id, date, name, recurring
		FROM holidays
		WHERE unit_id = ? OR unit_id = ''
		ORDER BY date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []shift.Holiday
	for rows.Next() {
		var h shift.Holiday
		var dateStr string
		if err := rows.Scan(&h.ID, &h.UnitID, &dateStr, &h.Name, &h.Recurring); err != nil {
			return nil, err
		}
		if h.Date, err = shift.ParseDate(dateStr); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"metrics", "adjustments", "assignments", "entries",
		"shift_types", "unit_configs", "holidays", "persons"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
