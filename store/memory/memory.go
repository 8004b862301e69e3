// Package memory provides an in-memory accounting.Store for tests and demos.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/shift-hours/accounting"
	"github.com/warp/shift-hours/balance"
	"github.com/warp/shift-hours/shift"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	persons     map[string]accounting.Person
	entries     map[string]shift.Entry
	entryOrder  []string // insertion order, for same-day scans
	shiftTypes  map[string][]shift.ShiftType
	assignments []shift.Assignment
	configs     map[string]balance.UnitConfig
	adjustments map[key]balance.Adjustment
	metrics     map[string][]balance.Metrics // person -> rows sorted by month
	holidays    map[string]shift.Holiday
}

type key struct {
	PersonID string
	Month    shift.Month
}

var _ accounting.Store = (*Memory)(nil)

func New() *Memory {
	return &Memory{
		persons:     make(map[string]accounting.Person),
		entries:     make(map[string]shift.Entry),
		shiftTypes:  make(map[string][]shift.ShiftType),
		configs:     make(map[string]balance.UnitConfig),
		adjustments: make(map[key]balance.Adjustment),
		metrics:     make(map[string][]balance.Metrics),
		holidays:    make(map[string]shift.Holiday),
	}
}

// =============================================================================
// PERSONS
// =============================================================================

func (m *Memory) SavePerson(_ context.Context, p accounting.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persons[p.ID] = p
	return nil
}

func (m *Memory) GetPerson(_ context.Context, id string) (*accounting.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.persons[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *Memory) ListPersons(_ context.Context, unitID string) ([]accounting.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []accounting.Person
	for _, p := range m.persons {
		if unitID == "" || p.UnitID == unitID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// ENTRIES
// =============================================================================

func (m *Memory) SaveEntry(_ context.Context, e shift.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[e.ID]; !exists {
		m.entryOrder = append(m.entryOrder, e.ID)
	}
	m.entries[e.ID] = e
	return nil
}

func (m *Memory) GetEntry(_ context.Context, id string) (*shift.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *Memory) DeleteEntry(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	for i, eid := range m.entryOrder {
		if eid == id {
			m.entryOrder = append(m.entryOrder[:i], m.entryOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) EntriesForDay(_ context.Context, personID string, date shift.Date) ([]shift.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []shift.Entry
	for _, id := range m.entryOrder {
		e := m.entries[id]
		if e.PersonID == personID && e.Date.Equal(date) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Memory) EntriesForMonth(_ context.Context, personID string, month shift.Month) ([]shift.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []shift.Entry
	for _, id := range m.entryOrder {
		e := m.entries[id]
		if e.PersonID == personID && month.Contains(e.Date) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Start < out[j].Start
	})
	return out, nil
}

// =============================================================================
// ROSTER
// =============================================================================

func (m *Memory) SaveShiftType(_ context.Context, unitID string, st shift.ShiftType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := m.shiftTypes[unitID]
	for i := range types {
		if types[i].Code == st.Code {
			types[i] = st
			return nil
		}
	}
	m.shiftTypes[unitID] = append(types, st)
	return nil
}

func (m *Memory) ShiftTypes(_ context.Context, unitID string) ([]shift.ShiftType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]shift.ShiftType(nil), m.shiftTypes[unitID]...), nil
}

func (m *Memory) SaveAssignment(_ context.Context, a shift.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments = append(m.assignments, a)
	return nil
}

func (m *Memory) AssignmentsForMonth(_ context.Context, personID string, month shift.Month) ([]shift.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []shift.Assignment
	for _, a := range m.assignments {
		if a.PersonID == personID && month.Contains(a.Date) {
			out = append(out, a)
		}
	}
	return out, nil
}

// =============================================================================
// UNIT CONFIGURATION AND ADJUSTMENTS
// =============================================================================

func (m *Memory) SaveUnitConfig(_ context.Context, cfg balance.UnitConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs[cfg.UnitID] = cfg
	return nil
}

func (m *Memory) GetUnitConfig(_ context.Context, unitID string) (*balance.UnitConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.configs[unitID]
	if !ok {
		return nil, nil
	}
	return &cfg, nil
}

func (m *Memory) SaveAdjustment(_ context.Context, a balance.Adjustment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adjustments[key{a.PersonID, a.Month}] = a
	return nil
}

func (m *Memory) GetAdjustment(_ context.Context, personID string, month shift.Month) (*balance.Adjustment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.adjustments[key{personID, month}]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// =============================================================================
// METRICS
// =============================================================================

func (m *Memory) SaveMetrics(_ context.Context, row balance.Metrics) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.metrics[row.PersonID]
	// Binary search for the month, keeping rows sorted.
	i := sort.Search(len(rows), func(i int) bool { return !rows[i].Month.Before(row.Month) })
	if i < len(rows) && rows[i].Month == row.Month {
		rows[i] = row
		return nil
	}
	rows = append(rows, balance.Metrics{})
	copy(rows[i+1:], rows[i:])
	rows[i] = row
	m.metrics[row.PersonID] = rows
	return nil
}

func (m *Memory) GetMetrics(_ context.Context, personID string, month shift.Month) (*balance.Metrics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, row := range m.metrics[personID] {
		if row.Month == month {
			r := row
			return &r, nil
		}
	}
	return nil, nil
}

func (m *Memory) LatestMetricsBefore(_ context.Context, personID string, month shift.Month) (*balance.Metrics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.metrics[personID]
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Month.Before(month) {
			r := rows[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (m *Memory) MetricsRange(_ context.Context, personID string, from, to shift.Month) ([]balance.Metrics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []balance.Metrics
	for _, row := range m.metrics[personID] {
		if !row.Month.Before(from) && !to.Before(row.Month) {
			out = append(out, row)
		}
	}
	return out, nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (m *Memory) SaveHoliday(_ context.Context, h shift.Holiday) (shift.Holiday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// One holiday per (unit, date, name), like the SQL store
	for id, existing := range m.holidays {
		if existing.UnitID == h.UnitID && existing.Date.Equal(h.Date) && existing.Name == h.Name {
			existing.Recurring = h.Recurring
			m.holidays[id] = existing
			return existing, nil
		}
	}
	m.holidays[h.ID] = h
	return h, nil
}

func (m *Memory) DeleteHoliday(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.holidays, id)
	return nil
}

func (m *Memory) HolidaysForUnit(_ context.Context, unitID string) ([]shift.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []shift.Holiday
	for _, h := range m.holidays {
		if h.UnitID == "" || h.UnitID == unitID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// Reset clears all data.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fresh := New()
	m.persons = fresh.persons
	m.entries = fresh.entries
	m.entryOrder = nil
	m.shiftTypes = fresh.shiftTypes
	m.assignments = nil
	m.configs = fresh.configs
	m.adjustments = fresh.adjustments
	m.metrics = fresh.metrics
	m.holidays = fresh.holidays
	return nil
}
