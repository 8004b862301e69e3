package accounting_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-hours/accounting"
	"github.com/warp/shift-hours/balance"
	"github.com/warp/shift-hours/shift"
	"github.com/warp/shift-hours/store/memory"
)

var (
	march = shift.NewMonth(2025, time.March)
	april = shift.NewMonth(2025, time.April)
	may   = shift.NewMonth(2025, time.May)
)

func newService(t *testing.T) (*accounting.Service, *memory.Memory) {
	t.Helper()
	store := memory.New()
	svc := accounting.NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var seq atomic.Int64
	svc.NewID = func() string { return fmt.Sprintf("id-%d", seq.Add(1)) }
	svc.Now = func() time.Time { return time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC) }
	return svc, store
}

// setup creates one controller on LECS with std 100 h and 50 % payment.
func setup(t *testing.T) (*accounting.Service, *memory.Memory) {
	t.Helper()
	svc, store := newService(t)
	ctx := context.Background()

	_, err := svc.CreatePerson(ctx, accounting.Person{ID: "ctl-1", Name: "A. Ruiz", UnitID: "LECS"})
	require.NoError(t, err)
	require.NoError(t, svc.SetUnitConfig(ctx, balance.UnitConfig{
		UnitID:               "LECS",
		StandardMonthlyHours: decimal.NewFromInt(100),
		PaymentPercentage:    decimal.NewFromInt(50),
	}))
	return svc, store
}

// registerDays registers n twelve-hour day shifts from March 3rd on.
func registerDays(t *testing.T, svc *accounting.Service, n int) []shift.Entry {
	t.Helper()
	var out []shift.Entry
	for i := 0; i < n; i++ {
		e, err := svc.RegisterEntry(context.Background(), accounting.EntryInput{
			PersonID: "ctl-1",
			Date:     shift.NewDate(2025, time.March, 3+i).String(),
			Sector:   "TWR",
			Start:    "0700",
			End:      "1900",
		})
		require.NoError(t, err)
		out = append(out, e)
	}
	return out
}

func assertHours(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: want %s, got %s", msg, want, got)
}

// =============================================================================
// ENTRIES
// =============================================================================

func TestRegisterEntry_DerivesFields(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	e, err := svc.RegisterEntry(ctx, accounting.EntryInput{
		PersonID: "ctl-1", Date: "2025-03-08", Sector: "app", Start: "2200", End: "0600", Actor: "sup-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "id-1", e.ID)
	assert.Equal(t, shift.SectorApproach, e.Sector)
	assertHours(t, "8", e.Hours, "overnight hours")
	assert.True(t, e.Night)
	assert.True(t, e.NonWorkingDay, "Saturday")
	assert.Equal(t, "sup-1", e.CreatedBy)
}

func TestRegisterEntry_ConflictRejected(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	first, err := svc.RegisterEntry(ctx, accounting.EntryInput{
		PersonID: "ctl-1", Date: "2025-03-04", Start: "0800", End: "1200",
	})
	require.NoError(t, err)

	_, err = svc.RegisterEntry(ctx, accounting.EntryInput{
		PersonID: "ctl-1", Date: "2025-03-04", Start: "1100", End: "1300",
	})
	require.Error(t, err)
	assert.True(t, accounting.IsConflict(err))

	var conflict *shift.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.ID, conflict.Existing.ID)

	// Touching intervals are allowed.
	_, err = svc.RegisterEntry(ctx, accounting.EntryInput{
		PersonID: "ctl-1", Date: "2025-03-04", Start: "1200", End: "1400",
	})
	require.NoError(t, err)

	day, err := store.EntriesForDay(ctx, "ctl-1", shift.NewDate(2025, time.March, 4))
	require.NoError(t, err)
	assert.Len(t, day, 2)
}

func TestRegisterEntry_OvernightConflict(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.RegisterEntry(ctx, accounting.EntryInput{
		PersonID: "ctl-1", Date: "2025-03-04", Start: "2200", End: "0600",
	})
	require.NoError(t, err)

	_, err = svc.RegisterEntry(ctx, accounting.EntryInput{
		PersonID: "ctl-1", Date: "2025-03-04", Start: "2300", End: "0100",
	})
	assert.True(t, accounting.IsConflict(err))
}

func TestRegisterEntry_InvalidInput(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   accounting.EntryInput
		want error
	}{
		{"zero length", accounting.EntryInput{PersonID: "ctl-1", Date: "2025-03-04", Start: "0800", End: "0800"}, shift.ErrZeroLengthInterval},
		{"bad start", accounting.EntryInput{PersonID: "ctl-1", Date: "2025-03-04", Start: "2460", End: "0800"}, shift.ErrInvalidTime},
		{"bad end", accounting.EntryInput{PersonID: "ctl-1", Date: "2025-03-04", Start: "0800", End: "8"}, shift.ErrInvalidTime},
		{"bad date", accounting.EntryInput{PersonID: "ctl-1", Date: "04/03/2025", Start: "0800"}, shift.ErrInvalidDate},
		{"bad sector", accounting.EntryInput{PersonID: "ctl-1", Date: "2025-03-04", Sector: "GND", Start: "0800"}, shift.ErrInvalidSector},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterEntry(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, accounting.IsClientError(err))
		})
	}
}

func TestRegisterEntry_UnknownPerson(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.RegisterEntry(context.Background(), accounting.EntryInput{
		PersonID: "ghost", Date: "2025-03-04", Start: "0800", End: "1000",
	})
	assert.ErrorIs(t, err, accounting.ErrPersonNotFound)
	assert.True(t, accounting.IsNotFound(err))
}

func TestRegisterEntry_HolidayIsNonWorkingDay(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.AddHoliday(ctx, shift.Holiday{UnitID: "LECS", Date: shift.NewDate(2025, time.March, 19), Name: "Sant Josep"})
	require.NoError(t, err)

	e, err := svc.RegisterEntry(ctx, accounting.EntryInput{
		PersonID: "ctl-1", Date: "2025-03-19", Start: "0800", End: "1500",
	})
	require.NoError(t, err)
	assert.True(t, e.NonWorkingDay)

	e, err = svc.RegisterEntry(ctx, accounting.EntryInput{
		PersonID: "ctl-1", Date: "2025-03-20", Start: "0800", End: "1500",
	})
	require.NoError(t, err)
	assert.False(t, e.NonWorkingDay)
}

func TestAddHoliday_DuplicateReturnsStoredID(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	day := shift.NewDate(2025, time.March, 19)

	first, err := svc.AddHoliday(ctx, shift.Holiday{UnitID: "LECS", Date: day, Name: "Sant Josep"})
	require.NoError(t, err)
	again, err := svc.AddHoliday(ctx, shift.Holiday{UnitID: "LECS", Date: day, Name: "Sant Josep", Recurring: true})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, again.Recurring)

	require.NoError(t, svc.DeleteHoliday(ctx, again.ID))
	holidays, err := svc.Holidays(ctx, "LECS")
	require.NoError(t, err)
	assert.Empty(t, holidays)
}

func TestCloseEntry(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	open, err := svc.RegisterEntry(ctx, accounting.EntryInput{
		PersonID: "ctl-1", Date: "2025-03-04", Start: "0800",
	})
	require.NoError(t, err)
	assert.True(t, open.IsOpen())
	assert.True(t, open.Hours.IsZero())

	closed, err := svc.CloseEntry(ctx, open.ID, "1330", "ctl-1")
	require.NoError(t, err)
	assert.False(t, closed.IsOpen())
	assertHours(t, "5.5", closed.Hours, "closed hours")
	assert.Equal(t, open.CreatedAt, closed.CreatedAt)
}

func TestEditEntry_SkipsItself(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	e, err := svc.RegisterEntry(ctx, accounting.EntryInput{
		PersonID: "ctl-1", Date: "2025-03-04", Start: "0800", End: "1200",
	})
	require.NoError(t, err)

	edited, err := svc.EditEntry(ctx, e.ID, accounting.EntryInput{
		Date: "2025-03-04", Start: "0900", End: "1300",
	})
	require.NoError(t, err)
	assertHours(t, "4", edited.Hours, "edited hours")

	_, err = svc.EditEntry(ctx, "missing", accounting.EntryInput{Date: "2025-03-04", Start: "0900"})
	assert.ErrorIs(t, err, accounting.ErrEntryNotFound)
}

// =============================================================================
// METRICS
// =============================================================================

func TestComputeMonth_FromRegistry(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()
	registerDays(t, svc, 10) // 120 h

	m, err := svc.ComputeMonth(ctx, "ctl-1", march, "")
	require.NoError(t, err)

	assertHours(t, "120", m.HT, "HT")
	assertHours(t, "20", m.HE, "HE")
	assertHours(t, "10", m.HCP, "HCP")
	assertHours(t, "10", m.HAC, "HAC")
	assert.Equal(t, balance.SourceRegistry, m.Source)

	stored, err := store.GetMetrics(ctx, "ctl-1", march)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, m, *stored)
}

func TestComputeMonth_Idempotent(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	registerDays(t, svc, 10)

	a, err := svc.ComputeMonth(ctx, "ctl-1", march, "")
	require.NoError(t, err)
	b, err := svc.ComputeMonth(ctx, "ctl-1", march, "")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeMonth_FillsGapMonths(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()
	registerDays(t, svc, 10)

	_, err := svc.ComputeMonth(ctx, "ctl-1", march, "")
	require.NoError(t, err)

	m, err := svc.ComputeMonth(ctx, "ctl-1", may, "")
	require.NoError(t, err)
	assertHours(t, "10", m.SA, "May SA carried through April")
	assert.Equal(t, balance.SACarried, m.SASource)

	gap, err := store.GetMetrics(ctx, "ctl-1", april)
	require.NoError(t, err)
	require.NotNil(t, gap, "April computed on the way")
	assert.True(t, gap.HT.IsZero())
	assertHours(t, "10", gap.HAC, "April HAC")
}

func TestComputeMonth_UnknownPersonIsZeroRow(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	m, err := svc.ComputeMonth(ctx, "ghost", march, "")
	require.NoError(t, err)
	assert.True(t, m.HT.IsZero())
	assert.True(t, m.HAC.IsZero())
	assert.Equal(t, balance.SANone, m.SASource)

	stored, err := store.GetMetrics(ctx, "ghost", march)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestComputeMonth_NoConfigUsesDefaults(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.CreatePerson(ctx, accounting.Person{ID: "ctl-9", UnitID: "GCXO"})
	require.NoError(t, err)

	m, err := svc.ComputeMonth(ctx, "ctl-9", march, "")
	require.NoError(t, err)
	assert.True(t, m.HT.IsZero())
	assert.True(t, m.HE.IsZero())
	assert.True(t, m.SA.IsZero())
}

func TestRegisterEntry_RefreshesStoredMonth(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()
	registerDays(t, svc, 10)

	_, err := svc.ComputeMonth(ctx, "ctl-1", march, "")
	require.NoError(t, err)

	_, err = svc.RegisterEntry(ctx, accounting.EntryInput{
		PersonID: "ctl-1", Date: "2025-03-20", Start: "0800", End: "1000",
	})
	require.NoError(t, err)

	m, err := store.GetMetrics(ctx, "ctl-1", march)
	require.NoError(t, err)
	assertHours(t, "122", m.HT, "HT after late registration")
	assertHours(t, "11", m.HAC, "HAC after late registration")
}

func TestDeleteEntry_RecomputesForward(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()
	entries := registerDays(t, svc, 10)

	_, err := svc.ComputeMonth(ctx, "ctl-1", march, "")
	require.NoError(t, err)
	_, err = svc.ComputeMonth(ctx, "ctl-1", april, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEntry(ctx, entries[0].ID))

	mar, err := store.GetMetrics(ctx, "ctl-1", march)
	require.NoError(t, err)
	assertHours(t, "108", mar.HT, "March HT")
	assertHours(t, "4", mar.HAC, "March HAC")

	apr, err := store.GetMetrics(ctx, "ctl-1", april)
	require.NoError(t, err)
	assertHours(t, "4", apr.SA, "April SA follows March")

	assert.ErrorIs(t, svc.DeleteEntry(ctx, entries[0].ID), accounting.ErrEntryNotFound)
}

func TestSetAdjustment_OverridesAndRefreshesLaterMonths(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()
	registerDays(t, svc, 10)

	_, err := svc.ComputeMonth(ctx, "ctl-1", march, "")
	require.NoError(t, err)
	_, err = svc.ComputeMonth(ctx, "ctl-1", may, "")
	require.NoError(t, err)

	adj, err := svc.SetAdjustment(ctx, balance.Adjustment{
		PersonID: "ctl-1", Month: april, Override: decimal.NewFromInt(20), Reason: "audit", CreatedBy: "sup-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, adj.ID)

	mar, _ := store.GetMetrics(ctx, "ctl-1", march)
	apr, _ := store.GetMetrics(ctx, "ctl-1", april)
	mayRow, _ := store.GetMetrics(ctx, "ctl-1", may)

	assertHours(t, "10", mar.HAC, "March untouched")
	assertHours(t, "20", apr.SA, "April SA overridden")
	assert.Equal(t, balance.SAManual, apr.SASource)
	assertHours(t, "20", mayRow.SA, "May carries from April")

	// Replacing keeps one adjustment per month.
	again, err := svc.SetAdjustment(ctx, balance.Adjustment{
		PersonID: "ctl-1", Month: april, Override: decimal.NewFromInt(-5), Reason: "correction",
	})
	require.NoError(t, err)
	assert.Equal(t, adj.ID, again.ID)

	mayRow, _ = store.GetMetrics(ctx, "ctl-1", may)
	assertHours(t, "-5", mayRow.SA, "May after replacement")
}

func TestSetAdjustment_Validation(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.SetAdjustment(ctx, balance.Adjustment{
		PersonID: "ctl-1", Month: april, Override: decimal.NewFromInt(1000), Reason: "x",
	})
	assert.ErrorIs(t, err, balance.ErrInvalidAdjustment)
	assert.True(t, accounting.IsClientError(err))

	_, err = svc.SetAdjustment(ctx, balance.Adjustment{
		PersonID: "ctl-1", Month: april, Override: decimal.NewFromInt(5), Reason: "  ",
	})
	assert.ErrorIs(t, err, balance.ErrInvalidAdjustment)
}

func TestCloseMonth_AllPersonsOfUnit(t *testing.T) {
	svc, store := setup(t)
	svc.Concurrency = 2
	ctx := context.Background()

	for i := 2; i <= 6; i++ {
		_, err := svc.CreatePerson(ctx, accounting.Person{ID: fmt.Sprintf("ctl-%d", i), UnitID: "LECS"})
		require.NoError(t, err)
	}
	_, err := svc.CreatePerson(ctx, accounting.Person{ID: "other", UnitID: "LEMD"})
	require.NoError(t, err)
	registerDays(t, svc, 10)

	rows, err := svc.CloseMonth(ctx, "LECS", march, "")
	require.NoError(t, err)
	require.Len(t, rows, 6)

	for _, r := range rows {
		stored, err := store.GetMetrics(ctx, r.PersonID, march)
		require.NoError(t, err)
		require.NotNil(t, stored, r.PersonID)
		if r.PersonID == "ctl-1" {
			assertHours(t, "10", r.HAC, "ctl-1 HAC")
		} else {
			assert.True(t, r.HT.IsZero(), r.PersonID)
		}
	}

	other, err := store.GetMetrics(ctx, "other", march)
	require.NoError(t, err)
	assert.Nil(t, other, "other units are not closed")
}

func TestMetricsHistory(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	registerDays(t, svc, 10)

	_, err := svc.ComputeMonth(ctx, "ctl-1", march, "")
	require.NoError(t, err)
	_, err = svc.ComputeMonth(ctx, "ctl-1", may, "")
	require.NoError(t, err)

	rows, err := svc.MetricsHistory(ctx, "ctl-1", march, may)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []shift.Month{march, april, may}, []shift.Month{rows[0].Month, rows[1].Month, rows[2].Month})
}

func TestComputeMonth_EarlierMonthRefreshesStoredLaterMonths(t *testing.T) {
	// GIVEN: 120 h in March and May already stored before March was computed
	// WHEN: March is computed afterwards
	// THEN: April is filled and May's SA carries March's HAC
	svc, store := setup(t)
	ctx := context.Background()
	registerDays(t, svc, 10)

	early, err := svc.ComputeMonth(ctx, "ctl-1", may, "")
	require.NoError(t, err)
	assert.True(t, early.SA.IsZero())

	mar, err := svc.ComputeMonth(ctx, "ctl-1", march, "")
	require.NoError(t, err)
	assertHours(t, "10", mar.HAC, "March HAC")

	apr, err := store.GetMetrics(ctx, "ctl-1", april)
	require.NoError(t, err)
	require.NotNil(t, apr, "April filled between March and May")
	assertHours(t, "10", apr.SA, "April SA")

	mayRow, err := store.GetMetrics(ctx, "ctl-1", may)
	require.NoError(t, err)
	assertHours(t, "10", mayRow.SA, "May SA follows March")
	assertHours(t, "10", mayRow.HAC, "May HAC")
	assert.Equal(t, balance.SACarried, mayRow.SASource)
}

func TestComputeMonth_EarlierMonthThenLaterEntryKeepsChain(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	registerDays(t, svc, 10)
	feb := shift.NewMonth(2025, time.February)

	_, err := svc.ComputeMonth(ctx, "ctl-1", may, "")
	require.NoError(t, err)
	_, err = svc.ComputeMonth(ctx, "ctl-1", feb, "")
	require.NoError(t, err)
	_, err = svc.RegisterEntry(ctx, accounting.EntryInput{
		PersonID: "ctl-1", Date: "2025-04-10", Start: "0800", End: "1000",
	})
	require.NoError(t, err)

	rows, err := svc.MetricsHistory(ctx, "ctl-1", feb, may)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assertHours(t, "0", rows[0].HAC, "February HAC")
	assertHours(t, "10", rows[1].HAC, "March HAC")
	assertHours(t, "10", rows[2].SA, "April SA")
	assertHours(t, "2", rows[2].HT, "April HT")
	assertHours(t, "10", rows[3].SA, "May SA")
}

func TestRegisterEntry_RefreshFillsUnstoredMonthsBeforeChange(t *testing.T) {
	// GIVEN: February and May are stored, March and April are not
	// WHEN: An April entry triggers a refresh
	// THEN: The walk starts in March, so March's extra hours reach May
	svc, store := setup(t)
	ctx := context.Background()
	registerDays(t, svc, 10)
	feb := shift.NewMonth(2025, time.February)

	for _, m := range []shift.Month{feb, may} {
		require.NoError(t, store.SaveMetrics(ctx, balance.Metrics{
			PersonID: "ctl-1", Month: m, Source: balance.SourceRegistry,
			SASource: balance.SANone,
		}))
	}

	_, err := svc.RegisterEntry(ctx, accounting.EntryInput{
		PersonID: "ctl-1", Date: "2025-04-10", Start: "0800", End: "1000",
	})
	require.NoError(t, err)

	mar, err := store.GetMetrics(ctx, "ctl-1", march)
	require.NoError(t, err)
	require.NotNil(t, mar, "March computed on the way")
	assertHours(t, "10", mar.HAC, "March HAC")

	mayRow, err := store.GetMetrics(ctx, "ctl-1", may)
	require.NoError(t, err)
	assertHours(t, "10", mayRow.SA, "May SA")
}

// =============================================================================
// ROSTER
// =============================================================================

func TestComputeMonth_FromRoster(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.AddShiftType(ctx, "LECS", shift.ShiftType{
		Code: "M", Name: "Morning", Start: shift.MustParseClock("0700"), End: shift.MustParseClock("1500"),
	}))
	require.NoError(t, svc.AddShiftType(ctx, "LECS", shift.ShiftType{
		Code: "N", Name: "Night", Start: shift.MustParseClock("2200"), End: shift.MustParseClock("0700"),
	}))

	for _, a := range []accounting.AssignmentInput{
		{PersonID: "ctl-1", Date: "2025-03-03", ShiftCode: "M"},
		{PersonID: "ctl-1", Date: "2025-03-04", ShiftCode: "N"},
	} {
		_, err := svc.AddAssignment(ctx, a)
		require.NoError(t, err)
	}

	_, err := svc.AddAssignment(ctx, accounting.AssignmentInput{PersonID: "ctl-1", Date: "2025-03-05", ShiftCode: "X"})
	assert.ErrorIs(t, err, accounting.ErrUnknownShift)

	m, err := svc.ComputeMonth(ctx, "ctl-1", march, balance.SourceRoster)
	require.NoError(t, err)
	assertHours(t, "17", m.HT, "roster HT")
	assert.Equal(t, balance.SourceRoster, m.Source)
}

func TestAddShiftType_RejectsInvalid(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	err := svc.AddShiftType(ctx, "LECS", shift.ShiftType{
		Code: "Z", Start: shift.MustParseClock("0700"), End: shift.MustParseClock("0700"),
	})
	assert.ErrorIs(t, err, accounting.ErrInvalidShift)
	assert.ErrorIs(t, err, shift.ErrZeroLengthInterval)
	assert.NotErrorIs(t, err, accounting.ErrUnknownShift)
	assert.True(t, accounting.IsClientError(err))

	err = svc.AddShiftType(ctx, "LECS", shift.ShiftType{
		Code: " ", Start: shift.MustParseClock("0700"), End: shift.MustParseClock("1500"),
	})
	assert.ErrorIs(t, err, accounting.ErrInvalidShift)
	assert.NotErrorIs(t, err, accounting.ErrUnknownShift)
}

// =============================================================================
// SECTORS AND CONFIGURATION
// =============================================================================

func TestSectorSummary(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	for _, in := range []accounting.EntryInput{
		{PersonID: "ctl-1", Date: "2025-03-04", Sector: "TWR", Start: "0800", End: "1200"},
		{PersonID: "ctl-1", Date: "2025-03-05", Sector: "APP", Start: "0800", End: "1100"},
		{PersonID: "ctl-1", Date: "2025-03-06", Sector: "APP", Start: "0800"},
	} {
		_, err := svc.RegisterEntry(ctx, in)
		require.NoError(t, err)
	}

	report, err := svc.SectorSummary(ctx, "ctl-1", march)
	require.NoError(t, err)
	assertHours(t, "4", report.Consolidation.Sector(shift.SectorTower), "TWR")
	assertHours(t, "3", report.Consolidation.Sector(shift.SectorApproach), "APP")
	assertHours(t, "7", report.Consolidation.Total, "total")
	assert.Equal(t, 1, report.Consolidation.OpenEntries)
	assert.True(t, report.Compliance.MeetsMinimum)
	assertHours(t, "1", report.Compliance.Difference, "above minimum")
}

func TestSetUnitConfig(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	cfg, err := svc.UnitConfig(ctx, "GCXO")
	require.NoError(t, err)
	assert.Equal(t, "GCXO", cfg.UnitID)
	assertHours(t, "180", cfg.StandardMonthlyHours, "default std")

	err = svc.SetUnitConfig(ctx, balance.UnitConfig{
		UnitID:               "GCXO",
		StandardMonthlyHours: decimal.NewFromInt(400),
		PaymentPercentage:    decimal.NewFromInt(70),
	})
	var rangeErr *balance.RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "standard_monthly_hours", rangeErr.Field)

	require.NoError(t, svc.SetUnitConfig(ctx, balance.UnitConfig{
		UnitID:               "GCXO",
		StandardMonthlyHours: decimal.NewFromInt(160),
		PaymentPercentage:    decimal.NewFromInt(80),
	}))
	cfg, err = svc.UnitConfig(ctx, "GCXO")
	require.NoError(t, err)
	assertHours(t, "160", cfg.StandardMonthlyHours, "stored std")
	assertHours(t, "6", cfg.MinimumHours, "minimum defaulted")
}
