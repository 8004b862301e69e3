package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-hours/accounting"
	"github.com/warp/shift-hours/balance"
	"github.com/warp/shift-hours/shift"
)

func TestEntriesForMonth_OrderedByDateThenStart(t *testing.T) {
	m := New()
	ctx := context.Background()

	save := func(id string, day int, start string) {
		end := shift.MustParseClock("2300")
		require.NoError(t, m.SaveEntry(ctx, shift.Entry{
			ID: id, PersonID: "p", Date: shift.NewDate(2025, time.March, day),
			Start: shift.MustParseClock(start), End: &end,
		}))
	}
	save("late", 5, "1400")
	save("early", 5, "0600")
	save("first", 1, "2000")
	save("april", 40, "0800") // normalizes into April

	got, err := m.EntriesForMonth(ctx, "p", shift.NewMonth(2025, time.March))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "early", got[1].ID)
	assert.Equal(t, "late", got[2].ID)

	// Same-day scans keep insertion order
	day, err := m.EntriesForDay(ctx, "p", shift.NewDate(2025, time.March, 5))
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "late", day[0].ID)
}

func TestMetrics_SortedUpsert(t *testing.T) {
	m := New()
	ctx := context.Background()
	row := func(month time.Month, hac int64) balance.Metrics {
		return balance.Metrics{PersonID: "p", Month: shift.NewMonth(2025, month), HAC: decimal.NewFromInt(hac)}
	}

	require.NoError(t, m.SaveMetrics(ctx, row(time.March, 3)))
	require.NoError(t, m.SaveMetrics(ctx, row(time.January, 1)))
	require.NoError(t, m.SaveMetrics(ctx, row(time.February, 2)))
	require.NoError(t, m.SaveMetrics(ctx, row(time.February, 20)))

	rows, err := m.MetricsRange(ctx, "p", shift.NewMonth(2025, time.January), shift.NewMonth(2025, time.December))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, time.January, rows[0].Month.Month)
	assert.True(t, rows[1].HAC.Equal(decimal.NewFromInt(20)))

	prior, err := m.LatestMetricsBefore(ctx, "p", shift.NewMonth(2025, time.March))
	require.NoError(t, err)
	require.NotNil(t, prior)
	assert.Equal(t, time.February, prior.Month.Month)

	none, err := m.LatestMetricsBefore(ctx, "p", shift.NewMonth(2025, time.January))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestReset(t *testing.T) {
	m := New()
	ctx := context.Background()

	require.NoError(t, m.SavePerson(ctx, accounting.Person{ID: "p", UnitID: "LECS"}))
	require.NoError(t, m.SaveEntry(ctx, shift.Entry{ID: "e", PersonID: "p", Date: shift.NewDate(2025, time.March, 1)}))
	require.NoError(t, m.SaveMetrics(ctx, balance.Metrics{PersonID: "p", Month: shift.NewMonth(2025, time.March)}))

	require.NoError(t, m.Reset(ctx))

	p, err := m.GetPerson(ctx, "p")
	require.NoError(t, err)
	assert.Nil(t, p)
	entries, err := m.EntriesForDay(ctx, "p", shift.NewDate(2025, time.March, 1))
	require.NoError(t, err)
	assert.Empty(t, entries)
	row, err := m.GetMetrics(ctx, "p", shift.NewMonth(2025, time.March))
	require.NoError(t, err)
	assert.Nil(t, row)

	// Usable after reset
	require.NoError(t, m.SavePerson(ctx, accounting.Person{ID: "q"}))
}
