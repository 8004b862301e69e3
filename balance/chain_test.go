package balance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-hours/balance"
	"github.com/warp/shift-hours/shift"
)

func TestChain_CarriesHACForward(t *testing.T) {
	months := []balance.MonthHours{
		{Month: march, HT: hours(195)},
		{Month: april, HT: hours(150)},
		{Month: may, HT: hours(190)},
	}

	rows, err := balance.Chain("ctl-1", months, balance.DefaultUnitConfig(), nil, nil, balance.SourceRegistry)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// March: HE 15, HCP 10.5, HAC 4.5 (no prior)
	assertDec(t, "0", rows[0].SA, "march SA")
	assertDec(t, "4.5", rows[0].HAC, "march HAC")
	assert.Equal(t, balance.SANone, rows[0].SASource)

	// April: below standard, SA passes through
	assertDec(t, "4.5", rows[1].SA, "april SA")
	assertDec(t, "4.5", rows[1].HAC, "april HAC")
	assert.Equal(t, balance.SACarried, rows[1].SASource)

	// May: HE 10, HCP 7, HAC 3 + 4.5
	assertDec(t, "7.5", rows[2].HAC, "may HAC")
}

func TestChain_AdjustmentOnlyAffectsItsMonthOnwards(t *testing.T) {
	months := []balance.MonthHours{
		{Month: march, HT: hours(195)},
		{Month: april, HT: hours(180)},
		{Month: may, HT: hours(180)},
	}
	adjustments := balance.Adjustments{
		april: {PersonID: "ctl-1", Month: april, Override: dec("20"), Reason: "audit"},
	}

	plain, err := balance.Chain("ctl-1", months, balance.DefaultUnitConfig(), nil, nil, "")
	require.NoError(t, err)
	adjusted, err := balance.Chain("ctl-1", months, balance.DefaultUnitConfig(), adjustments, nil, "")
	require.NoError(t, err)

	assert.Equal(t, plain[0], adjusted[0], "earlier month untouched")
	assertDec(t, "20", adjusted[1].SA, "april SA overridden")
	assertDec(t, "20", adjusted[2].SA, "may carries from the overridden month")
}

func TestChain_LaterMonthsDoNotChangeEarlierOnes(t *testing.T) {
	short := []balance.MonthHours{{Month: march, HT: hours(200)}}
	long := append(short, balance.MonthHours{Month: april, HT: hours(260)})

	a, err := balance.Chain("ctl-1", short, balance.DefaultUnitConfig(), nil, nil, "")
	require.NoError(t, err)
	b, err := balance.Chain("ctl-1", long, balance.DefaultUnitConfig(), nil, nil, "")
	require.NoError(t, err)

	assert.Equal(t, a[0], b[0])
}

func TestChain_OpeningRow(t *testing.T) {
	opening := &balance.Metrics{Month: shift.NewMonth(2025, time.February), HAC: dec("12")}

	rows, err := balance.Chain("ctl-1", []balance.MonthHours{{Month: march, HT: hours(100)}},
		balance.DefaultUnitConfig(), nil, opening, "")
	require.NoError(t, err)
	assertDec(t, "12", rows[0].SA, "SA from opening row")
}

func TestChain_RejectsOutOfOrder(t *testing.T) {
	_, err := balance.Chain("ctl-1", []balance.MonthHours{
		{Month: april, HT: hours(180)},
		{Month: march, HT: hours(180)},
	}, balance.DefaultUnitConfig(), nil, nil, "")
	assert.ErrorIs(t, err, balance.ErrMonthsOutOfOrder)

	_, err = balance.Chain("ctl-1", []balance.MonthHours{{Month: march, HT: hours(180)}},
		balance.DefaultUnitConfig(), nil, &balance.Metrics{Month: april}, "")
	assert.ErrorIs(t, err, balance.ErrMonthsOutOfOrder)
}

func TestFillMonths(t *testing.T) {
	filled := balance.FillMonths(march, may, map[shift.Month]decimal.Decimal{march: hours(190)})

	require.Len(t, filled, 3)
	assert.Equal(t, april, filled[1].Month)
	assert.True(t, filled[1].HT.IsZero())
	assertDec(t, "190", filled[0].HT, "march HT")
}
