package factory

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
	"github.com/warp/shift-hours/store/memory"
)

func TestParseProfile_Standard(t *testing.T) {
	f := NewProfileFactory()

	p, err := f.ParseProfile(StandardUnitJSON("LECS", "Palma ACC", 160, 75))
	require.NoError(t, err)

	assert.Equal(t, "LECS", p.Config.UnitID)
	assert.Equal(t, "Palma ACC", p.Name)
	assert.True(t, decimal.NewFromInt(160).Equal(p.Config.StandardMonthlyHours))
	assert.True(t, decimal.NewFromInt(75).Equal(p.Config.PaymentPercentage))
	require.Len(t, p.Shifts, 3)
	assert.True(t, p.Shifts[2].Night())
	assert.True(t, decimal.NewFromInt(9).Equal(p.Shifts[2].Hours()))

	require.Len(t, p.Holidays, 2)
	assert.Equal(t, "LECS", p.Holidays[0].UnitID)
	assert.True(t, p.Holidays[1].Recurring)
}

func TestParseProfile_DefaultsWhenOmitted(t *testing.T) {
	p, err := NewProfileFactory().ParseProfile(`{"unit_id": "GCXO"}`)
	require.NoError(t, err)

	assert.Equal(t, balance.DefaultStandardMonthlyHours, p.Config.StandardMonthlyHours)
	assert.Equal(t, balance.DefaultPaymentPercentage, p.Config.PaymentPercentage)
	assert.Equal(t, balance.DefaultMinimumHours, p.Config.MinimumHours)
	assert.Empty(t, p.Shifts)
}

func TestParseProfile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		json string
		want error
	}{
		{"malformed", `{"unit_id": `, ErrInvalidProfile},
		{"missing unit", `{"standard_monthly_hours": 180}`, ErrInvalidProfile},
		{"std out of band", `{"unit_id": "X", "standard_monthly_hours": 20}`, balance.ErrInvalidConfig},
		{"pct out of band", `{"unit_id": "X", "payment_percentage": 101}`, balance.ErrInvalidConfig},
		{"bad shift time", `{"unit_id": "X", "shifts": [{"code": "M", "start": "7:00", "end": "1500"}]}`, shift.ErrInvalidTime},
		{"zero-length shift", `{"unit_id": "X", "shifts": [{"code": "M", "start": "0700", "end": "0700"}]}`, ErrInvalidProfile},
		{"duplicate code", `{"unit_id": "X", "shifts": [
			{"code": "M", "start": "0700", "end": "1500"},
			{"code": "M", "start": "0800", "end": "1600"}]}`, ErrInvalidProfile},
		{"bad holiday", `{"unit_id": "X", "holidays": [{"date": "25/12/2025", "name": "Christmas"}]}`, shift.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProfileFactory().ParseProfile(tt.json)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestToJSON_RoundTrip(t *testing.T) {
	f := NewProfileFactory()
	p, err := f.ParseProfile(StandardUnitJSON("LECS", "Palma ACC", 180, 70))
	require.NoError(t, err)

	again, err := f.FromJSON(f.ToJSON(*p))
	require.NoError(t, err)
	assert.Equal(t, p.Shifts, again.Shifts)
	assert.Len(t, again.Holidays, 2)
	assert.True(t, p.Config.PaymentPercentage.Equal(again.Config.PaymentPercentage))
}

func TestApplyProfile(t *testing.T) {
	ctx := context.Background()
	svc := accounting.NewService(memory.New(), nil)

	p, err := NewProfileFactory().ParseProfile(StandardUnitJSON("LECS", "Palma ACC", 160, 75))
	require.NoError(t, err)
	require.NoError(t, svc.ApplyProfile(ctx, *p))
	// Applying twice does not duplicate holidays
	require.NoError(t, svc.ApplyProfile(ctx, *p))

	stored, err := svc.Profile(ctx, "LECS")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(160).Equal(stored.Config.StandardMonthlyHours))
	assert.Len(t, stored.Shifts, 3)
	assert.Len(t, stored.Holidays, 2)

	// The catalogue now backs roster assignments
	_, err = svc.CreatePerson(ctx, accounting.Person{ID: "ctl-1", UnitID: "LECS"})
	require.NoError(t, err)
	_, err = svc.AddAssignment(ctx, accounting.AssignmentInput{PersonID: "ctl-1", Date: "2025-03-03", ShiftCode: "N"})
	require.NoError(t, err)

	m, err := svc.ComputeMonth(ctx, "ctl-1", shift.NewMonth(2025, time.March), balance.SourceRoster)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(9).Equal(m.HT))
}
