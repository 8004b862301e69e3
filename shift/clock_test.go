package shift_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-hours/shift"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func clk(s string) shift.Clock { return shift.MustParseClock(s) }

// =============================================================================
// PARSING
// =============================================================================

func TestParseClock_Valid(t *testing.T) {
	cases := map[string]int{
		"0000": 0,
		"0001": 1,
		"0700": 420,
		"1230": 750,
		"2359": 1439,
	}
	for in, want := range cases {
		c, err := shift.ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, c.Minutes(), in)
		assert.Equal(t, want, shift.ToMinutes(in), in)
		assert.Equal(t, in, c.String())
	}
}

func TestToMinutes_InvalidIsZero(t *testing.T) {
	for _, in := range []string{"", "7", "070", "07:0", "2460", "abcd", "08000"} {
		assert.NotPanics(t, func() {
			assert.Equal(t, 0, shift.ToMinutes(in), in)
		}, in)
	}
}

func TestParseClock_Invalid(t *testing.T) {
	for _, in := range []string{"", "800", "08:00", "2400", "1260", "ab12", "12345", "-100"} {
		_, err := shift.ParseClock(in)
		require.Error(t, err, in)
		assert.ErrorIs(t, err, shift.ErrInvalidTime, in)

		var fmtErr *shift.TimeFormatError
		require.ErrorAs(t, err, &fmtErr)
		assert.Equal(t, in, fmtErr.Value, "error should name the offending value")
	}
}

// =============================================================================
// DURATION
// =============================================================================

func TestDuration(t *testing.T) {
	tests := []struct {
		start, end string
		want       string
	}{
		{"0800", "1200", "4"},
		{"0800", "0930", "1.5"},
		{"2200", "0600", "8"}, // overnight
		{"2330", "0015", "0.75"},
		{"0800", "0800", "0"}, // equal start/end
		{"0000", "2359", dec("1439").Div(dec("60")).String()},
	}
	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			got := shift.Duration(clk(tt.start), clk(tt.end))
			assert.True(t, dec(tt.want).Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestDuration_NeverNegativeAndOvernightRule(t *testing.T) {
	for s := 0; s < shift.MinutesPerDay; s += 17 {
		for e := 0; e < shift.MinutesPerDay; e += 19 {
			start, end := shift.Clock(s), shift.Clock(e)
			got := shift.Duration(start, end)
			assert.False(t, got.IsNegative())

			if e < s {
				want := decimal.NewFromInt(int64(e + shift.MinutesPerDay - s)).Div(decimal.NewFromInt(60))
				assert.True(t, want.Equal(got), "%s-%s", start, end)
			}
		}
	}
}

// =============================================================================
// FORMATTING
// =============================================================================

func TestFormatHours(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "00:00"},
		{"4", "04:00"},
		{"1.5", "01:30"},
		{"7.75", "07:45"},
		{"0.3333333333", "00:20"},
		{"2.9999", "03:00"}, // rounding carries into the hour
		{"-9.5", "-09:30"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shift.FormatHours(dec(tt.in)), tt.in)
	}
}

func TestFormatHours_RoundTripsElapsedMinutes(t *testing.T) {
	for s := 0; s < shift.MinutesPerDay; s += 13 {
		for e := 0; e < shift.MinutesPerDay; e += 11 {
			start, end := shift.Clock(s), shift.Clock(e)
			formatted := shift.FormatHours(shift.Duration(start, end))

			var h, m int
			_, err := fmt.Sscanf(formatted, "%d:%d", &h, &m)
			require.NoError(t, err, formatted)
			require.Less(t, m, 60)

			diff := h*60 + m - shift.ElapsedMinutes(start, end)
			assert.LessOrEqual(t, abs(diff), 1, "%s-%s -> %s", start, end, formatted)
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// =============================================================================
// NIGHT WINDOW
// =============================================================================

func TestIsNightWindow_Boundaries(t *testing.T) {
	assert.True(t, shift.IsNightWindow(clk("2100")), "21:00 opens the window")
	assert.True(t, shift.IsNightWindow(clk("2359")))
	assert.True(t, shift.IsNightWindow(clk("0000")))
	assert.True(t, shift.IsNightWindow(clk("0659")), "06:59 is still night")
	assert.False(t, shift.IsNightWindow(clk("0700")), "07:00 closes the window")
	assert.False(t, shift.IsNightWindow(clk("2059")))
	assert.False(t, shift.IsNightWindow(clk("1200")))
}

func TestIsNightWindow_Exhaustive(t *testing.T) {
	for m := 0; m < shift.MinutesPerDay; m++ {
		want := m >= 21*60 || m < 7*60
		assert.Equal(t, want, shift.IsNightWindow(shift.Clock(m)), shift.Clock(m).Display())
	}
}

// =============================================================================
// DATES
// =============================================================================

func TestMonthNavigation(t *testing.T) {
	jan := shift.NewMonth(2025, time.January)
	assert.Equal(t, shift.NewMonth(2024, time.December), jan.Previous())
	assert.Equal(t, shift.NewMonth(2025, time.February), jan.Next())
	assert.Equal(t, shift.NewDate(2025, time.January, 31), jan.End())
	assert.Len(t, shift.NewMonth(2024, time.February).Days(), 29)
	assert.True(t, jan.Before(jan.Next()))
	assert.False(t, jan.Next().Before(jan))
	assert.Equal(t, "2025-01", jan.String())

	parsed, err := shift.ParseMonth("2025-03")
	require.NoError(t, err)
	assert.Equal(t, shift.NewMonth(2025, time.March), parsed)

	_, err = shift.ParseMonth("2025-13")
	assert.ErrorIs(t, err, shift.ErrInvalidDate)
}

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	late := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, shift.NewDate(2025, time.March, 10), shift.DateOf(late))

	d, err := shift.ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, shift.DateOf(late), d)
}
