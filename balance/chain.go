package balance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-hours/shift"
)

// =============================================================================
// CHAIN - Forward-only walk over consecutive months
// =============================================================================

// MonthHours is the HT of one month in a chain.
type MonthHours struct {
	Month shift.Month
	HT    decimal.Decimal
}

// Chain computes consecutive months for one person. The HAC of each month
// becomes the SA of the next, unless that month carries an adjustment.
// opening is the metrics row of the month before months[0], or nil.
// Months must be strictly increasing. Gaps are not filled; build the input
// with FillMonths when every calendar month needs a row.
func Chain(personID string, months []MonthHours, cfg UnitConfig, adjustments Adjustments,
	opening *Metrics, source HoursSource) ([]Metrics, error) {

	out := make([]Metrics, 0, len(months))
	prior := opening
	for i, mh := range months {
		if i > 0 && !months[i-1].Month.Before(mh.Month) {
			return nil, fmt.Errorf("%w: %s after %s", ErrMonthsOutOfOrder, mh.Month, months[i-1].Month)
		}
		if prior != nil && !prior.Month.IsZero() && !prior.Month.Before(mh.Month) {
			return nil, fmt.Errorf("%w: opening %s not before %s", ErrMonthsOutOfOrder, prior.Month, mh.Month)
		}
		m := ComputeMonth(personID, mh.Month, mh.HT, cfg, adjustments.For(mh.Month), prior, source)
		out = append(out, m)
		prior = &out[len(out)-1]
	}
	return out, nil
}

// FillMonths returns every month from first to last inclusive, taking HT
// from hours when present and zero otherwise.
func FillMonths(first, last shift.Month, hours map[shift.Month]decimal.Decimal) []MonthHours {
	var out []MonthHours
	for m := first; !last.Before(m); m = m.Next() {
		ht, ok := hours[m]
		if !ok {
			ht = decimal.Zero
		}
		out = append(out, MonthHours{Month: m, HT: ht})
	}
	return out
}
