package shift

import "github.com/shopspring/decimal"

// =============================================================================
// SECTOR CONSOLIDATOR - Monthly group-by-sector sums for one person
// =============================================================================

// Consolidation is the per-sector and total hour sum of a set of entries.
type Consolidation struct {
	BySector           map[Sector]decimal.Decimal
	Total              decimal.Decimal
	NightHours         decimal.Decimal
	NonWorkingDayHours decimal.Decimal
	Entries            int // closed entries that contributed
	OpenEntries        int // skipped because still open
}

// Consolidate sums Hours by sector. Open entries are counted but not summed.
// No cross-month logic: callers pass the entries of the month they want.
func Consolidate(entries []Entry) Consolidation {
	c := Consolidation{
		BySector:           make(map[Sector]decimal.Decimal, len(Sectors)+1),
		Total:              decimal.Zero,
		NightHours:         decimal.Zero,
		NonWorkingDayHours: decimal.Zero,
	}
	for _, s := range Sectors {
		c.BySector[s] = decimal.Zero
	}

	for _, e := range entries {
		if e.IsOpen() {
			c.OpenEntries++
			continue
		}
		c.BySector[e.Sector] = c.BySector[e.Sector].Add(e.Hours)
		c.Total = c.Total.Add(e.Hours)
		if e.Night {
			c.NightHours = c.NightHours.Add(e.Hours)
		}
		if e.NonWorkingDay {
			c.NonWorkingDayHours = c.NonWorkingDayHours.Add(e.Hours)
		}
		c.Entries++
	}
	return c
}

// Sector returns the sum for one sector (zero when absent).
func (c Consolidation) Sector(s Sector) decimal.Decimal {
	if v, ok := c.BySector[s]; ok {
		return v
	}
	return decimal.Zero
}

// =============================================================================
// COMPLIANCE - Minimum activity hours (VCP trigger)
// =============================================================================

// Compliance is the outcome of the minimum-hours check.
// Difference is total - minimum and is reported even when non-negative.
type Compliance struct {
	Total        decimal.Decimal
	Minimum      decimal.Decimal
	Difference   decimal.Decimal
	MeetsMinimum bool
	RequiresVCP  bool // professional competence verification required
}

// CheckMinimum compares total against the configured minimum.
func CheckMinimum(total, minimum decimal.Decimal) Compliance {
	meets := total.GreaterThanOrEqual(minimum)
	return Compliance{
		Total:        total,
		Minimum:      minimum,
		Difference:   total.Sub(minimum),
		MeetsMinimum: meets,
		RequiresVCP:  !meets,
	}
}
