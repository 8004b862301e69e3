package balance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-hours/shift"
)

// =============================================================================
// METRICS - One computed month
// =============================================================================

// Precision is the number of decimal places every metric is rounded to.
const Precision = 2

// SASource records where the starting balance came from.
type SASource string

const (
	SANone    SASource = "none"    // no prior month, no adjustment
	SACarried SASource = "carried" // previous month's HAC
	SAManual  SASource = "manual"  // manual adjustment override
)

// HoursSource records where HT came from.
type HoursSource string

const (
	SourceRegistry HoursSource = "registry" // registered worked intervals
	SourceRoster   HoursSource = "roster"   // published roster assignments
)

// ParseHoursSource reads "registry" or "roster". Empty means registry.
func ParseHoursSource(s string) (HoursSource, error) {
	switch HoursSource(s) {
	case "", SourceRegistry:
		return SourceRegistry, nil
	case SourceRoster:
		return SourceRoster, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
}

// Metrics is the regulatory row for one person and month.
type Metrics struct {
	PersonID string
	Month    shift.Month

	HT  decimal.Decimal // hours worked
	HE  decimal.Decimal // extra hours
	SA  decimal.Decimal // starting balance
	HCP decimal.Decimal // payable hours
	HAC decimal.Decimal // closing balance carried forward

	SASource SASource
	Source   HoursSource
}

// Input is everything Compute needs for one month.
type Input struct {
	PersonID        string
	Month           shift.Month
	HT              decimal.Decimal
	Config          UnitConfig
	StartingBalance decimal.Decimal
	SASource        SASource
	Source          HoursSource
}

// =============================================================================
// ENGINE
// =============================================================================

// ResolveStartingBalance applies the SA precedence: a manual adjustment for
// the month is used verbatim; otherwise the prior month's HAC; otherwise 0.
func ResolveStartingBalance(adj *Adjustment, prior *Metrics) (decimal.Decimal, SASource) {
	if adj != nil {
		return adj.Override, SAManual
	}
	if prior != nil {
		return prior.HAC, SACarried
	}
	return decimal.Zero, SANone
}

// Compute derives HE, HCP and HAC. Each term is rounded to Precision and HAC
// is built from the rounded terms, so HAC == HE - HCP + SA holds exactly.
func Compute(in Input) Metrics {
	ht := in.HT.Round(Precision)
	sa := in.StartingBalance.Round(Precision)

	he := in.HT.Sub(in.Config.StandardMonthlyHours)
	if he.IsNegative() {
		he = decimal.Zero
	}
	he = he.Round(Precision)

	hcp := he.Mul(in.Config.PaymentPercentage).Div(hundred).Round(Precision)
	hac := he.Sub(hcp).Add(sa)

	source := in.Source
	if source == "" {
		source = SourceRegistry
	}
	saSource := in.SASource
	if saSource == "" {
		saSource = SANone
	}

	return Metrics{
		PersonID: in.PersonID,
		Month:    in.Month,
		HT:       ht,
		HE:       he,
		SA:       sa,
		HCP:      hcp,
		HAC:      hac,
		SASource: saSource,
		Source:   source,
	}
}

// ComputeMonth resolves SA and computes in one step.
func ComputeMonth(personID string, month shift.Month, ht decimal.Decimal, cfg UnitConfig,
	adj *Adjustment, prior *Metrics, source HoursSource) Metrics {
	sa, from := ResolveStartingBalance(adj, prior)
	return Compute(Input{
		PersonID:        personID,
		Month:           month,
		HT:              ht,
		Config:          cfg,
		StartingBalance: sa,
		SASource:        from,
		Source:          source,
	})
}
