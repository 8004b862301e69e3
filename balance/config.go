/*
Package balance implements the monthly balance engine.

PURPOSE:
  Converts a person's hours worked in a month (HT) into the regulatory
  metrics used for pay and carry-forward:

    HE  = max(0, HT - standard)          extra hours
    HCP = HE * percentage / 100          extra hours paid this cycle
    HAC = HE - HCP + SA                  carried into next month

  SA (starting balance) is the previous month's HAC, unless a manual
  adjustment exists for the month, in which case the adjustment wins.

KEY CONCEPTS:
  - UnitConfig: standard monthly hours and payment split of a unit
  - Adjustment: administrative override of one month's SA
  - Metrics: the computed row {HT, HE, SA, HCP, HAC}
  - Chain: forward-only walk over consecutive months

DESIGN PRINCIPLES:
  1. Pure: every function takes its inputs explicitly, nothing is cached
  2. Precision: decimal.Decimal, rounded to 2 places
  3. Forward-only: a month never depends on a later month

SEE ALSO:
  - engine.go: Compute and ResolveStartingBalance
  - chain.go: multi-month chaining
  - accounting/service.go: loads inputs and persists results
*/
package balance

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// UNIT CONFIGURATION
// =============================================================================

var (
	DefaultStandardMonthlyHours = decimal.NewFromInt(180)
	DefaultPaymentPercentage    = decimal.NewFromInt(70)
	DefaultMinimumHours         = decimal.NewFromInt(6)

	MinStandardMonthlyHours = decimal.NewFromInt(60)
	MaxStandardMonthlyHours = decimal.NewFromInt(300)
	MaxMinimumHours         = decimal.NewFromInt(48)

	hundred = decimal.NewFromInt(100)
)

// UnitConfig is the per-unit configuration read by the engine.
type UnitConfig struct {
	UnitID               string
	StandardMonthlyHours decimal.Decimal
	PaymentPercentage    decimal.Decimal
	MinimumHours         decimal.Decimal // minimum monthly activity before VCP
}

// DefaultUnitConfig is used when a unit has no stored configuration.
func DefaultUnitConfig() UnitConfig {
	return UnitConfig{
		StandardMonthlyHours: DefaultStandardMonthlyHours,
		PaymentPercentage:    DefaultPaymentPercentage,
		MinimumHours:         DefaultMinimumHours,
	}
}

// OrDefault returns cfg, or the defaults (keeping unitID) when cfg is nil.
func OrDefault(cfg *UnitConfig, unitID string) UnitConfig {
	if cfg == nil {
		d := DefaultUnitConfig()
		d.UnitID = unitID
		return d
	}
	out := *cfg
	if out.MinimumHours.IsZero() {
		out.MinimumHours = DefaultMinimumHours
	}
	return out
}

// Validate checks every field against its allowed band and reports the
// first out-of-range value.
func (c UnitConfig) Validate() error {
	if err := checkRange("standard_monthly_hours", c.StandardMonthlyHours,
		MinStandardMonthlyHours, MaxStandardMonthlyHours, ErrInvalidConfig); err != nil {
		return err
	}
	if err := checkRange("payment_percentage", c.PaymentPercentage,
		decimal.Zero, hundred, ErrInvalidConfig); err != nil {
		return err
	}
	if !c.MinimumHours.IsPositive() || c.MinimumHours.GreaterThan(MaxMinimumHours) {
		return &RangeError{Field: "minimum_hours", Value: c.MinimumHours,
			Min: decimal.Zero, Max: MaxMinimumHours, MinExclusive: true, kind: ErrInvalidConfig}
	}
	return nil
}

func checkRange(field string, v, min, max decimal.Decimal, kind error) error {
	if v.LessThan(min) || v.GreaterThan(max) {
		return &RangeError{Field: field, Value: v, Min: min, Max: max, kind: kind}
	}
	return nil
}
