package balance

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-hours/shift"
)

// =============================================================================
// MANUAL ADJUSTMENT - Priority layer over the carried balance
// =============================================================================

var (
	MaxOverride = decimal.RequireFromString("999.9")
	MinOverride = MaxOverride.Neg()
)

// Adjustment replaces the automatically carried SA of one month.
// It never rewrites the metrics of earlier months.
type Adjustment struct {
	ID        string
	PersonID  string
	Month     shift.Month
	Override  decimal.Decimal
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}

// Validate checks the override band and required fields.
func (a Adjustment) Validate() error {
	if strings.TrimSpace(a.PersonID) == "" {
		return fmt.Errorf("%w: person is required", ErrInvalidAdjustment)
	}
	if a.Month.IsZero() {
		return fmt.Errorf("%w: month is required", ErrInvalidAdjustment)
	}
	if strings.TrimSpace(a.Reason) == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidAdjustment)
	}
	return checkRange("override", a.Override, MinOverride, MaxOverride, ErrInvalidAdjustment)
}

// Adjustments indexes adjustments of one person by month.
type Adjustments map[shift.Month]Adjustment

// For returns the adjustment of month, or nil.
func (as Adjustments) For(m shift.Month) *Adjustment {
	if a, ok := as[m]; ok {
		return &a
	}
	return nil
}
