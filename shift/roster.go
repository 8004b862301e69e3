package shift

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ROSTER - Published assignments as an alternative source of worked hours
// =============================================================================

// ShiftType is one entry of a unit's shift catalogue (e.g. "M" 0700-1500).
type ShiftType struct {
	Code  string
	Name  string
	Start Clock
	End   Clock
}

// Hours returns the nominal length of the shift.
func (st ShiftType) Hours() decimal.Decimal { return Duration(st.Start, st.End) }

// Night reports whether the shift starts in the night window or wraps midnight.
func (st ShiftType) Night() bool {
	return IsNightWindow(st.Start) || CrossesMidnight(st.Start, st.End)
}

// Assignment places a person on a shift type for one day of the roster.
type Assignment struct {
	ID        string
	PersonID  string
	Date      Date
	ShiftCode string
}

// Catalog indexes shift types by code.
type Catalog map[string]ShiftType

// NewCatalog builds a catalog, rejecting duplicate or zero-length shifts.
func NewCatalog(types []ShiftType) (Catalog, error) {
	c := make(Catalog, len(types))
	for _, st := range types {
		code := strings.TrimSpace(st.Code)
		if code == "" {
			return nil, fmt.Errorf("shift type %q: empty code", st.Name)
		}
		if _, dup := c[code]; dup {
			return nil, fmt.Errorf("shift type %q: duplicate code", code)
		}
		if err := ValidateInterval(st.Start, &st.End); err != nil {
			return nil, fmt.Errorf("shift type %q: %w", code, err)
		}
		st.Code = code
		c[code] = st
	}
	return c, nil
}

// AssignedHours sums the nominal hours of the assignments falling in month.
// Assignments whose code is not in the catalog are returned as unknown.
func AssignedHours(month Month, assignments []Assignment, catalog Catalog) (total decimal.Decimal, unknown []string) {
	total = decimal.Zero
	for _, a := range assignments {
		if !month.Contains(a.Date) {
			continue
		}
		st, ok := catalog[a.ShiftCode]
		if !ok {
			unknown = append(unknown, a.ShiftCode)
			continue
		}
		total = total.Add(st.Hours())
	}
	return total, unknown
}
