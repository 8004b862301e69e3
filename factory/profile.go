/*
Package factory provides JSON to Go unit profile conversion.

PURPOSE:
  Converts a JSON unit profile into the configuration, shift catalogue and
  holiday calendar the engine reads. A unit can be onboarded, or its rules
  changed, by posting one document instead of a sequence of API calls.

JSON SCHEMA:
  {
    "unit_id": "LECS",
    "name": "Palma ACC",
    "standard_monthly_hours": 180,
    "payment_percentage": 70,
    "minimum_hours": 6,
    "shifts": [
      {"code": "M", "name": "Morning", "start": "0700", "end": "1500"},
      {"code": "N", "name": "Night",   "start": "2200", "end": "0700"}
    ],
    "holidays": [
      {"date": "2025-12-25", "name": "Christmas", "recurring": true}
    ]
  }

KEY FEATURES:
  - Validates JSON structure
  - Omitted numeric fields take the engine defaults
  - Shift times use the same hhmm format as entries
  - Holidays inherit the profile's unit

USAGE:
  factory := NewProfileFactory()
  profile, err := factory.ParseProfile(jsonString)
  err = svc.ApplyProfile(ctx, *profile)

SEE ALSO:
  - balance/config.go: UnitConfig and its bands
  - shift/roster.go: ShiftType and Catalog
  - accounting/service.go: ApplyProfile
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-hours/accounting"
	"github.com/warp/shift-hours/balance"
	"github.com/warp/shift-hours/shift"
)

// ErrInvalidProfile is returned for profiles that are not valid JSON or
// miss required fields.
var ErrInvalidProfile = errors.New("invalid unit profile")

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ProfileJSON is the JSON representation of a unit profile.
type ProfileJSON struct {
	UnitID               string        `json:"unit_id"`
	Name                 string        `json:"name,omitempty"`
	StandardMonthlyHours *float64      `json:"standard_monthly_hours,omitempty"`
	PaymentPercentage    *float64      `json:"payment_percentage,omitempty"`
	MinimumHours         *float64      `json:"minimum_hours,omitempty"`
	Shifts               []ShiftJSON   `json:"shifts,omitempty"`
	Holidays             []HolidayJSON `json:"holidays,omitempty"`
}

// ShiftJSON represents one catalogue shift.
type ShiftJSON struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Start string `json:"start"` // hhmm
	End   string `json:"end"`   // hhmm
}

// HolidayJSON represents one holiday.
type HolidayJSON struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Name      string `json:"name"`
	Recurring bool   `json:"recurring,omitempty"`
}

// =============================================================================
// PROFILE FACTORY
// =============================================================================

// ProfileFactory converts JSON unit profiles to Go structs.
type ProfileFactory struct{}

// NewProfileFactory creates a new profile factory.
func NewProfileFactory() *ProfileFactory {
	return &ProfileFactory{}
}

// ParseProfile parses a JSON string into a unit profile.
func (f *ProfileFactory) ParseProfile(jsonStr string) (*accounting.UnitProfile, error) {
	var pj ProfileJSON
	if err := json.Unmarshal([]byte(jsonStr), &pj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return f.FromJSON(pj)
}

// FromJSON converts and validates a ProfileJSON.
func (f *ProfileFactory) FromJSON(pj ProfileJSON) (*accounting.UnitProfile, error) {
	unitID := strings.TrimSpace(pj.UnitID)
	if unitID == "" {
		return nil, fmt.Errorf("%w: unit_id is required", ErrInvalidProfile)
	}

	cfg := balance.DefaultUnitConfig()
	cfg.UnitID = unitID
	if pj.StandardMonthlyHours != nil {
		cfg.StandardMonthlyHours = decimal.NewFromFloat(*pj.StandardMonthlyHours)
	}
	if pj.PaymentPercentage != nil {
		cfg.PaymentPercentage = decimal.NewFromFloat(*pj.PaymentPercentage)
	}
	if pj.MinimumHours != nil {
		cfg.MinimumHours = decimal.NewFromFloat(*pj.MinimumHours)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	profile := &accounting.UnitProfile{Name: pj.Name, Config: cfg}

	for _, sj := range pj.Shifts {
		st, err := parseShift(sj)
		if err != nil {
			return nil, err
		}
		profile.Shifts = append(profile.Shifts, st)
	}
	// Rejects duplicate codes and zero-length shifts
	if _, err := shift.NewCatalog(profile.Shifts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	for _, hj := range pj.Holidays {
		date, err := shift.ParseDate(hj.Date)
		if err != nil {
			return nil, fmt.Errorf("holiday %q: %w", hj.Name, err)
		}
		profile.Holidays = append(profile.Holidays, shift.Holiday{
			UnitID:    unitID,
			Date:      date,
			Name:      strings.TrimSpace(hj.Name),
			Recurring: hj.Recurring,
		})
	}

	return profile, nil
}

// ToJSON converts a unit profile back to its JSON representation.
func (f *ProfileFactory) ToJSON(p accounting.UnitProfile) ProfileJSON {
	std := p.Config.StandardMonthlyHours.InexactFloat64()
	pct := p.Config.PaymentPercentage.InexactFloat64()
	minimum := p.Config.MinimumHours.InexactFloat64()

	pj := ProfileJSON{
		UnitID:               p.Config.UnitID,
		Name:                 p.Name,
		StandardMonthlyHours: &std,
		PaymentPercentage:    &pct,
		MinimumHours:         &minimum,
	}
	for _, st := range p.Shifts {
		pj.Shifts = append(pj.Shifts, ShiftJSON{
			Code: st.Code, Name: st.Name, Start: st.Start.String(), End: st.End.String(),
		})
	}
	for _, h := range p.Holidays {
		pj.Holidays = append(pj.Holidays, HolidayJSON{
			Date: h.Date.String(), Name: h.Name, Recurring: h.Recurring,
		})
	}
	return pj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseShift(sj ShiftJSON) (shift.ShiftType, error) {
	code := strings.TrimSpace(sj.Code)
	start, err := shift.ParseClock(sj.Start)
	if err != nil {
		return shift.ShiftType{}, fmt.Errorf("shift %q start: %w", code, err)
	}
	end, err := shift.ParseClock(sj.End)
	if err != nil {
		return shift.ShiftType{}, fmt.Errorf("shift %q end: %w", code, err)
	}
	name := strings.TrimSpace(sj.Name)
	if name == "" {
		name = code
	}
	return shift.ShiftType{Code: code, Name: name, Start: start, End: end}, nil
}

// =============================================================================
// PRESETS
// =============================================================================

// StandardUnitJSON returns a profile with the classic three-shift rotation
// (morning, afternoon, night) and the given configuration.
func StandardUnitJSON(unitID, name string, standardHours, paymentPct float64) string {
	return fmt.Sprintf(`{
  "unit_id": %q,
  "name": %q,
  "standard_monthly_hours": %g,
  "payment_percentage": %g,
  "minimum_hours": 6,
  "shifts": [
    {"code": "M", "name": "Morning",   "start": "0700", "end": "1500"},
    {"code": "T", "name": "Afternoon", "start": "1500", "end": "2200"},
    {"code": "N", "name": "Night",     "start": "2200", "end": "0700"}
  ],
  "holidays": [
    {"date": "2025-01-01", "name": "New Year", "recurring": true},
    {"date": "2025-12-25", "name": "Christmas", "recurring": true}
  ]
}`, unitID, name, standardHours, paymentPct)
}
