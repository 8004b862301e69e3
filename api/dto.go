/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

NUMBERS:
  Hour quantities leave the engine as decimals and are rendered here as
  JSON numbers with two decimals. Clocks travel as "hhmm" strings in both
  directions; *_display fields carry "HH:MM" for people.

VALIDATION:
  Validation is done in the service, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/profile.go: ProfileJSON type
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-hours/accounting"
	"github.com/warp/shift-hours/balance"
	"github.com/warp/shift-hours/shift"
)

// =============================================================================
// PERSONS
// =============================================================================

// PersonDTO represents a controller in API responses.
type PersonDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UnitID string `json:"unit_id"`
}

// CreatePersonRequest is the request body for creating a person.
type CreatePersonRequest struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	UnitID string `json:"unit_id"`
}

func toPersonDTO(p accounting.Person) PersonDTO {
	return PersonDTO{ID: p.ID, Name: p.Name, UnitID: p.UnitID}
}

// =============================================================================
// ENTRIES
// =============================================================================

// EntryDTO represents a registered interval.
type EntryDTO struct {
	ID            string    `json:"id"`
	PersonID      string    `json:"person_id"`
	Date          string    `json:"date"`
	Sector        string    `json:"sector,omitempty"`
	Start         string    `json:"start"`
	End           *string   `json:"end"`
	Range         string    `json:"range"`
	Hours         float64   `json:"hours"`
	HoursDisplay  string    `json:"hours_display"`
	Night         bool      `json:"night"`
	NonWorkingDay bool      `json:"non_working_day"`
	Open          bool      `json:"open"`
	Note          string    `json:"note,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EntryRequest is the request body for registering or editing an entry.
type EntryRequest struct {
	Date   string `json:"date"`             // YYYY-MM-DD
	Sector string `json:"sector,omitempty"` // TWR, APP, ACC
	Start  string `json:"start"`            // hhmm
	End    string `json:"end,omitempty"`    // hhmm, omitted = open entry
	Note   string `json:"note,omitempty"`
	Actor  string `json:"actor,omitempty"`
}

// CloseEntryRequest sets the end of an open entry.
type CloseEntryRequest struct {
	End   string `json:"end"`
	Actor string `json:"actor,omitempty"`
}

func (r EntryRequest) input(personID string) accounting.EntryInput {
	return accounting.EntryInput{
		PersonID: personID,
		Date:     r.Date,
		Sector:   r.Sector,
		Start:    r.Start,
		End:      r.End,
		Note:     r.Note,
		Actor:    r.Actor,
	}
}

func toEntryDTO(e shift.Entry) EntryDTO {
	dto := EntryDTO{
		ID:            e.ID,
		PersonID:      e.PersonID,
		Date:          e.Date.String(),
		Sector:        string(e.Sector),
		Start:         e.Start.String(),
		Range:         e.Range(),
		Hours:         hours(e.Hours),
		HoursDisplay:  shift.FormatHours(e.Hours),
		Night:         e.Night,
		NonWorkingDay: e.NonWorkingDay,
		Open:          e.IsOpen(),
		Note:          e.Note,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.End != nil {
		end := e.End.String()
		dto.End = &end
	}
	return dto
}

func toEntryDTOs(entries []shift.Entry) []EntryDTO {
	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toEntryDTO(e)
	}
	return dtos
}

// =============================================================================
// SECTORS
// =============================================================================

// SectorReportDTO is the monthly consolidation with its compliance check.
type SectorReportDTO struct {
	PersonID           string             `json:"person_id"`
	Month              string             `json:"month"`
	BySector           map[string]float64 `json:"by_sector"`
	Total              float64            `json:"total"`
	TotalDisplay       string             `json:"total_display"`
	NightHours         float64            `json:"night_hours"`
	NonWorkingDayHours float64            `json:"non_working_day_hours"`
	Entries            int                `json:"entries"`
	OpenEntries        int                `json:"open_entries"`
	MinimumHours       float64            `json:"minimum_hours"`
	Difference         float64            `json:"difference"`
	MeetsMinimum       bool               `json:"meets_minimum"`
	RequiresVCP        bool               `json:"requires_vcp"`
}

func toSectorReportDTO(r accounting.SectorReport) SectorReportDTO {
	c := r.Consolidation
	bySector := make(map[string]float64, len(c.BySector))
	for s, v := range c.BySector {
		bySector[s.Label()] = hours(v)
	}
	return SectorReportDTO{
		PersonID:           r.PersonID,
		Month:              r.Month.String(),
		BySector:           bySector,
		Total:              hours(c.Total),
		TotalDisplay:       shift.FormatHours(c.Total),
		NightHours:         hours(c.NightHours),
		NonWorkingDayHours: hours(c.NonWorkingDayHours),
		Entries:            c.Entries,
		OpenEntries:        c.OpenEntries,
		MinimumHours:       hours(r.Compliance.Minimum),
		Difference:         hours(r.Compliance.Difference),
		MeetsMinimum:       r.Compliance.MeetsMinimum,
		RequiresVCP:        r.Compliance.RequiresVCP,
	}
}

// =============================================================================
// METRICS
// =============================================================================

// MetricsDTO is one monthly regulatory row.
type MetricsDTO struct {
	PersonID    string  `json:"person_id"`
	Month       string  `json:"month"`
	HT          float64 `json:"ht"`
	HE          float64 `json:"he"`
	SA          float64 `json:"sa"`
	HCP         float64 `json:"hcp"`
	HAC         float64 `json:"hac"`
	SASource    string  `json:"sa_source"`
	Source      string  `json:"source"`
	HighAccrual bool    `json:"high_accrual"`
}

func toMetricsDTO(m balance.Metrics, threshold decimal.Decimal) MetricsDTO {
	return MetricsDTO{
		PersonID:    m.PersonID,
		Month:       m.Month.String(),
		HT:          hours(m.HT),
		HE:          hours(m.HE),
		SA:          hours(m.SA),
		HCP:         hours(m.HCP),
		HAC:         hours(m.HAC),
		SASource:    string(m.SASource),
		Source:      string(m.Source),
		HighAccrual: m.HAC.GreaterThan(threshold),
	}
}

func toMetricsDTOs(rows []balance.Metrics, threshold decimal.Decimal) []MetricsDTO {
	dtos := make([]MetricsDTO, len(rows))
	for i, m := range rows {
		dtos[i] = toMetricsDTO(m, threshold)
	}
	return dtos
}

// CloseMonthDTO summarises a unit month close.
type CloseMonthDTO struct {
	UnitID  string       `json:"unit_id"`
	Month   string       `json:"month"`
	Persons int          `json:"persons"`
	Metrics []MetricsDTO `json:"metrics"`
}

// =============================================================================
// UNIT CONFIGURATION, ROSTER, ADJUSTMENTS
// =============================================================================

// UnitConfigDTO is a unit configuration, in both directions.
type UnitConfigDTO struct {
	UnitID               string  `json:"unit_id"`
	StandardMonthlyHours float64 `json:"standard_monthly_hours"`
	PaymentPercentage    float64 `json:"payment_percentage"`
	MinimumHours         float64 `json:"minimum_hours,omitempty"`
}

func toUnitConfigDTO(c balance.UnitConfig) UnitConfigDTO {
	return UnitConfigDTO{
		UnitID:               c.UnitID,
		StandardMonthlyHours: c.StandardMonthlyHours.InexactFloat64(),
		PaymentPercentage:    c.PaymentPercentage.InexactFloat64(),
		MinimumHours:         c.MinimumHours.InexactFloat64(),
	}
}

func (d UnitConfigDTO) config(unitID string) balance.UnitConfig {
	return balance.UnitConfig{
		UnitID:               unitID,
		StandardMonthlyHours: decimal.NewFromFloat(d.StandardMonthlyHours),
		PaymentPercentage:    decimal.NewFromFloat(d.PaymentPercentage),
		MinimumHours:         decimal.NewFromFloat(d.MinimumHours),
	}
}

// AssignmentRequest places a person on a catalogue shift.
type AssignmentRequest struct {
	Date      string `json:"date"`
	ShiftCode string `json:"shift_code"`
}

// AssignmentDTO is a stored roster placement.
type AssignmentDTO struct {
	ID        string `json:"id"`
	PersonID  string `json:"person_id"`
	Date      string `json:"date"`
	ShiftCode string `json:"shift_code"`
}

// AdjustmentRequestDTO is the request body for manual SA overrides.
type AdjustmentRequestDTO struct {
	PersonID  string          `json:"person_id"`
	Month     string          `json:"month"`    // YYYY-MM
	Override  decimal.Decimal `json:"override"` // number or string, kept exact
	Reason    string          `json:"reason"`
	CreatedBy string          `json:"created_by,omitempty"`
}

// AdjustmentDTO is a stored manual adjustment.
type AdjustmentDTO struct {
	ID        string    `json:"id"`
	PersonID  string    `json:"person_id"`
	Month     string    `json:"month"`
	Override  float64   `json:"override"`
	Reason    string    `json:"reason"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toAdjustmentDTO(a balance.Adjustment) AdjustmentDTO {
	return AdjustmentDTO{
		ID:        a.ID,
		PersonID:  a.PersonID,
		Month:     a.Month.String(),
		Override:  hours(a.Override),
		Reason:    a.Reason,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
	}
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayDTO represents a holiday in API responses and requests.
type HolidayDTO struct {
	ID        string `json:"id,omitempty"`
	UnitID    string `json:"unit_id,omitempty"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

func toHolidayDTO(h shift.Holiday) HolidayDTO {
	return HolidayDTO{
		ID:        h.ID,
		UnitID:    h.UnitID,
		Date:      h.Date.String(),
		Name:      h.Name,
		Recurring: h.Recurring,
	}
}

// =============================================================================
// SCENARIOS AND ERRORS
// =============================================================================

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest is the request body for loading a scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func hours(d decimal.Decimal) float64 {
	return d.Round(balance.Precision).InexactFloat64()
}
