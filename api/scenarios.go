/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	roster data. Each scenario creates a unit, its controllers and their
	worked intervals or roster assignments, then closes the months involved.

AVAILABLE SCENARIOS:

	standard-month:  One month of 12h shifts across three sectors
	night-rotation:  Roster-driven HT with overnight shifts
	carry-forward:   HAC chained over a quarter with a manual SA override
	below-minimum:   A controller under the minimum activity hours

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Apply a unit profile via factory
 3. Create persons
 4. Register entries or roster assignments
 5. Compute the months involved

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "carry-forward"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Handler and helpers
  - factory/profile.go: StandardUnitJSON preset
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-hours/accounting"
	"github.com/warp/shift-hours/balance"
	"github.com/warp/shift-hours/factory"
	"github.com/warp/shift-hours/shift"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "standard-month",
		Name:        "Standard Month",
		Description: "16 shifts of 12h in March rotating TWR, APP and ACC; 12h above standard",
	},
	{
		ID:          "night-rotation",
		Name:        "Night Rotation",
		Description: "Roster of morning and night shifts; HT taken from the published roster",
	},
	{
		ID:          "carry-forward",
		Name:        "Carry Forward",
		Description: "January to March with HAC carried month to month and a manual override in March",
	},
	{
		ID:          "below-minimum",
		Name:        "Below Minimum",
		Description: "A controller with 4h in the month, flagged for competence verification",
	},
}

// Resetter is implemented by stores that can be wiped for demos.
type Resetter interface {
	Reset(ctx context.Context) error
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: h.currentScenario, Name: h.currentScenario})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var load func(context.Context) error
	switch req.ScenarioID {
	case "standard-month":
		load = h.loadStandardMonthScenario
	case "night-rotation":
		load = h.loadNightRotationScenario
	case "carry-forward":
		load = h.loadCarryForwardScenario
	case "below-minimum":
		load = h.loadBelowMinimumScenario
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	if err := load(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	// Track the loaded scenario
	h.currentScenario = req.ScenarioID

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) reset(ctx context.Context) error {
	rs, ok := h.Service.Store.(Resetter)
	if !ok {
		return fmt.Errorf("store %T cannot be reset", h.Service.Store)
	}
	if err := rs.Reset(ctx); err != nil {
		return err
	}
	h.currentScenario = ""
	return nil
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

var march2025 = shift.NewMonth(2025, time.March)

func (h *Handler) loadStandardMonthScenario(ctx context.Context) error {
	// 180h standard, 70% paid: 16 x 12h = 192h gives HE 12, HCP 8.4, HAC 3.6
	if err := h.applyStandardUnit(ctx, "LECS", "Palma ACC", 180, 70); err != nil {
		return err
	}
	if err := h.createPerson(ctx, "ctl-ana", "Ana Ferrer", "LECS"); err != nil {
		return err
	}

	sectors := []string{"TWR", "APP", "ACC"}
	for i, day := range everyNthDay(march2025, 1, 2) {
		if err := h.register(ctx, "ctl-ana", day, sectors[i%len(sectors)], "0800", "2000"); err != nil {
			return err
		}
	}

	_, err := h.Service.ComputeMonth(ctx, "ctl-ana", march2025, balance.SourceRegistry)
	return err
}

func (h *Handler) loadNightRotationScenario(ctx context.Context) error {
	// 160h standard, 75% paid
	// 11 nights x 9h + 10 mornings x 8h = 179h gives HE 19, HCP 14.25, HAC 4.75
	if err := h.applyStandardUnit(ctx, "GCXO", "Tenerife Norte TWR", 160, 75); err != nil {
		return err
	}
	if err := h.createPerson(ctx, "ctl-luis", "Luis Perez", "GCXO"); err != nil {
		return err
	}

	for _, day := range everyNthDay(march2025, 1, 3) {
		if err := h.assign(ctx, "ctl-luis", day, "N"); err != nil {
			return err
		}
	}
	for _, day := range everyNthDay(march2025, 2, 3) {
		if err := h.assign(ctx, "ctl-luis", day, "M"); err != nil {
			return err
		}
	}

	_, err := h.Service.ComputeMonth(ctx, "ctl-luis", march2025, balance.SourceRoster)
	return err
}

func (h *Handler) loadCarryForwardScenario(ctx context.Context) error {
	// 180h standard, 50% paid
	//   Jan: 20 x 10h = 200h -> HE 20, HCP 10, HAC 10
	//   Feb: 17 x 10h = 170h -> HE 0, SA 10 carried, HAC 10
	//   Mar: 19 x 10h = 190h, SA overridden to 25 -> HE 10, HCP 5, HAC 30
	if err := h.applyStandardUnit(ctx, "LEMD", "Madrid TMA", 180, 50); err != nil {
		return err
	}
	if err := h.createPerson(ctx, "ctl-marta", "Marta Gil", "LEMD"); err != nil {
		return err
	}

	months := []struct {
		month shift.Month
		days  int
	}{
		{shift.NewMonth(2025, time.January), 20},
		{shift.NewMonth(2025, time.February), 17},
		{march2025, 19},
	}
	for _, m := range months {
		for _, day := range m.month.Days()[:m.days] {
			if err := h.register(ctx, "ctl-marta", day, "APP", "0800", "1800"); err != nil {
				return err
			}
		}
		if _, err := h.Service.ComputeMonth(ctx, "ctl-marta", m.month, balance.SourceRegistry); err != nil {
			return err
		}
	}

	_, err := h.Service.SetAdjustment(ctx, balance.Adjustment{
		PersonID:  "ctl-marta",
		Month:     march2025,
		Override:  decimal.NewFromInt(25),
		Reason:    "Balance migrated from previous roster system",
		CreatedBy: "demo",
	})
	return err
}

func (h *Handler) loadBelowMinimumScenario(ctx context.Context) error {
	if err := h.applyStandardUnit(ctx, "LEBL", "Barcelona TWR", 180, 70); err != nil {
		return err
	}
	if err := h.createPerson(ctx, "ctl-pere", "Pere Soler", "LEBL"); err != nil {
		return err
	}
	if err := h.createPerson(ctx, "ctl-nuria", "Nuria Vidal", "LEBL"); err != nil {
		return err
	}

	// 4h against a 6h minimum
	if err := h.register(ctx, "ctl-pere", shift.NewDate(2025, time.March, 10), "TWR", "0900", "1300"); err != nil {
		return err
	}
	for _, day := range everyNthDay(march2025, 3, 4) {
		if err := h.register(ctx, "ctl-nuria", day, "TWR", "1500", "2200"); err != nil {
			return err
		}
	}

	_, err := h.Service.CloseMonth(ctx, "LEBL", march2025, balance.SourceRegistry)
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) applyStandardUnit(ctx context.Context, unitID, name string, std, pct float64) error {
	profile, err := h.ProfileFactory.ParseProfile(factory.StandardUnitJSON(unitID, name, std, pct))
	if err != nil {
		return err
	}
	return h.Service.ApplyProfile(ctx, *profile)
}

func (h *Handler) createPerson(ctx context.Context, id, name, unitID string) error {
	_, err := h.Service.CreatePerson(ctx, accounting.Person{ID: id, Name: name, UnitID: unitID})
	return err
}

func (h *Handler) register(ctx context.Context, personID string, day shift.Date, sector, start, end string) error {
	_, err := h.Service.RegisterEntry(ctx, accounting.EntryInput{
		PersonID: personID,
		Date:     day.String(),
		Sector:   sector,
		Start:    start,
		End:      end,
		Actor:    "demo",
	})
	return err
}

func (h *Handler) assign(ctx context.Context, personID string, day shift.Date, code string) error {
	_, err := h.Service.AddAssignment(ctx, accounting.AssignmentInput{
		PersonID:  personID,
		Date:      day.String(),
		ShiftCode: code,
	})
	return err
}

// everyNthDay returns the days of month starting at day first, step apart.
func everyNthDay(month shift.Month, first, step int) []shift.Date {
	var days []shift.Date
	for _, d := range month.Days() {
		if d.Day() >= first && (d.Day()-first)%step == 0 {
			days = append(days, d)
		}
	}
	return days
}
