/*
handlers.go - HTTP API handlers for the shift-hours accounting engine

PURPOSE:
  Exposes the accounting service via REST API. Handles HTTP request and
  response, JSON serialization, and delegates to accounting.Service.

ENDPOINTS:
  Persons:
    GET    /api/persons                       List persons (?unit_id=)
    POST   /api/persons                       Create person
    GET    /api/persons/{id}                  Get person

  Entries:
    POST   /api/persons/{id}/entries          Register a worked interval
    GET    /api/persons/{id}/entries?month=   Entries of one month
    PUT    /api/entries/{id}                  Edit an entry
    POST   /api/entries/{id}/close            Set the end of an open entry
    DELETE /api/entries/{id}                  Delete an entry

  Reports:
    GET    /api/persons/{id}/sectors?month=           Sector consolidation
    GET    /api/persons/{id}/metrics?month=&source=   Compute one month
    GET    /api/persons/{id}/metrics/history?from=&to=
    POST   /api/persons/{id}/recompute?from=          Recompute stored months

  Roster:
    POST   /api/persons/{id}/assignments      Place a person on a shift

  Units:
    GET    /api/units/{id}/config             Unit configuration
    PUT    /api/units/{id}/config             Replace unit configuration
    GET    /api/units/{id}/profile            Configuration, shifts, holidays
    POST   /api/units/{id}/profile            Apply a JSON profile
    POST   /api/units/{id}/close?month=       Compute a month for the unit
    GET    /api/units/{id}/holidays           Unit and global holidays
    POST   /api/units/{id}/holidays           Add a holiday
    DELETE /api/holidays/{id}                 Remove a holiday

  Admin:
    POST   /api/admin/adjustments             Manual SA override

  Scenarios:
    GET    /api/scenarios                     List demo scenarios
    POST   /api/scenarios/load                Load a demo scenario

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Person or entry not found
  - 409: Interval overlaps an existing one (details name the range)
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization. Actor fields are recorded as given.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/shift-hours/accounting"
	"github.com/warp/shift-hours/balance"
	"github.com/warp/shift-hours/factory"
	"github.com/warp/shift-hours/shift"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service        *accounting.Service
	ProfileFactory *factory.ProfileFactory

	// HighAccrualThreshold flags metrics rows whose HAC exceeds it.
	HighAccrualThreshold decimal.Decimal

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler around the given service.
func NewHandler(svc *accounting.Service, highAccrual decimal.Decimal) *Handler {
	return &Handler{
		Service:              svc,
		ProfileFactory:       factory.NewProfileFactory(),
		HighAccrualThreshold: highAccrual,
	}
}

// =============================================================================
// PERSON HANDLERS
// =============================================================================

// ListPersons returns the persons of a unit, or everyone.
func (h *Handler) ListPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.Service.Persons(r.Context(), r.URL.Query().Get("unit_id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list persons", err)
		return
	}
	dtos := make([]PersonDTO, len(persons))
	for i, p := range persons {
		dtos[i] = toPersonDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePerson creates a new person.
func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.UnitID) == "" {
		writeError(w, http.StatusBadRequest, "unit_id is required", nil)
		return
	}

	p, err := h.Service.CreatePerson(r.Context(), accounting.Person{
		ID:     req.ID,
		Name:   strings.TrimSpace(req.Name),
		UnitID: strings.TrimSpace(req.UnitID),
	})
	if err != nil {
		respondError(w, "Failed to create person", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPersonDTO(p))
}

// GetPerson returns a single person.
func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.Person(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "Failed to get person", err)
		return
	}
	writeJSON(w, http.StatusOK, toPersonDTO(p))
}

// =============================================================================
// ENTRY HANDLERS
// =============================================================================

// RegisterEntry registers a worked interval for a person.
func (h *Handler) RegisterEntry(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	e, err := h.Service.RegisterEntry(r.Context(), req.input(chi.URLParam(r, "id")))
	if err != nil {
		respondError(w, "Failed to register entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryDTO(e))
}

// ListEntries returns the entries of a person for one month.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "id")
	month, ok := h.monthParam(w, r, "month")
	if !ok {
		return
	}
	if _, err := h.Service.Person(r.Context(), personID); err != nil {
		respondError(w, "Failed to list entries", err)
		return
	}

	entries, err := h.Service.MonthEntries(r.Context(), personID, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list entries", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTOs(entries))
}

// EditEntry replaces an entry's date, sector, times and note.
func (h *Handler) EditEntry(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	e, err := h.Service.EditEntry(r.Context(), chi.URLParam(r, "id"), req.input(""))
	if err != nil {
		respondError(w, "Failed to edit entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(e))
}

// CloseEntry sets the end time of an open entry.
func (h *Handler) CloseEntry(w http.ResponseWriter, r *http.Request) {
	var req CloseEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.End) == "" {
		writeError(w, http.StatusBadRequest, "end is required", nil)
		return
	}

	e, err := h.Service.CloseEntry(r.Context(), chi.URLParam(r, "id"), req.End, req.Actor)
	if err != nil {
		respondError(w, "Failed to close entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(e))
}

// DeleteEntry removes an entry.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, "Failed to delete entry", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetSectorReport returns the monthly consolidation by sector.
func (h *Handler) GetSectorReport(w http.ResponseWriter, r *http.Request) {
	month, ok := h.monthParam(w, r, "month")
	if !ok {
		return
	}
	report, err := h.Service.SectorSummary(r.Context(), chi.URLParam(r, "id"), month)
	if err != nil {
		respondError(w, "Failed to consolidate entries", err)
		return
	}
	writeJSON(w, http.StatusOK, toSectorReportDTO(report))
}

// GetMetrics computes and stores one month of metrics.
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	month, ok := h.monthParam(w, r, "month")
	if !ok {
		return
	}
	source, err := balance.ParseHoursSource(r.URL.Query().Get("source"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid source", err)
		return
	}

	m, err := h.Service.ComputeMonth(r.Context(), chi.URLParam(r, "id"), month, source)
	if err != nil {
		respondError(w, "Failed to compute metrics", err)
		return
	}
	writeJSON(w, http.StatusOK, toMetricsDTO(m, h.HighAccrualThreshold))
}

// GetMetricsHistory returns the stored rows of a person in [from, to].
func (h *Handler) GetMetricsHistory(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "id")
	from, ok := h.monthParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := h.monthParam(w, r, "to")
	if !ok {
		return
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "to must not be before from", nil)
		return
	}
	if _, err := h.Service.Person(r.Context(), personID); err != nil {
		respondError(w, "Failed to load history", err)
		return
	}

	rows, err := h.Service.MetricsHistory(r.Context(), personID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load history", err)
		return
	}
	writeJSON(w, http.StatusOK, toMetricsDTOs(rows, h.HighAccrualThreshold))
}

// Recompute rebuilds the stored months of a person from a given month.
func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "id")
	from, ok := h.monthParam(w, r, "from")
	if !ok {
		return
	}
	if err := h.Service.RecomputeFrom(r.Context(), personID, from); err != nil {
		respondError(w, "Failed to recompute", err)
		return
	}

	rows, err := h.Service.MetricsHistory(r.Context(), personID, from, shift.NewMonth(9999, time.December))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load history", err)
		return
	}
	writeJSON(w, http.StatusOK, toMetricsDTOs(rows, h.HighAccrualThreshold))
}

// =============================================================================
// ROSTER HANDLERS
// =============================================================================

// CreateAssignment places a person on a catalogue shift.
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req AssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	a, err := h.Service.AddAssignment(r.Context(), accounting.AssignmentInput{
		PersonID:  chi.URLParam(r, "id"),
		Date:      req.Date,
		ShiftCode: strings.TrimSpace(req.ShiftCode),
	})
	if err != nil {
		respondError(w, "Failed to create assignment", err)
		return
	}
	writeJSON(w, http.StatusCreated, AssignmentDTO{
		ID:        a.ID,
		PersonID:  a.PersonID,
		Date:      a.Date.String(),
		ShiftCode: a.ShiftCode,
	})
}

// =============================================================================
// UNIT HANDLERS
// =============================================================================

// GetUnitConfig returns the effective configuration of a unit.
func (h *Handler) GetUnitConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Service.UnitConfig(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "Failed to load unit configuration", err)
		return
	}
	writeJSON(w, http.StatusOK, toUnitConfigDTO(cfg))
}

// PutUnitConfig replaces a unit configuration.
func (h *Handler) PutUnitConfig(w http.ResponseWriter, r *http.Request) {
	var req UnitConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	unitID := chi.URLParam(r, "id")
	if err := h.Service.SetUnitConfig(r.Context(), req.config(unitID)); err != nil {
		respondError(w, "Failed to update unit configuration", err)
		return
	}
	cfg, err := h.Service.UnitConfig(r.Context(), unitID)
	if err != nil {
		respondError(w, "Failed to load unit configuration", err)
		return
	}
	writeJSON(w, http.StatusOK, toUnitConfigDTO(cfg))
}

// GetProfile returns the unit profile as JSON.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.Profile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "Failed to load unit profile", err)
		return
	}
	writeJSON(w, http.StatusOK, h.ProfileFactory.ToJSON(p))
}

// ApplyProfile applies a JSON unit profile. The unit in the path wins over
// the one in the body.
func (h *Handler) ApplyProfile(w http.ResponseWriter, r *http.Request) {
	var pj factory.ProfileJSON
	if err := json.NewDecoder(r.Body).Decode(&pj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	pj.UnitID = chi.URLParam(r, "id")

	profile, err := h.ProfileFactory.FromJSON(pj)
	if err != nil {
		respondError(w, "Invalid unit profile", err)
		return
	}
	if err := h.Service.ApplyProfile(r.Context(), *profile); err != nil {
		respondError(w, "Failed to apply unit profile", err)
		return
	}

	stored, err := h.Service.Profile(r.Context(), pj.UnitID)
	if err != nil {
		respondError(w, "Failed to load unit profile", err)
		return
	}
	stored.Name = profile.Name
	writeJSON(w, http.StatusOK, h.ProfileFactory.ToJSON(stored))
}

// CloseMonth computes a month for every person of a unit.
func (h *Handler) CloseMonth(w http.ResponseWriter, r *http.Request) {
	unitID := chi.URLParam(r, "id")
	month, ok := h.monthParam(w, r, "month")
	if !ok {
		return
	}
	source, err := balance.ParseHoursSource(r.URL.Query().Get("source"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid source", err)
		return
	}

	rows, err := h.Service.CloseMonth(r.Context(), unitID, month, source)
	if err != nil {
		respondError(w, "Failed to close month", err)
		return
	}
	writeJSON(w, http.StatusOK, CloseMonthDTO{
		UnitID:  unitID,
		Month:   month.String(),
		Persons: len(rows),
		Metrics: toMetricsDTOs(rows, h.HighAccrualThreshold),
	})
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns unit and global holidays.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Service.Holidays(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}
	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = toHolidayDTO(hol)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday adds a holiday to a unit.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := shift.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	hol, err := h.Service.AddHoliday(r.Context(), shift.Holiday{
		UnitID:    chi.URLParam(r, "id"),
		Date:      date,
		Name:      strings.TrimSpace(req.Name),
		Recurring: req.Recurring,
	})
	if err != nil {
		respondError(w, "Failed to create holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, toHolidayDTO(hol))
}

// DeleteHoliday removes a holiday.
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// CreateAdjustment stores a manual SA override and recomputes stored months.
func (h *Handler) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	var req AdjustmentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	month, err := shift.ParseMonth(req.Month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	adj, err := h.Service.SetAdjustment(r.Context(), balance.Adjustment{
		PersonID:  req.PersonID,
		Month:     month,
		Override:  req.Override,
		Reason:    req.Reason,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		respondError(w, "Failed to create adjustment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAdjustmentDTO(adj))
}

// =============================================================================
// HELPERS
// =============================================================================

// monthParam reads a YYYY-MM query parameter. A missing parameter means the
// current month; a malformed one writes a 400 and returns false.
func (h *Handler) monthParam(w http.ResponseWriter, r *http.Request, name string) (shift.Month, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return shift.DateOf(h.Service.Now()).CalendarMonth(), true
	}
	month, err := shift.ParseMonth(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name, err)
		return shift.Month{}, false
	}
	return month, true
}

// respondError maps service errors onto HTTP status codes.
func respondError(w http.ResponseWriter, message string, err error) {
	switch {
	case accounting.IsConflict(err):
		var conflict *shift.ConflictError
		if errors.As(err, &conflict) {
			writeError(w, http.StatusConflict, "Interval conflicts with an existing entry", conflict)
			return
		}
		writeError(w, http.StatusConflict, message, err)
	case accounting.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case accounting.IsClientError(err), errors.Is(err, factory.ErrInvalidProfile):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
