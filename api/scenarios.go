/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates teams, employees and
	vacations that demonstrate the merge and rejection rules.

AVAILABLE SCENARIOS:

	small-office:  Two teams, a few employees, simple vacations
	merge-chains:  Back-to-back same-type requests collapsing into one record
	mixed-types:   Paid and unpaid vacations coexisting without touching

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create teams and employees via the store
 3. Create vacations via the Service, so the data went through the same
    classification and merge rules as live requests

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Handler context and error helpers
*/
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/warp/vacation-engine/vacation"
)

// Fixed year so the weekday layout of the demo data never shifts.
// 2027-06-07 is a Monday; the merge-chains spans depend on that.
const demoYear = 2027

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "small-office",
		Name:        "Small Office",
		Description: "Two teams with a handful of employees and simple vacations",
	},
	{
		ID:          "merge-chains",
		Name:        "Merge Chains",
		Description: "Back-to-back paid requests merging into a single record",
	},
	{
		ID:          "mixed-types",
		Name:        "Mixed Types",
		Description: "Paid and unpaid vacations coexisting with a safety gap",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario resets the database and loads the requested scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var err error
	switch req.ScenarioID {
	case "small-office":
		err = h.loadSmallOffice(ctx)
	case "merge-chains":
		err = h.loadMergeChains(ctx)
	case "mixed-types":
		err = h.loadMixedTypes(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario %q", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"loaded": req.ScenarioID})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// LOADERS
// =============================================================================

func (h *Handler) seedTeam(ctx context.Context, id, name string) error {
	return h.Store.SaveTeam(ctx, vacation.Team{ID: id, Name: name})
}

func (h *Handler) seedEmployee(ctx context.Context, id, first, last, teamID string) error {
	return h.Store.SaveEmployee(ctx, vacation.Employee{
		ID: id, FirstName: first, LastName: last, TeamID: teamID,
	})
}

func (h *Handler) loadSmallOffice(ctx context.Context) error {
	if err := h.seedTeam(ctx, "team-eng", "Engineering"); err != nil {
		return err
	}
	if err := h.seedTeam(ctx, "team-sales", "Sales"); err != nil {
		return err
	}
	for _, e := range [][4]string{
		{"emp-ada", "Ada", "Moreau", "team-eng"},
		{"emp-ben", "Ben", "Okafor", "team-eng"},
		{"emp-cleo", "Cleo", "Santos", "team-sales"},
	} {
		if err := h.seedEmployee(ctx, e[0], e[1], e[2], e[3]); err != nil {
			return err
		}
	}

	year := demoYear
	requests := []struct {
		emp        string
		start, end vacation.Date
		typ        vacation.VacationType
	}{
		{"emp-ada", vacation.NewDate(year, time.July, 7), vacation.NewDate(year, time.July, 18), vacation.TypePaid},
		{"emp-ben", vacation.NewDate(year, time.August, 4), vacation.NewDate(year, time.August, 8), vacation.TypePaid},
		{"emp-cleo", vacation.NewDate(year, time.September, 1), vacation.NewDate(year, time.September, 5), vacation.TypeUnpaid},
	}
	for _, req := range requests {
		if _, err := h.Service.Create(ctx, req.emp, req.start, req.end, req.typ); err != nil {
			return err
		}
	}
	return nil
}

// loadMergeChains issues three touching paid requests; the engine collapses
// them into one record, which is exactly what the demo shows.
func (h *Handler) loadMergeChains(ctx context.Context) error {
	if err := h.seedTeam(ctx, "team-ops", "Operations"); err != nil {
		return err
	}
	if err := h.seedEmployee(ctx, "emp-dana", "Dana", "Lindqvist", "team-ops"); err != nil {
		return err
	}

	year := demoYear
	spans := [][2]vacation.Date{
		{vacation.NewDate(year, time.June, 2), vacation.NewDate(year, time.June, 6)},
		{vacation.NewDate(year, time.June, 9), vacation.NewDate(year, time.June, 13)},
		{vacation.NewDate(year, time.June, 7), vacation.NewDate(year, time.June, 8)},
	}
	for _, span := range spans {
		if _, err := h.Service.Create(ctx, "emp-dana", span[0], span[1], vacation.TypePaid); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadMixedTypes(ctx context.Context) error {
	if err := h.seedTeam(ctx, "team-design", "Design"); err != nil {
		return err
	}
	if err := h.seedEmployee(ctx, "emp-eli", "Eli", "Navarro", "team-design"); err != nil {
		return err
	}

	year := demoYear
	if _, err := h.Service.Create(ctx, "emp-eli",
		vacation.NewDate(year, time.March, 2), vacation.NewDate(year, time.March, 6),
		vacation.TypePaid); err != nil {
		return err
	}
	// Two-day gap: different types may coexist only when they never touch.
	if _, err := h.Service.Create(ctx, "emp-eli",
		vacation.NewDate(year, time.March, 9), vacation.NewDate(year, time.March, 13),
		vacation.TypeUnpaid); err != nil {
		return err
	}
	return nil
}
