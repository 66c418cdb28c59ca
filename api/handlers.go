/*
handlers.go - HTTP API handlers for the vacation tracking system

PURPOSE:
  Exposes the vacation engine via REST API. Handles HTTP request/response,
  JSON serialization, input validation, and delegates to domain logic.

ENDPOINTS:
  Teams:
    GET    /api/teams                     List teams
    POST   /api/teams                     Create team
    GET    /api/teams/{id}                Get team
    PATCH  /api/teams/{id}                Update team

  Employees:
    GET    /api/employees                 List employees
    POST   /api/employees                 Create employee
    GET    /api/employees/{id}            Get employee
    PATCH  /api/employees/{id}            Update employee
    DELETE /api/employees/{id}            Delete employee
    GET    /api/employees/{id}/vacations  Vacations for one employee
    POST   /api/employees/{id}/vacations  Request a vacation

  Vacations:
    GET    /api/vacations                 Filtered listing (start/end/type/team)
    GET    /api/vacations/{id}            Get vacation
    PATCH  /api/vacations/{id}            Edit vacation (merge rules apply)

  Reports:
    GET    /api/reports/usage             Per-team usage summary

ERROR HANDLING:
  Domain errors map to HTTP status via writeDomainError:
  - 400: malformed input, invalid range
  - 404: missing team/employee/vacation
  - 409: candidate fully covered by an existing vacation
  - 422: no working days, bridging different types
  - 500: persistence failures (the unit of work already rolled back)

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - scenarios.go: Demo data loaders
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/warp/vacation-engine/reporting"
	"github.com/warp/vacation-engine/store/sqlite"
	"github.com/warp/vacation-engine/vacation"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Service *vacation.Service

	validate *validator.Validate
	log      zerolog.Logger

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, log zerolog.Logger) *Handler {
	return &Handler{
		Store:    store,
		Service:  vacation.NewService(store, store, log),
		validate: validator.New(),
		log:      log,
	}
}

// Health is the liveness endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// TEAM HANDLERS
// =============================================================================

// ListTeams returns all teams.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Store.ListTeams(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list teams", err)
		return
	}

	dtos := make([]TeamDTO, len(teams))
	for i, t := range teams {
		dtos[i] = toTeamDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateTeam creates a new team.
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	team := vacation.Team{ID: uuid.NewString(), Name: req.Name}
	if err := h.Store.SaveTeam(r.Context(), team); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create team", err)
		return
	}

	writeJSON(w, http.StatusCreated, toTeamDTO(team))
}

// GetTeam returns a single team.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.Store.GetTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get team", err)
		return
	}
	if team == nil {
		writeError(w, http.StatusNotFound, "Team not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toTeamDTO(*team))
}

// UpdateTeam applies a partial update to a team.
func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var req UpdateTeamRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	team, err := h.Store.GetTeam(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get team", err)
		return
	}
	if team == nil {
		writeError(w, http.StatusNotFound, "Team not found", nil)
		return
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if err := h.Store.SaveTeam(ctx, *team); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update team", err)
		return
	}

	writeJSON(w, http.StatusOK, toTeamDTO(*team))
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates a new employee on an existing team.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	team, err := h.Store.GetTeam(ctx, req.TeamID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get team", err)
		return
	}
	if team == nil {
		writeError(w, http.StatusNotFound, "Team not found", nil)
		return
	}

	emp := vacation.Employee{
		ID:        uuid.NewString(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		TeamID:    req.TeamID,
	}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}

	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// UpdateEmployee applies a partial update to an employee.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req UpdateEmployeeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	emp, err := h.Store.GetEmployee(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.TeamID != nil {
		team, err := h.Store.GetTeam(ctx, *req.TeamID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to get team", err)
			return
		}
		if team == nil {
			writeError(w, http.StatusNotFound, "Team not found", nil)
			return
		}
		emp.TeamID = *req.TeamID
	}

	if err := h.Store.SaveEmployee(ctx, *emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update employee", err)
		return
	}

	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// DeleteEmployee removes an employee.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// VACATION HANDLERS
// =============================================================================

// CreateVacation requests a vacation for an employee. Touching/overlapping
// same-type requests merge; duplicates, bridges and zero-workday ranges
// are rejected.
func (h *Handler) CreateVacation(w http.ResponseWriter, r *http.Request) {
	var req CreateVacationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	start, err := vacation.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date", err)
		return
	}
	end, err := vacation.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date", err)
		return
	}
	typ, err := vacation.ParseVacationType(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid type", err)
		return
	}

	survivor, err := h.Service.Create(r.Context(), chi.URLParam(r, "id"), start, end, typ)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toVacationDTO(*survivor))
}

// EditVacation applies a partial update to a vacation; the edited record is
// re-run through the merge rules against the employee's other vacations.
func (h *Handler) EditVacation(w http.ResponseWriter, r *http.Request) {
	var req UpdateVacationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	var patch vacation.Patch
	if req.StartDate != nil {
		start, err := vacation.ParseDate(*req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_date", err)
			return
		}
		patch.Start = &start
	}
	if req.EndDate != nil {
		end, err := vacation.ParseDate(*req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end_date", err)
			return
		}
		patch.End = &end
	}
	if req.Type != nil {
		typ, err := vacation.ParseVacationType(*req.Type)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid type", err)
			return
		}
		patch.Type = &typ
	}

	survivor, err := h.Service.Edit(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toVacationDTO(*survivor))
}

// GetVacation returns a single vacation.
func (h *Handler) GetVacation(w http.ResponseWriter, r *http.Request) {
	v, err := h.Store.GetVacation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get vacation", err)
		return
	}
	if v == nil {
		writeError(w, http.StatusNotFound, "Vacation not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toVacationDTO(*v))
}

// ListEmployeeVacations returns all vacations for one employee.
func (h *Handler) ListEmployeeVacations(w http.ResponseWriter, r *http.Request) {
	vacations, err := h.Store.ListByEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list vacations", err)
		return
	}

	writeJSON(w, http.StatusOK, toVacationDTOs(vacations))
}

// ListVacations returns vacations matching the query filters:
// start_date, end_date (ISO dates), type (paid|unpaid), team_id.
func (h *Handler) ListVacations(w http.ResponseWriter, r *http.Request) {
	var f vacation.ListFilter

	q := r.URL.Query()
	if s := q.Get("start_date"); s != "" {
		d, err := vacation.ParseDate(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_date", err)
			return
		}
		f.StartDate = &d
	}
	if s := q.Get("end_date"); s != "" {
		d, err := vacation.ParseDate(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end_date", err)
			return
		}
		f.EndDate = &d
	}
	if s := q.Get("type"); s != "" {
		typ, err := vacation.ParseVacationType(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid type", err)
			return
		}
		f.Type = &typ
	}
	f.TeamID = q.Get("team_id")

	vacations, err := h.Store.ListVacations(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list vacations", err)
		return
	}

	writeJSON(w, http.StatusOK, toVacationDTOs(vacations))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// UsageReport returns the per-team, per-type usage summary.
func (h *Handler) UsageReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	teams, err := h.Store.ListTeams(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list teams", err)
		return
	}
	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	vacations, err := h.Store.ListVacations(ctx, vacation.ListFilter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list vacations", err)
		return
	}

	usage := reporting.Summarize(teams, employees, vacations)
	dtos := make([]TeamUsageDTO, len(usage))
	for i, u := range usage {
		dtos[i] = toTeamUsageDTO(u)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation; it writes the error response itself and reports success.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

// writeDomainError maps core errors to HTTP status codes.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vacation.ErrInvalidRange):
		writeErrorCode(w, http.StatusBadRequest, err, "invalid_range")
	case vacation.IsNotFound(err):
		writeErrorCode(w, http.StatusNotFound, err, "not_found")
	case errors.Is(err, vacation.ErrVacationExists):
		writeErrorCode(w, http.StatusConflict, err, "vacation_exists")
	case errors.Is(err, vacation.ErrNoWorkDays):
		writeErrorCode(w, http.StatusUnprocessableEntity, err, "no_work_days")
	case errors.Is(err, vacation.ErrBridgingTypes):
		writeErrorCode(w, http.StatusUnprocessableEntity, err, "bridging_types")
	default:
		h.log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "Internal error", err)
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

func writeErrorCode(w http.ResponseWriter, status int, err error, code string) {
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}
