/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the domain
  model from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request structs carry validator tags (go-playground/validator) checked in
  handlers before anything reaches the domain. Date ordering (start <= end)
  is the domain's ErrInvalidRange, not a struct tag.
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/vacation-engine/reporting"
	"github.com/warp/vacation-engine/vacation"
)

// =============================================================================
// TEAM TYPES
// =============================================================================

// TeamDTO represents a team in API responses.
type TeamDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreateTeamRequest is the request to create a team.
type CreateTeamRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateTeamRequest is the partial update for a team.
type UpdateTeamRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
}

// =============================================================================
// EMPLOYEE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	TeamID    string `json:"team_id"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	TeamID    string `json:"team_id" validate:"required"`
}

// UpdateEmployeeRequest is the partial update for an employee.
type UpdateEmployeeRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1"`
	TeamID    *string `json:"team_id" validate:"omitempty,min=1"`
}

// =============================================================================
// VACATION TYPES
// =============================================================================

// VacationDTO represents a vacation in API responses.
type VacationDTO struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Type          string `json:"type"`
	TotalWorkDays int    `json:"total_work_days"`
}

// CreateVacationRequest is the request to create a vacation.
type CreateVacationRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=paid unpaid"`
}

// UpdateVacationRequest is the partial update for a vacation. Absent fields
// keep their current values; total_work_days is derived and not editable.
type UpdateVacationRequest struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Type      *string `json:"type" validate:"omitempty,oneof=paid unpaid"`
}

// =============================================================================
// REPORTING TYPES
// =============================================================================

// TeamUsageDTO is one row of the usage report.
type TeamUsageDTO struct {
	TeamID         string          `json:"team_id"`
	TeamName       string          `json:"team_name"`
	Type           string          `json:"type"`
	Vacations      int             `json:"vacations"`
	WorkDays       int             `json:"work_days"`
	Employees      int             `json:"employees"`
	AvgPerVacation decimal.Decimal `json:"avg_per_vacation"`
	AvgPerEmployee decimal.Decimal `json:"avg_per_employee"`
}

// =============================================================================
// SCENARIO TYPES
// =============================================================================

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects the scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toVacationDTO(v vacation.Vacation) VacationDTO {
	return VacationDTO{
		ID:            v.ID,
		EmployeeID:    v.EmployeeID,
		StartDate:     v.Start.String(),
		EndDate:       v.End.String(),
		Type:          string(v.Type),
		TotalWorkDays: v.WorkDays,
	}
}

func toVacationDTOs(vacations []vacation.Vacation) []VacationDTO {
	dtos := make([]VacationDTO, len(vacations))
	for i, v := range vacations {
		dtos[i] = toVacationDTO(v)
	}
	return dtos
}

func toEmployeeDTO(e vacation.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		TeamID:    e.TeamID,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

func toTeamDTO(t vacation.Team) TeamDTO {
	return TeamDTO{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

func toTeamUsageDTO(u reporting.TeamUsage) TeamUsageDTO {
	return TeamUsageDTO{
		TeamID:         u.TeamID,
		TeamName:       u.TeamName,
		Type:           string(u.Type),
		Vacations:      u.Vacations,
		WorkDays:       u.WorkDays,
		Employees:      u.Employees,
		AvgPerVacation: u.AvgPerVacation,
		AvgPerEmployee: u.AvgPerEmployee,
	}
}
