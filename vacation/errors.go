/*
errors.go - Error taxonomy for the vacation core

PURPOSE:
  All rejection conditions in one place. The API layer maps these to HTTP
  status codes via the Is* helpers instead of inspecting error strings.

ERROR CATEGORIES:
  1. Rejections - the three classifier/engine outcomes callers must handle
  2. Validation - malformed input surfaced before the engine runs
  3. Not found  - missing referenced records

USAGE:
  if errors.Is(err, vacation.ErrBridgingTypes) { ... }

  var bridge *vacation.BridgeError
  if errors.As(err, &bridge) { log(bridge.Types) }
*/
package vacation

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoWorkDays is returned when an accepted range covers zero working
	// days (e.g. a weekend-only request). Nothing is persisted.
	ErrNoWorkDays = errors.New("vacation covers no working days")

	// ErrVacationExists is returned when an existing record already fully
	// covers the candidate range. The check disregards type.
	ErrVacationExists = errors.New("vacation already exists on those dates")

	// ErrBridgingTypes is returned when the candidate would connect two
	// differently-typed vacations into one contiguous run.
	ErrBridgingTypes = errors.New("vacation would bridge different vacation types")

	// ErrInvalidRange is returned when a request or patch ends up with
	// start after end.
	ErrInvalidRange = errors.New("invalid range: start date after end date")

	// ErrEmployeeNotFound is returned when the referenced employee does not exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrVacationNotFound is returned when the referenced vacation does not exist.
	ErrVacationNotFound = errors.New("vacation not found")

	// ErrTeamNotFound is returned when the referenced team does not exist.
	ErrTeamNotFound = errors.New("team not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// BridgeError reports which types the candidate would have connected.
type BridgeError struct {
	Types []VacationType
}

func (e *BridgeError) Error() string {
	names := make([]string, len(e.Types))
	for i, t := range e.Types {
		names[i] = string(t)
	}
	return fmt.Sprintf("bridging vacations with types: %s", strings.Join(names, ", "))
}

func (e *BridgeError) Unwrap() error { return ErrBridgingTypes }

// CoveredError reports which existing record already covers the candidate.
type CoveredError struct {
	ExistingID string
}

func (e *CoveredError) Error() string {
	return fmt.Sprintf("vacation already exists on those dates (record %s), update it instead", e.ExistingID)
}

func (e *CoveredError) Unwrap() error { return ErrVacationExists }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNoWorkDays) ||
		errors.Is(err, ErrVacationExists) ||
		errors.Is(err, ErrBridgingTypes) ||
		errors.Is(err, ErrInvalidRange)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrVacationNotFound) ||
		errors.Is(err, ErrTeamNotFound)
}
