/*
store.go - Persistence interfaces for the vacation core

PURPOSE:
  Defines the query shape the core needs from its persistence collaborator.
  The core never builds SQL; it states the window query and the writes, and
  implementations (store/sqlite, store/memory) provide them.

KEY INTERFACES:
  Store:         Vacation reads/writes, including FindInteracting
  TxStore:       Store plus WithTx for the atomic read-classify-merge-write
  Directory:     Employee/Team lookups and CRUD pass-throughs

FINDINTERACTING CONTRACT:
  Given (employeeID, start, end, excludeID), return every vacation with
    start_date <= end+1 day  AND  end_date >= start-1 day
  excluding excludeID when non-empty, ORDERED BY start_date ASCENDING.
  The ±1 day widening makes back-to-back ranges count as touching; a gap of
  two or more calendar days never does, even when the gap days are
  non-working. The ascending order is a structural guarantee the merge
  planner depends on, not a property of the data.
*/
package vacation

import "context"

// =============================================================================
// VACATION STORE
// =============================================================================

// Store handles vacation persistence.
type Store interface {
	// FindInteracting returns the interacting set for a candidate range.
	// See the contract in the file header.
	FindInteracting(ctx context.Context, employeeID string, start, end Date, excludeID string) ([]Vacation, error)

	// GetVacation returns a vacation by ID, or nil if not found.
	GetVacation(ctx context.Context, id string) (*Vacation, error)

	// ListByEmployee returns all vacations for an employee, ordered by start date.
	ListByEmployee(ctx context.Context, employeeID string) ([]Vacation, error)

	// ListVacations returns vacations matching the filter.
	ListVacations(ctx context.Context, f ListFilter) ([]Vacation, error)

	CreateVacation(ctx context.Context, v Vacation) error
	UpdateVacation(ctx context.Context, v Vacation) error
	DeleteVacation(ctx context.Context, id string) error
}

// TxStore wraps Store with transaction support. The Service runs each
// request's read-classify-merge-write sequence inside WithTx: if fn
// returns an error the writes roll back, leaving prior state untouched.
type TxStore interface {
	Store

	WithTx(ctx context.Context, fn func(Store) error) error
}

// ListFilter holds the simple field filters for vacation listings.
// Nil/empty fields are ignored.
type ListFilter struct {
	StartDate *Date
	EndDate   *Date
	Type      *VacationType
	TeamID    string
}

// =============================================================================
// EMPLOYEE / TEAM DIRECTORY
// =============================================================================

// Directory provides employee and team records. The core only uses
// GetEmployee (existence check before a create); the rest are the
// mechanical CRUD pass-throughs the API exposes.
type Directory interface {
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	SaveEmployee(ctx context.Context, e Employee) error
	DeleteEmployee(ctx context.Context, id string) error

	GetTeam(ctx context.Context, id string) (*Team, error)
	ListTeams(ctx context.Context) ([]Team, error)
	SaveTeam(ctx context.Context, t Team) error
}
