/*
Package vacation implements the vacation tracking core.

PURPOSE:
  Keeps, per employee, a set of non-overlapping date ranges tagged with a
  vacation type. Requests that touch or overlap an existing range of the
  same type are merged into a single record; requests that would silently
  bridge two different types, that duplicate an existing range, or that
  cover zero working days are rejected.

KEY CONCEPTS IN THIS FILE (types.go):
  - Date: A calendar day (UTC midnight), the only time granularity here
  - VacationType: Closed enum (paid | unpaid)
  - Vacation: A persisted inclusive date range with derived workday count
  - Patch: Typed partial update for edits
  - Employee/Team: Referenced entities, validated before the core runs

DESIGN PRINCIPLES:
  1. Pure decisions: classification and merge planning have no I/O
  2. Derived values are never trusted: WorkDays is always recomputed
  3. Reads return plain values; writes go back through the store by ID
  4. One request = one atomic unit of work (see Service)

SEE ALSO:
  - workdays.go:  Workday counting
  - classify.go:  Conflict classification
  - merge.go:     Merge planning
  - service.go:   Orchestration and transactional boundary
*/
package vacation

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar day (this system never deals in hours)
// =============================================================================

// Date is a calendar day. The wrapped time is always UTC midnight so that
// Equal/Before/After behave as day comparisons.
type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool         { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool         { return d.Time.Equal(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }
func (d Date) String() string        { return d.Time.Format("2006-01-02") }

// DaysBetween returns the number of calendar days in [from, to] inclusive.
func DaysBetween(from, to Date) int {
	return int(to.Time.Sub(from.Time).Hours()/24) + 1
}

// =============================================================================
// VACATION TYPE
// =============================================================================

type VacationType string

const (
	TypePaid   VacationType = "paid"
	TypeUnpaid VacationType = "unpaid"
)

// ParseVacationType converts an API string to a VacationType.
func ParseVacationType(s string) (VacationType, error) {
	switch VacationType(s) {
	case TypePaid, TypeUnpaid:
		return VacationType(s), nil
	default:
		return "", fmt.Errorf("unknown vacation type %q", s)
	}
}

// =============================================================================
// VACATION - Persisted non-overlapping range
// =============================================================================

// Vacation is the read model for a persisted vacation. It carries no live
// storage handle: updates and deletes go back through the store keyed by ID.
type Vacation struct {
	ID         string
	EmployeeID string
	Start      Date
	End        Date // inclusive
	WorkDays   int  // derived, recomputed on every write
	Type       VacationType
}

// Covers reports whether v fully contains the [start, end] range.
func (v Vacation) Covers(start, end Date) bool {
	return v.Start.BeforeOrEqual(start) && v.End.AfterOrEqual(end)
}

// Patch enumerates the editable vacation fields. Unset fields keep their
// current value. Enumerating them here makes an unknown field a compile
// error instead of a runtime lookup.
type Patch struct {
	Start *Date
	End   *Date
	Type  *VacationType
}

// Apply merges the patch into a copy of v. WorkDays is intentionally not
// patchable: it is derived and recomputed by the engine.
func (p Patch) Apply(v Vacation) Vacation {
	if p.Start != nil {
		v.Start = *p.Start
	}
	if p.End != nil {
		v.End = *p.End
	}
	if p.Type != nil {
		v.Type = *p.Type
	}
	return v
}

// =============================================================================
// REFERENCED ENTITIES
// =============================================================================

// Employee is referenced by vacations. The core only needs existence;
// CRUD lives at the API/store layer.
type Employee struct {
	ID        string
	FirstName string
	LastName  string
	TeamID    string
	CreatedAt time.Time
}

// Team groups employees for reporting and filtered queries.
type Team struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
