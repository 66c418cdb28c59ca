/*
service.go - Orchestration and transactional boundary

PURPOSE:
  Wires resolver, classifier and merge planner together for the two entry
  points (Create, Edit) and owns the unit of work: the read-classify-plan-
  write sequence for one request runs inside TxStore.WithTx, so a failure
  after the read rolls everything back.

CONCURRENCY:
  Classification and planning are pure and synchronous. Per-employee
  serialization is the store/transaction layer's responsibility: two
  concurrent requests for the same employee can both read an interaction-
  free snapshot and both succeed. Requests for different employees are
  fully independent.
*/
package vacation

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service exposes vacation creation and editing.
type Service struct {
	store     TxStore
	directory Directory
	excluded  Weekdays
	log       zerolog.Logger
}

// NewService creates a Service using the default weekend exclusion set.
func NewService(store TxStore, directory Directory, log zerolog.Logger) *Service {
	return &Service{
		store:     store,
		directory: directory,
		excluded:  Weekend(),
		log:       log,
	}
}

// WithExcludedWeekdays overrides the excluded weekday set.
func (s *Service) WithExcludedWeekdays(excluded Weekdays) *Service {
	s.excluded = excluded
	return s
}

// Create handles a new vacation request. It validates the employee exists,
// classifies the candidate against the interacting set, and applies the
// resulting plan atomically. Returns the surviving record.
func (s *Service) Create(ctx context.Context, employeeID string, start, end Date, typ VacationType) (*Vacation, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	emp, err := s.directory.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}

	candidate := Candidate{EmployeeID: employeeID, Start: start, End: end, Type: typ}

	var survivor Vacation
	err = s.store.WithTx(ctx, func(tx Store) error {
		interacting, err := tx.FindInteracting(ctx, employeeID, start, end, "")
		if err != nil {
			return err
		}

		mergeWith, err := Classify(candidate, interacting)
		if err != nil {
			return err
		}

		plan, err := PlanCreate(candidate, mergeWith, s.excluded)
		if err != nil {
			return err
		}
		if plan.Creates {
			plan.Survivor.ID = uuid.NewString()
		}

		survivor = plan.Survivor
		return applyPlan(ctx, tx, plan)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("employee_id", employeeID).
		Str("vacation_id", survivor.ID).
		Stringer("start", survivor.Start).
		Stringer("end", survivor.End).
		Int("workdays", survivor.WorkDays).
		Msg("vacation created")

	return &survivor, nil
}

// Edit handles a partial update of an existing vacation. The edited record
// is re-checked against the employee's other vacations (the resolver
// excludes the record itself) and plays the survivor role in any merge.
func (s *Service) Edit(ctx context.Context, vacationID string, patch Patch) (*Vacation, error) {
	existing, err := s.store.GetVacation(ctx, vacationID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrVacationNotFound
	}

	edited := patch.Apply(*existing)
	if edited.Start.After(edited.End) {
		return nil, ErrInvalidRange
	}

	candidate := Candidate{
		EmployeeID: edited.EmployeeID,
		Start:      edited.Start,
		End:        edited.End,
		Type:       edited.Type,
	}

	var survivor Vacation
	err = s.store.WithTx(ctx, func(tx Store) error {
		interacting, err := tx.FindInteracting(ctx, edited.EmployeeID, edited.Start, edited.End, edited.ID)
		if err != nil {
			return err
		}

		mergeWith, err := Classify(candidate, interacting)
		if err != nil {
			return err
		}

		plan, err := PlanEdit(edited, mergeWith, s.excluded)
		if err != nil {
			return err
		}

		survivor = plan.Survivor
		return applyPlan(ctx, tx, plan)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("vacation_id", survivor.ID).
		Stringer("start", survivor.Start).
		Stringer("end", survivor.End).
		Int("workdays", survivor.WorkDays).
		Msg("vacation updated")

	return &survivor, nil
}

// applyPlan executes the plan's writes in a fixed order: absorbed records
// first, then the surviving create-or-update.
func applyPlan(ctx context.Context, tx Store, plan Plan) error {
	for _, id := range plan.Deletes {
		if err := tx.DeleteVacation(ctx, id); err != nil {
			return err
		}
	}
	if plan.Creates {
		return tx.CreateVacation(ctx, plan.Survivor)
	}
	return tx.UpdateVacation(ctx, plan.Survivor)
}
