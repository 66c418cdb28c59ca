package vacation

// =============================================================================
// MERGE ENGINE
// =============================================================================

// Plan is the minimal write set that brings the employee's vacations to a
// consistent state: zero or more deletes plus exactly one create-or-update.
type Plan struct {
	Survivor Vacation // the record that remains; WorkDays already recomputed
	Deletes  []string // ids fully absorbed by the merge
	Creates  bool     // true when Survivor is a new record (ID assigned by caller)
}

// PlanCreate computes the plan for a new candidate. mergeWith is the
// same-type set from Classify, ascending by start date; the planner relies
// on that chain being mutually non-overlapping and sorted, so the last
// element holds the maximal end.
func PlanCreate(c Candidate, mergeWith []Vacation, excluded Weekdays) (Plan, error) {
	if len(mergeWith) == 0 {
		workdays := ComputeWorkdays(c.Start, c.End, excluded)
		if workdays == 0 {
			return Plan{}, ErrNoWorkDays
		}
		return Plan{
			Survivor: Vacation{
				EmployeeID: c.EmployeeID,
				Start:      c.Start,
				End:        c.End,
				WorkDays:   workdays,
				Type:       c.Type,
			},
			Creates: true,
		}, nil
	}

	// The earliest record survives and widens; the rest are absorbed.
	survivor := mergeWith[0]
	if c.Start.Before(survivor.Start) {
		survivor.Start = c.Start
	}
	if c.End.After(survivor.End) {
		survivor.End = c.End
	}
	if len(mergeWith) > 1 {
		survivor.End = mergeWith[len(mergeWith)-1].End
	}
	survivor.WorkDays = ComputeWorkdays(survivor.Start, survivor.End, excluded)

	deletes := make([]string, 0, len(mergeWith)-1)
	for _, v := range mergeWith[1:] {
		deletes = append(deletes, v.ID)
	}

	return Plan{Survivor: survivor, Deletes: deletes}, nil
}

// PlanEdit computes the plan for an edited record. The edited record plays
// the survivor role directly: every element of mergeWith is deleted and the
// edited bounds widen to the union of the chain and the new range.
func PlanEdit(edited Vacation, mergeWith []Vacation, excluded Weekdays) (Plan, error) {
	if len(mergeWith) == 0 {
		workdays := ComputeWorkdays(edited.Start, edited.End, excluded)
		if workdays == 0 {
			return Plan{}, ErrNoWorkDays
		}
		edited.WorkDays = workdays
		return Plan{Survivor: edited}, nil
	}

	if first := mergeWith[0].Start; first.Before(edited.Start) {
		edited.Start = first
	}
	if last := mergeWith[len(mergeWith)-1].End; last.After(edited.End) {
		edited.End = last
	}
	edited.WorkDays = ComputeWorkdays(edited.Start, edited.End, excluded)

	deletes := make([]string, len(mergeWith))
	for i, v := range mergeWith {
		deletes[i] = v.ID
	}

	return Plan{Survivor: edited, Deletes: deletes}, nil
}
