package vacation

// =============================================================================
// CONFLICT CLASSIFIER
// =============================================================================

// Candidate is an incoming range being created, or an edited record's new
// bounds being re-checked against the rest of the employee's vacations.
type Candidate struct {
	EmployeeID string
	Start      Date
	End        Date
	Type       VacationType
}

// Classify inspects the interacting set for a candidate and decides the
// outcome. The checks run in a fixed order:
//
//  1. Containment: any record already covering the candidate rejects with
//     ErrVacationExists. Type is disregarded here: a covering record of a
//     different type still rejects as a duplicate, not as bridging.
//  2. Type diversity: more than one distinct type across the whole
//     interacting set rejects with ErrBridgingTypes.
//  3. Same-type filter: the returned merge set keeps only records of the
//     candidate's type. A touching record of a single different type is
//     dropped from consideration: not merged, not deleted, not reported.
//     That is deliberate, inherited behavior (see classifier tests).
//
// An empty merge set means the candidate stands alone. A non-empty set
// keeps the resolver's ascending start-date order.
func Classify(c Candidate, interacting []Vacation) ([]Vacation, error) {
	for _, v := range interacting {
		if v.Covers(c.Start, c.End) {
			return nil, &CoveredError{ExistingID: v.ID}
		}
	}

	types := distinctTypes(interacting)
	if len(types) > 1 {
		return nil, &BridgeError{Types: types}
	}

	var merge []Vacation
	for _, v := range interacting {
		if v.Type == c.Type {
			merge = append(merge, v)
		}
	}
	return merge, nil
}

// distinctTypes returns the distinct types in first-seen order, so the
// BridgeError message is stable for a given interacting set.
func distinctTypes(vacations []Vacation) []VacationType {
	seen := make(map[VacationType]bool, 2)
	var types []VacationType
	for _, v := range vacations {
		if !seen[v.Type] {
			seen[v.Type] = true
			types = append(types, v.Type)
		}
	}
	return types
}
