package vacation

import "time"

// =============================================================================
// WORKDAY CALCULATOR
// =============================================================================

// Weekdays is a set of weekdays excluded from the workday count.
type Weekdays map[time.Weekday]bool

// Weekend returns the default exclusion set (Saturday and Sunday).
func Weekend() Weekdays {
	return Weekdays{time.Saturday: true, time.Sunday: true}
}

// ComputeWorkdays counts the days in [start, end] inclusive whose weekday
// is not in excluded. Defined only for start <= end; callers own that
// precondition. Pure and deterministic.
func ComputeWorkdays(start, end Date, excluded Weekdays) int {
	count := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if !excluded[d.Weekday()] {
			count++
		}
	}
	return count
}
