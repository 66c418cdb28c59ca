package reporting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/vacation-engine/reporting"
	"github.com/warp/vacation-engine/vacation"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func fixtureTeams() []vacation.Team {
	return []vacation.Team{
		{ID: "team-1", Name: "Engineering"},
		{ID: "team-2", Name: "Sales"},
	}
}

func fixtureEmployees() []vacation.Employee {
	return []vacation.Employee{
		{ID: "emp-1", TeamID: "team-1"},
		{ID: "emp-2", TeamID: "team-1"},
		{ID: "emp-3", TeamID: "team-2"},
	}
}

func fixtureVacation(id, empID string, workdays int, typ vacation.VacationType) vacation.Vacation {
	return vacation.Vacation{
		ID:         id,
		EmployeeID: empID,
		Start:      vacation.NewDate(2025, time.June, 2),
		End:        vacation.NewDate(2025, time.June, 6),
		WorkDays:   workdays,
		Type:       typ,
	}
}

// =============================================================================
// SUMMARIZE TESTS
// =============================================================================

func TestSummarize_Empty(t *testing.T) {
	got := reporting.Summarize(fixtureTeams(), fixtureEmployees(), nil)
	assert.Empty(t, got)
}

func TestSummarize_GroupsByTeamAndType(t *testing.T) {
	vacations := []vacation.Vacation{
		fixtureVacation("v-1", "emp-1", 5, vacation.TypePaid),
		fixtureVacation("v-2", "emp-2", 10, vacation.TypePaid),
		fixtureVacation("v-3", "emp-2", 3, vacation.TypeUnpaid),
		fixtureVacation("v-4", "emp-3", 4, vacation.TypePaid),
	}

	got := reporting.Summarize(fixtureTeams(), fixtureEmployees(), vacations)
	require.Len(t, got, 3)

	// Ordered by team name, then type.
	engPaid := got[0]
	assert.Equal(t, "Engineering", engPaid.TeamName)
	assert.Equal(t, vacation.TypePaid, engPaid.Type)
	assert.Equal(t, 2, engPaid.Vacations)
	assert.Equal(t, 15, engPaid.WorkDays)
	assert.Equal(t, 2, engPaid.Employees)
	assert.Equal(t, "7.5", engPaid.AvgPerVacation.String())
	assert.Equal(t, "7.5", engPaid.AvgPerEmployee.String())

	engUnpaid := got[1]
	assert.Equal(t, "Engineering", engUnpaid.TeamName)
	assert.Equal(t, vacation.TypeUnpaid, engUnpaid.Type)
	assert.Equal(t, 1, engUnpaid.Vacations)
	assert.Equal(t, 3, engUnpaid.WorkDays)

	salesPaid := got[2]
	assert.Equal(t, "Sales", salesPaid.TeamName)
	assert.Equal(t, 1, salesPaid.Employees)
	assert.Equal(t, "4", salesPaid.AvgPerEmployee.String())
}

func TestSummarize_AveragesRoundedToTwoPlaces(t *testing.T) {
	// 10 workdays over 3 vacations is a repeating decimal; the report
	// serves 3.33, not a float artifact.
	vacations := []vacation.Vacation{
		fixtureVacation("v-1", "emp-1", 3, vacation.TypePaid),
		fixtureVacation("v-2", "emp-1", 3, vacation.TypePaid),
		fixtureVacation("v-3", "emp-2", 4, vacation.TypePaid),
	}

	got := reporting.Summarize(fixtureTeams(), fixtureEmployees(), vacations)
	require.Len(t, got, 1)
	assert.Equal(t, "3.33", got[0].AvgPerVacation.String())
	assert.Equal(t, "5", got[0].AvgPerEmployee.String())
}

func TestSummarize_HeadcountIncludesEmployeesWithoutVacations(t *testing.T) {
	// emp-2 took nothing; the per-employee average still divides by the
	// full team headcount.
	vacations := []vacation.Vacation{
		fixtureVacation("v-1", "emp-1", 10, vacation.TypePaid),
	}

	got := reporting.Summarize(fixtureTeams(), fixtureEmployees(), vacations)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Employees)
	assert.Equal(t, "5", got[0].AvgPerEmployee.String())
}

func TestSummarize_OrphanedVacation_Skipped(t *testing.T) {
	vacations := []vacation.Vacation{
		fixtureVacation("v-1", "emp-ghost", 5, vacation.TypePaid),
	}

	got := reporting.Summarize(fixtureTeams(), fixtureEmployees(), vacations)
	assert.Empty(t, got)
}
