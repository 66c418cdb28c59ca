/*
Package reporting aggregates vacation usage for teams.

Pure computation over read models: callers fetch teams, employees and
vacations and hand them over. Averages use decimal arithmetic so the API
never serves float artifacts like 3.3333333333333335.
*/
package reporting

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/warp/vacation-engine/vacation"
)

// TeamUsage summarizes one team's usage of one vacation type.
type TeamUsage struct {
	TeamID    string
	TeamName  string
	Type      vacation.VacationType
	Vacations int
	WorkDays  int
	Employees int // employees on the team, not just those with vacations

	// AvgPerVacation = WorkDays / Vacations, 2 decimal places.
	AvgPerVacation decimal.Decimal
	// AvgPerEmployee = WorkDays / Employees, 2 decimal places.
	AvgPerEmployee decimal.Decimal
}

// Summarize computes per-team, per-type usage. Teams with no vacations of
// a type get no row for that type. Output is ordered by team name, then type.
func Summarize(teams []vacation.Team, employees []vacation.Employee, vacations []vacation.Vacation) []TeamUsage {
	teamByID := make(map[string]vacation.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	teamOfEmployee := make(map[string]string, len(employees))
	headcount := make(map[string]int, len(teams))
	for _, e := range employees {
		teamOfEmployee[e.ID] = e.TeamID
		headcount[e.TeamID]++
	}

	type key struct {
		teamID string
		typ    vacation.VacationType
	}
	usage := make(map[key]*TeamUsage)

	for _, v := range vacations {
		teamID, ok := teamOfEmployee[v.EmployeeID]
		if !ok {
			continue // orphaned record, skip rather than invent a team
		}
		k := key{teamID: teamID, typ: v.Type}
		u := usage[k]
		if u == nil {
			u = &TeamUsage{
				TeamID:    teamID,
				TeamName:  teamByID[teamID].Name,
				Type:      v.Type,
				Employees: headcount[teamID],
			}
			usage[k] = u
		}
		u.Vacations++
		u.WorkDays += v.WorkDays
	}

	out := make([]TeamUsage, 0, len(usage))
	for _, u := range usage {
		workdays := decimal.NewFromInt(int64(u.WorkDays))
		u.AvgPerVacation = workdays.Div(decimal.NewFromInt(int64(u.Vacations))).Round(2)
		if u.Employees > 0 {
			u.AvgPerEmployee = workdays.Div(decimal.NewFromInt(int64(u.Employees))).Round(2)
		}
		out = append(out, *u)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamName != out[j].TeamName {
			return out[i].TeamName < out[j].TeamName
		}
		return out[i].Type < out[j].Type
	})
	return out
}
