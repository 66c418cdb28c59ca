// Package memory provides an in-memory store for tests and development.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/vacation-engine/vacation"
)

// =============================================================================
// MEMORY STORE - Implements vacation.TxStore and vacation.Directory
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	vacations map[string]vacation.Vacation
	employees map[string]vacation.Employee
	teams     map[string]vacation.Team
}

func New() *Memory {
	return &Memory{
		vacations: make(map[string]vacation.Vacation),
		employees: make(map[string]vacation.Employee),
		teams:     make(map[string]vacation.Team),
	}
}

// =============================================================================
// VACATIONS (vacation.Store interface)
// =============================================================================

// FindInteracting returns vacations touching [start-1d, end+1d], ascending
// by start date. Mirrors the SQL window query in store/sqlite.
func (m *Memory) FindInteracting(_ context.Context, employeeID string, start, end vacation.Date, excludeID string) ([]vacation.Vacation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lo := start.AddDays(-1)
	hi := end.AddDays(1)

	var out []vacation.Vacation
	for _, v := range m.vacations {
		if v.EmployeeID != employeeID || v.ID == excludeID {
			continue
		}
		if v.Start.BeforeOrEqual(hi) && v.End.AfterOrEqual(lo) {
			out = append(out, v)
		}
	}
	sortByStart(out)
	return out, nil
}

func (m *Memory) GetVacation(_ context.Context, id string) (*vacation.Vacation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.vacations[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (m *Memory) ListByEmployee(_ context.Context, employeeID string) ([]vacation.Vacation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []vacation.Vacation
	for _, v := range m.vacations {
		if v.EmployeeID == employeeID {
			out = append(out, v)
		}
	}
	sortByStart(out)
	return out, nil
}

func (m *Memory) ListVacations(_ context.Context, f vacation.ListFilter) ([]vacation.Vacation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []vacation.Vacation
	for _, v := range m.vacations {
		if f.StartDate != nil && (v.Start.Before(*f.StartDate) || v.End.Before(*f.StartDate)) {
			continue
		}
		if f.EndDate != nil && (v.Start.After(*f.EndDate) || v.End.After(*f.EndDate)) {
			continue
		}
		if f.Type != nil && v.Type != *f.Type {
			continue
		}
		if f.TeamID != "" {
			emp, ok := m.employees[v.EmployeeID]
			if !ok || emp.TeamID != f.TeamID {
				continue
			}
		}
		out = append(out, v)
	}
	sortByStart(out)
	return out, nil
}

func (m *Memory) CreateVacation(_ context.Context, v vacation.Vacation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vacations[v.ID] = v
	return nil
}

func (m *Memory) UpdateVacation(_ context.Context, v vacation.Vacation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vacations[v.ID] = v
	return nil
}

func (m *Memory) DeleteVacation(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vacations, id)
	return nil
}

// WithTx runs fn and restores the previous vacation state if fn fails.
// Good enough for tests and dev; it does not isolate concurrent readers
// the way the SQLite implementation does.
func (m *Memory) WithTx(_ context.Context, fn func(vacation.Store) error) error {
	m.mu.Lock()
	snapshot := make(map[string]vacation.Vacation, len(m.vacations))
	for id, v := range m.vacations {
		snapshot[id] = v
	}
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.vacations = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

// =============================================================================
// EMPLOYEES / TEAMS (vacation.Directory interface)
// =============================================================================

func (m *Memory) GetEmployee(_ context.Context, id string) (*vacation.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *Memory) ListEmployees(_ context.Context) ([]vacation.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]vacation.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SaveEmployee(_ context.Context, e vacation.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[e.ID] = e
	return nil
}

func (m *Memory) DeleteEmployee(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.employees, id)
	return nil
}

func (m *Memory) GetTeam(_ context.Context, id string) (*vacation.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.teams[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *Memory) ListTeams(_ context.Context) ([]vacation.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]vacation.Team, 0, len(m.teams))
	for _, t := range m.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SaveTeam(_ context.Context, t vacation.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams[t.ID] = t
	return nil
}

func sortByStart(vacations []vacation.Vacation) {
	sort.Slice(vacations, func(i, j int) bool {
		if vacations[i].Start.Equal(vacations[j].Start) {
			return vacations[i].ID < vacations[j].ID
		}
		return vacations[i].Start.Before(vacations[j].Start)
	})
}
