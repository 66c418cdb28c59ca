/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements vacation.TxStore and vacation.Directory using SQLite. The same
  patterns apply to PostgreSQL in production - only minor dialect
  differences.

KEY TABLES:
  teams:      Team records
  employees:  Employee records, FK to teams
  vacations:  Non-overlapping per-employee date ranges, FK to employees

THE WINDOW QUERY:
  FindInteracting is the one non-trivial query: all rows for an employee
  with start_date <= end+1 day and end_date >= start-1 day, ordered by
  start_date ascending. Dates are stored as ISO YYYY-MM-DD text, so string
  comparison is date comparison and the ORDER BY gives the ascending chain
  the merge planner requires.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. WithTx runs a unit of work inside a
  database transaction while holding the write lock, which also gives the
  per-employee serialization the core documents as external.

WAL MODE:
  SQLite is opened with WAL for better concurrency and crash recovery.

USAGE:
  store, err := sqlite.New("./data/vacations.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - vacation/store.go: Interface definitions and the FindInteracting contract
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/vacation-engine/vacation"
)

// Store implements vacation.TxStore and vacation.Directory using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive across the pool
	// and matches the one-writer model WithTx enforces anyway.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		team_id TEXT NOT NULL REFERENCES teams(id),
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_team
		ON employees(team_id);

	CREATE TABLE IF NOT EXISTS vacations (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		total_work_days INTEGER NOT NULL,
		type TEXT NOT NULL,
		CHECK (start_date <= end_date)
	);

	-- Hot path: the interaction window query
	CREATE INDEX IF NOT EXISTS idx_vacations_employee_start
		ON vacations(employee_id, start_date);
	CREATE INDEX IF NOT EXISTS idx_vacations_employee_end
		ON vacations(employee_id, end_date);

	-- For filtered listings
	CREATE INDEX IF NOT EXISTS idx_vacations_type
		ON vacations(type);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// VACATION STORE (vacation.Store interface)
// =============================================================================

const vacationColumns = "id, employee_id, start_date, end_date, total_work_days, type"

// FindInteracting returns the interacting set for a candidate range.
// See vacation/store.go for the contract.
func (s *Store) FindInteracting(ctx context.Context, employeeID string, start, end vacation.Date, excludeID string) ([]vacation.Vacation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.findInteracting(ctx, s.db, employeeID, start, end, excludeID)
}

func (s *Store) findInteracting(ctx context.Context, db queryer, employeeID string, start, end vacation.Date, excludeID string) ([]vacation.Vacation, error) {
	query := `
		SELECT ` + vacationColumns + `
		FROM vacations
		WHERE employee_id = ?
		  AND start_date <= ?
		  AND end_date >= ?
	`
	args := []any{employeeID, end.AddDays(1).String(), start.AddDays(-1).String()}

	if excludeID != "" {
		query += " AND id != ?"
		args = append(args, excludeID)
	}
	query += " ORDER BY start_date ASC"

	return queryVacations(ctx, db, query, args...)
}

// GetVacation retrieves a vacation by ID, or nil if not found.
func (s *Store) GetVacation(ctx context.Context, id string) (*vacation.Vacation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vacations, err := queryVacations(ctx, s.db,
		"SELECT "+vacationColumns+" FROM vacations WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(vacations) == 0 {
		return nil, nil
	}
	return &vacations[0], nil
}

// ListByEmployee returns all vacations for an employee, ordered by start date.
func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]vacation.Vacation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return queryVacations(ctx, s.db,
		"SELECT "+vacationColumns+" FROM vacations WHERE employee_id = ? ORDER BY start_date ASC",
		employeeID)
}

// ListVacations returns vacations matching the filter.
func (s *Store) ListVacations(ctx context.Context, f vacation.ListFilter) ([]vacation.Vacation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT v." + strings.ReplaceAll(vacationColumns, ", ", ", v.") + " FROM vacations v"
	var clauses []string
	var args []any

	if f.TeamID != "" {
		query += " JOIN employees e ON e.id = v.employee_id"
		clauses = append(clauses, "e.team_id = ?")
		args = append(args, f.TeamID)
	}
	if f.StartDate != nil {
		clauses = append(clauses, "v.start_date >= ?", "v.end_date >= ?")
		args = append(args, f.StartDate.String(), f.StartDate.String())
	}
	if f.EndDate != nil {
		clauses = append(clauses, "v.start_date <= ?", "v.end_date <= ?")
		args = append(args, f.EndDate.String(), f.EndDate.String())
	}
	if f.Type != nil {
		clauses = append(clauses, "v.type = ?")
		args = append(args, string(*f.Type))
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY v.start_date ASC"

	return queryVacations(ctx, s.db, query, args...)
}

// CreateVacation inserts a vacation record.
func (s *Store) CreateVacation(ctx context.Context, v vacation.Vacation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return createVacation(ctx, s.db, v)
}

// UpdateVacation rewrites a vacation record by ID.
func (s *Store) UpdateVacation(ctx context.Context, v vacation.Vacation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return updateVacation(ctx, s.db, v)
}

// DeleteVacation removes a vacation record.
func (s *Store) DeleteVacation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return deleteVacation(ctx, s.db, id)
}

func createVacation(ctx context.Context, db execer, v vacation.Vacation) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO vacations (id, employee_id, start_date, end_date, total_work_days, type)
		VALUES (?, ?, ?, ?, ?, ?)`,
		v.ID, v.EmployeeID, v.Start.String(), v.End.String(), v.WorkDays, string(v.Type),
	)
	if err != nil {
		return fmt.Errorf("failed to insert vacation: %w", err)
	}
	return nil
}

func updateVacation(ctx context.Context, db execer, v vacation.Vacation) error {
	res, err := db.ExecContext(ctx, `
		UPDATE vacations
		SET start_date = ?, end_date = ?, total_work_days = ?, type = ?
		WHERE id = ?`,
		v.Start.String(), v.End.String(), v.WorkDays, string(v.Type), v.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vacation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return vacation.ErrVacationNotFound
	}
	return nil
}

func deleteVacation(ctx context.Context, db execer, id string) error {
	_, err := db.ExecContext(ctx, "DELETE FROM vacations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete vacation: %w", err)
	}
	return nil
}

func queryVacations(ctx context.Context, db queryer, query string, args ...any) ([]vacation.Vacation, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vacations: %w", err)
	}
	defer rows.Close()

	var vacations []vacation.Vacation
	for rows.Next() {
		v, err := scanVacation(rows)
		if err != nil {
			return nil, err
		}
		vacations = append(vacations, v)
	}

	return vacations, rows.Err()
}

func scanVacation(rows *sql.Rows) (vacation.Vacation, error) {
	var (
		v          vacation.Vacation
		start, end string
		typ        string
	)

	if err := rows.Scan(&v.ID, &v.EmployeeID, &start, &end, &v.WorkDays, &typ); err != nil {
		return v, fmt.Errorf("failed to scan vacation: %w", err)
	}

	var err error
	if v.Start, err = vacation.ParseDate(start); err != nil {
		return v, err
	}
	if v.End, err = vacation.ParseDate(end); err != nil {
		return v, err
	}
	v.Type = vacation.VacationType(typ)

	return v, nil
}

// =============================================================================
// TRANSACTIONAL STORE (vacation.TxStore interface)
// =============================================================================

// WithTx executes a function within a database transaction. The write lock
// is held for the duration, serializing units of work.
func (s *Store) WithTx(ctx context.Context, fn func(store vacation.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{tx: sqlTx, parent: s}); err != nil {
		return err
	}

	return sqlTx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// txStore routes every operation through the open transaction. No locking:
// the parent's WithTx already holds the write lock.
type txStore struct {
	tx     *sql.Tx
	parent *Store
}

func (ts *txStore) FindInteracting(ctx context.Context, employeeID string, start, end vacation.Date, excludeID string) ([]vacation.Vacation, error) {
	return ts.parent.findInteracting(ctx, ts.tx, employeeID, start, end, excludeID)
}

func (ts *txStore) GetVacation(ctx context.Context, id string) (*vacation.Vacation, error) {
	vacations, err := queryVacations(ctx, ts.tx,
		"SELECT "+vacationColumns+" FROM vacations WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(vacations) == 0 {
		return nil, nil
	}
	return &vacations[0], nil
}

func (ts *txStore) ListByEmployee(ctx context.Context, employeeID string) ([]vacation.Vacation, error) {
	return queryVacations(ctx, ts.tx,
		"SELECT "+vacationColumns+" FROM vacations WHERE employee_id = ? ORDER BY start_date ASC",
		employeeID)
}

func (ts *txStore) ListVacations(ctx context.Context, f vacation.ListFilter) ([]vacation.Vacation, error) {
	return nil, fmt.Errorf("filtered listing not supported inside a unit of work")
}

func (ts *txStore) CreateVacation(ctx context.Context, v vacation.Vacation) error {
	return createVacation(ctx, ts.tx, v)
}

func (ts *txStore) UpdateVacation(ctx context.Context, v vacation.Vacation) error {
	return updateVacation(ctx, ts.tx, v)
}

func (ts *txStore) DeleteVacation(ctx context.Context, id string) error {
	return deleteVacation(ctx, ts.tx, id)
}

// =============================================================================
// EMPLOYEE / TEAM DIRECTORY (vacation.Directory interface)
// =============================================================================

// SaveEmployee inserts or updates an employee.
func (s *Store) SaveEmployee(ctx context.Context, e vacation.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, first_name, last_name, team_id, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			team_id = excluded.team_id`,
		e.ID, e.FirstName, e.LastName, e.TeamID,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetEmployee retrieves an employee by ID, or nil if not found.
func (s *Store) GetEmployee(ctx context.Context, id string) (*vacation.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e vacation.Employee
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, team_id, created_at FROM employees WHERE id = ?",
		id,
	).Scan(&e.ID, &e.FirstName, &e.LastName, &e.TeamID, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &e, nil
}

// ListEmployees returns all employees.
func (s *Store) ListEmployees(ctx context.Context) ([]vacation.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, first_name, last_name, team_id, created_at FROM employees ORDER BY last_name, first_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []vacation.Employee
	for rows.Next() {
		var e vacation.Employee
		var createdAt string
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.TeamID, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// DeleteEmployee removes an employee.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	return err
}

// SaveTeam inserts or updates a team.
func (s *Store) SaveTeam(ctx context.Context, t vacation.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO teams (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name`,
		t.ID, t.Name, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetTeam retrieves a team by ID, or nil if not found.
func (s *Store) GetTeam(ctx context.Context, id string) (*vacation.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t vacation.Team
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM teams WHERE id = ?", id,
	).Scan(&t.ID, &t.Name, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &t, nil
}

// ListTeams returns all teams.
func (s *Store) ListTeams(ctx context.Context) ([]vacation.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, created_at FROM teams ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []vacation.Team
	for rows.Next() {
		var t vacation.Team
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Name, &createdAt); err != nil {
			return nil, err
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"vacations", "employees", "teams"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
