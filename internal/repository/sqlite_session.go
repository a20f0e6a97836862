package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
)

// SQLiteSessionRepo stores open work sessions, one row per employee.
type SQLiteSessionRepo struct {
	db db.DBTX
}

func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

const sessionColumns = `employee_id, employee_name, start_time, client_start_time`

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.WorkSession) error {
	query := `INSERT INTO work_sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.EmployeeID,
		s.EmployeeName,
		timeToString(s.StartTime),
		nullableTimeToString(s.ClientStartTime, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) Get(ctx context.Context, employeeID string) (*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE employee_id = ?`
	return r.scanSession(r.db.QueryRowContext(ctx, query, employeeID))
}

func (r *SQLiteSessionRepo) List(ctx context.Context) ([]*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions ORDER BY start_time, employee_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing work sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.WorkSession
	for rows.Next() {
		s, err := r.scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) SetClientStart(ctx context.Context, employeeID string, at *time.Time) error {
	query := `UPDATE work_sessions SET client_start_time = ? WHERE employee_id = ?`
	res, err := r.db.ExecContext(ctx, query, nullableTimeToString(at, time.RFC3339), employeeID)
	if err != nil {
		return fmt.Errorf("updating client start: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("work session %s: %w", employeeID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, employeeID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM work_sessions WHERE employee_id = ?`, employeeID)
	if err != nil {
		return fmt.Errorf("deleting work session: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteSessionRepo) scanSession(row rowScanner) (*domain.WorkSession, error) {
	var s domain.WorkSession
	var startStr string
	var clientStart sql.NullString

	if err := row.Scan(&s.EmployeeID, &s.EmployeeName, &startStr, &clientStart); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work session: %w", err)
	}

	var err error
	s.StartTime, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	s.ClientStartTime = parseNullableTime(clientStart, time.RFC3339)
	return &s, nil
}
