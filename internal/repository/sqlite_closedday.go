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

// SQLiteClosedDayRepo tracks which dates are archived.
type SQLiteClosedDayRepo struct {
	db db.DBTX
}

func NewSQLiteClosedDayRepo(conn db.DBTX) *SQLiteClosedDayRepo {
	return &SQLiteClosedDayRepo{db: conn}
}

func (r *SQLiteClosedDayRepo) IsClosed(ctx context.Context, date string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM closed_days WHERE date = ?`, date).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking closed day %s: %w", date, err)
	}
	return n > 0, nil
}

func (r *SQLiteClosedDayRepo) Close(ctx context.Context, date string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO closed_days (date, closed_at) VALUES (?, ?)`, date, timeToString(at))
	if err != nil {
		return false, fmt.Errorf("closing day %s: %w", date, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("closing day %s: %w", date, err)
	}
	return n > 0, nil
}

func (r *SQLiteClosedDayRepo) Reopen(ctx context.Context, date string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM closed_days WHERE date = ?`, date)
	if err != nil {
		return false, fmt.Errorf("reopening day %s: %w", date, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reopening day %s: %w", date, err)
	}
	return n > 0, nil
}

// List returns closed dates, most recent first.
func (r *SQLiteClosedDayRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date FROM closed_days ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing closed days: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning closed day: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating closed days: %w", err)
	}
	return dates, nil
}

// SQLiteSnapshotRepo stores the archived report of each closed day. A
// snapshot outlives a reopen and is replaced by the next close.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

func (r *SQLiteSnapshotRepo) Upsert(ctx context.Context, s *domain.ClosedDaySnapshot) error {
	query := `INSERT INTO day_snapshots (date, total_groups, users_report, observation, max_concurrent, closed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			total_groups = excluded.total_groups,
			users_report = excluded.users_report,
			observation = excluded.observation,
			max_concurrent = excluded.max_concurrent,
			closed_at = excluded.closed_at`
	report := s.UsersReport
	if report == "" {
		report = "[]"
	}
	_, err := r.db.ExecContext(ctx, query,
		s.Date, s.TotalGroups, report, s.Observation, s.MaxConcurrent, timeToString(s.ClosedAt))
	if err != nil {
		return fmt.Errorf("upserting day snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) Get(ctx context.Context, date string) (*domain.ClosedDaySnapshot, error) {
	var s domain.ClosedDaySnapshot
	var closedStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT date, total_groups, users_report, observation, max_concurrent, closed_at
		FROM day_snapshots WHERE date = ?`, date).
		Scan(&s.Date, &s.TotalGroups, &s.UsersReport, &s.Observation, &s.MaxConcurrent, &closedStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("day snapshot %s: %w", date, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning day snapshot: %w", err)
	}
	if s.ClosedAt, err = time.Parse(time.RFC3339, closedStr); err != nil {
		return nil, fmt.Errorf("parsing closed_at: %w", err)
	}
	return &s, nil
}
