package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
)

// SQLiteGroupRepo stores per-employee daily group counts. The counts column
// holds a JSON object; rows written by older releases may hold a bare
// integer, which reads back as {standard: n}.
type SQLiteGroupRepo struct {
	db db.DBTX
}

func NewSQLiteGroupRepo(conn db.DBTX) *SQLiteGroupRepo {
	return &SQLiteGroupRepo{db: conn}
}

func (r *SQLiteGroupRepo) Get(ctx context.Context, employeeID, date string) (*domain.DailyGroups, error) {
	query := `SELECT employee_id, date, counts, updated_at FROM group_counts
		WHERE employee_id = ? AND date = ?`
	return r.scanGroups(r.db.QueryRowContext(ctx, query, employeeID, date))
}

func (r *SQLiteGroupRepo) ListRange(ctx context.Context, from, to string) ([]*domain.DailyGroups, error) {
	query := `SELECT employee_id, date, counts, updated_at FROM group_counts
		WHERE date >= ? AND date <= ? ORDER BY date, employee_id`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing group counts: %w", err)
	}
	defer rows.Close()

	var out []*domain.DailyGroups
	for rows.Next() {
		g, err := r.scanGroups(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating group counts: %w", err)
	}
	return out, nil
}

func (r *SQLiteGroupRepo) Upsert(ctx context.Context, g *domain.DailyGroups) error {
	if err := g.Counts.Validate(); err != nil {
		return err
	}
	counts, err := json.Marshal(g.Counts)
	if err != nil {
		return fmt.Errorf("encoding group counts: %w", err)
	}
	query := `INSERT INTO group_counts (employee_id, date, counts, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(employee_id, date) DO UPDATE SET counts = excluded.counts, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, g.EmployeeID, g.Date, string(counts), timeToString(g.UpdatedAt)); err != nil {
		return fmt.Errorf("upserting group counts: %w", err)
	}
	return nil
}

func (r *SQLiteGroupRepo) scanGroups(row rowScanner) (*domain.DailyGroups, error) {
	var g domain.DailyGroups
	var counts, updatedStr string
	if err := row.Scan(&g.EmployeeID, &g.Date, &counts, &updatedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("group counts: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning group counts: %w", err)
	}

	parsed, err := domain.NormalizeGroups([]byte(counts))
	if err != nil {
		return nil, fmt.Errorf("decoding group counts for %s: %w", domain.GroupKey(g.EmployeeID, g.Date), err)
	}
	g.Counts = parsed
	if g.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &g, nil
}
