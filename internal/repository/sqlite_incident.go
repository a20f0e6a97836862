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

// SQLiteIncidentRepo stores the free-text incident note of a day.
type SQLiteIncidentRepo struct {
	db db.DBTX
}

func NewSQLiteIncidentRepo(conn db.DBTX) *SQLiteIncidentRepo {
	return &SQLiteIncidentRepo{db: conn}
}

func (r *SQLiteIncidentRepo) Get(ctx context.Context, date string) (*domain.DayIncident, error) {
	var i domain.DayIncident
	var updatedStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT date, text, updated_at FROM day_incidents WHERE date = ?`, date).
		Scan(&i.Date, &i.Text, &updatedStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("day incident %s: %w", date, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning day incident: %w", err)
	}
	if i.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &i, nil
}

func (r *SQLiteIncidentRepo) Upsert(ctx context.Context, i *domain.DayIncident) error {
	query := `INSERT INTO day_incidents (date, text, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET text = excluded.text, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, i.Date, i.Text, timeToString(i.UpdatedAt)); err != nil {
		return fmt.Errorf("upserting day incident: %w", err)
	}
	return nil
}
