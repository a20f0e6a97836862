package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
)

// SQLiteRecordRepo stores completed records and their adjustments.
type SQLiteRecordRepo struct {
	db db.DBTX
}

func NewSQLiteRecordRepo(conn db.DBTX) *SQLiteRecordRepo {
	return &SQLiteRecordRepo{db: conn}
}

const recordColumns = `id, employee_id, employee_name, start_time, end_time, duration_seconds,
	date, legacy_groups, kind, adjusts_id, archived_override, created_at`

func (r *SQLiteRecordRepo) Create(ctx context.Context, rec *domain.CompletedRecord) error {
	query := `INSERT INTO work_records (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.EmployeeName,
		timeToString(rec.StartTime),
		timeToString(rec.EndTime),
		rec.DurationSeconds,
		rec.Date,
		rec.Groups,
		string(rec.Kind),
		nullableString(rec.AdjustsID),
		boolToInt(rec.ArchivedOverride),
		timeToString(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting work record: %w", err)
	}
	return nil
}

func (r *SQLiteRecordRepo) GetByID(ctx context.Context, id string) (*domain.CompletedRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM work_records WHERE id = ?`
	return r.scanRecord(r.db.QueryRowContext(ctx, query, id))
}

// List returns records matching f ordered by date, then start time.
func (r *SQLiteRecordRepo) List(ctx context.Context, f RecordFilter) ([]*domain.CompletedRecord, error) {
	var where []string
	var args []any
	if f.From != "" {
		where = append(where, "date >= ?")
		args = append(args, f.From)
	}
	if f.To != "" {
		where = append(where, "date <= ?")
		args = append(args, f.To)
	}
	if f.EmployeeID != "" {
		where = append(where, "employee_id = ?")
		args = append(args, f.EmployeeID)
	}

	query := `SELECT ` + recordColumns + ` FROM work_records`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date, start_time, created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing work records: %w", err)
	}
	defer rows.Close()
	return r.scanRecords(rows)
}

func (r *SQLiteRecordRepo) ListAdjustments(ctx context.Context, targetID string) ([]*domain.CompletedRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM work_records
		WHERE adjusts_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, targetID)
	if err != nil {
		return nil, fmt.Errorf("listing adjustments: %w", err)
	}
	defer rows.Close()
	return r.scanRecords(rows)
}

// Delete removes a record. Its adjustments go with it via ON DELETE CASCADE.
func (r *SQLiteRecordRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM work_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("work record %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteRecordRepo) scanRecord(row rowScanner) (*domain.CompletedRecord, error) {
	var rec domain.CompletedRecord
	var startStr, endStr, kind, createdStr string
	var adjustsID sql.NullString
	var override int

	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &startStr, &endStr, &rec.DurationSeconds,
		&rec.Date, &rec.Groups, &kind, &adjustsID, &override, &createdStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work record: %w", err)
	}

	rec.Kind = domain.RecordKind(kind)
	rec.AdjustsID = adjustsID.String
	rec.ArchivedOverride = intToBool(override)
	return r.populateRecord(&rec, startStr, endStr, createdStr)
}

func (r *SQLiteRecordRepo) scanRecords(rows *sql.Rows) ([]*domain.CompletedRecord, error) {
	var records []*domain.CompletedRecord
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work records: %w", err)
	}
	return records, nil
}

// populateRecord fills in parsed time fields after scanning raw strings.
func (r *SQLiteRecordRepo) populateRecord(rec *domain.CompletedRecord, startStr, endStr, createdStr string) (*domain.CompletedRecord, error) {
	var err error
	if rec.StartTime, err = time.Parse(time.RFC3339, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if rec.EndTime, err = time.Parse(time.RFC3339, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_time: %w", err)
	}
	if createdStr == "" {
		rec.CreatedAt = rec.EndTime
		return rec, nil
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return rec, nil
}
