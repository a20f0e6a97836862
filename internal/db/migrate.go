package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillRecordCreatedAt(db); err != nil {
		return fmt.Errorf("backfilling record created_at: %w", err)
	}
	return nil
}

// migrateBackfillRecordCreatedAt stamps records written before created_at
// existed with their end time. Idempotent: only empty values are touched.
func migrateBackfillRecordCreatedAt(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM work_records WHERE created_at = ''`).Scan(&count); err != nil {
		return fmt.Errorf("checking work_records created_at: %w", err)
	}
	if count == 0 {
		return nil
	}

	if _, err := db.ExecContext(ctx,
		`UPDATE work_records SET created_at = end_time WHERE created_at = ''`); err != nil {
		return fmt.Errorf("updating work_records created_at: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS work_sessions (
		employee_id   TEXT PRIMARY KEY,
		employee_name TEXT NOT NULL DEFAULT '',
		start_time    TEXT NOT NULL
	)`,
	`ALTER TABLE work_sessions ADD COLUMN client_start_time TEXT`,

	`CREATE TABLE IF NOT EXISTS work_records (
		id               TEXT PRIMARY KEY,
		employee_id      TEXT NOT NULL,
		employee_name    TEXT NOT NULL DEFAULT '',
		start_time       TEXT NOT NULL,
		end_time         TEXT NOT NULL,
		duration_seconds REAL NOT NULL DEFAULT 0,
		date             TEXT NOT NULL,
		legacy_groups    INTEGER NOT NULL DEFAULT 0 CHECK(legacy_groups >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_records_date ON work_records(date)`,
	`CREATE INDEX IF NOT EXISTS idx_records_employee_date ON work_records(employee_id, date)`,
	`ALTER TABLE work_records ADD COLUMN kind TEXT NOT NULL DEFAULT 'session'
		CHECK(kind IN ('session','manual','adjustment'))`,
	`ALTER TABLE work_records ADD COLUMN adjusts_id TEXT REFERENCES work_records(id) ON DELETE CASCADE`,
	`ALTER TABLE work_records ADD COLUMN archived_override INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE work_records ADD COLUMN created_at TEXT NOT NULL DEFAULT ''`,
	`CREATE INDEX IF NOT EXISTS idx_records_adjusts ON work_records(adjusts_id)`,

	// counts holds either a JSON object or a legacy bare integer.
	`CREATE TABLE IF NOT EXISTS group_counts (
		employee_id TEXT NOT NULL,
		date        TEXT NOT NULL,
		counts      TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (employee_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_group_counts_date ON group_counts(date)`,

	`CREATE TABLE IF NOT EXISTS closed_days (
		date      TEXT PRIMARY KEY,
		closed_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS day_snapshots (
		date           TEXT PRIMARY KEY,
		total_groups   INTEGER NOT NULL DEFAULT 0,
		users_report   TEXT NOT NULL DEFAULT '[]',
		observation    TEXT NOT NULL DEFAULT '',
		max_concurrent INTEGER NOT NULL DEFAULT 0,
		closed_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS day_incidents (
		date       TEXT PRIMARY KEY,
		text       TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	)`,
}
