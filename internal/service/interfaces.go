package service

import (
	"context"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/stats"
)

// SessionLedger owns clock-in/clock-out. Start and End are safe to retry:
// a second Start returns the open session, a second End reports NOT_FOUND.
type SessionLedger interface {
	GetActive(ctx context.Context) ([]*domain.WorkSession, error)
	Start(ctx context.Context, employeeID, employeeName string) (*domain.WorkSession, error)
	End(ctx context.Context, employeeID string) (*domain.CompletedRecord, error)
	UpdateClientStart(ctx context.Context, employeeID string, at *time.Time) (*domain.WorkSession, error)
}

// RecordQuery filters ListRecords. Empty fields match everything.
type RecordQuery struct {
	From       string
	To         string
	EmployeeID string
}

type RecordService interface {
	List(ctx context.Context, q RecordQuery) ([]*domain.CompletedRecord, error)
	Get(ctx context.Context, id string) (*domain.CompletedRecord, error)
	// Add stores a manual entry. override allows writing into a closed day;
	// the stored record is then flagged ArchivedOverride.
	Add(ctx context.Context, r *domain.CompletedRecord, override bool) (*domain.CompletedRecord, error)
	// EditDuration appends an adjustment so the record's effective duration
	// becomes newTotalSeconds. It returns the adjustment, or the target
	// unchanged when no correction was needed.
	EditDuration(ctx context.Context, id string, newTotalSeconds float64, override bool) (*domain.CompletedRecord, error)
	Delete(ctx context.Context, id string) error
}

type GroupService interface {
	Get(ctx context.Context, employeeID, date string) (domain.GroupCount, error)
	// Patch replaces the provided fields and keeps the others.
	Patch(ctx context.Context, employeeID, date string, patch domain.GroupPatch) (domain.GroupCount, error)
	// Add adds delta to the stored counts. override allows a closed day.
	Add(ctx context.Context, employeeID, date string, delta domain.GroupPatch, override bool) (domain.GroupCount, error)
}

// DayService is the open/closed state machine for calendar days.
type DayService interface {
	ListClosed(ctx context.Context) ([]string, error)
	State(ctx context.Context, date string) (domain.DayState, error)
	Close(ctx context.Context, date, observation string) (*domain.ClosedDaySnapshot, error)
	Reopen(ctx context.Context, date string) error
	GetSnapshot(ctx context.Context, date string) (*domain.ClosedDaySnapshot, error)
	GetIncident(ctx context.Context, date string) (string, error)
	SetIncident(ctx context.Context, date, text string) error
}

type ReportService interface {
	Day(ctx context.Context, date string) (*stats.Result, error)
	Range(ctx context.Context, from, to string) (*stats.Result, error)
	Month(ctx context.Context, month string) (*stats.Result, error)
}
