package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row. It carries the
// domain NOT_FOUND code so callers can surface it unchanged.
var ErrNotFound = domain.ErrNotFound

// RecordFilter narrows record listings. Empty fields match everything.
type RecordFilter struct {
	From       string
	To         string
	EmployeeID string
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.WorkSession) error
	Get(ctx context.Context, employeeID string) (*domain.WorkSession, error)
	List(ctx context.Context) ([]*domain.WorkSession, error)
	SetClientStart(ctx context.Context, employeeID string, at *time.Time) error
	Delete(ctx context.Context, employeeID string) error
}

type RecordRepo interface {
	Create(ctx context.Context, r *domain.CompletedRecord) error
	GetByID(ctx context.Context, id string) (*domain.CompletedRecord, error)
	List(ctx context.Context, f RecordFilter) ([]*domain.CompletedRecord, error)
	ListAdjustments(ctx context.Context, targetID string) ([]*domain.CompletedRecord, error)
	Delete(ctx context.Context, id string) error
}

type GroupRepo interface {
	Get(ctx context.Context, employeeID, date string) (*domain.DailyGroups, error)
	ListRange(ctx context.Context, from, to string) ([]*domain.DailyGroups, error)
	Upsert(ctx context.Context, g *domain.DailyGroups) error
}

type ClosedDayRepo interface {
	IsClosed(ctx context.Context, date string) (bool, error)
	// Close marks date closed and reports whether it was open before.
	Close(ctx context.Context, date string, at time.Time) (bool, error)
	// Reopen clears the closed mark and reports whether one existed.
	Reopen(ctx context.Context, date string) (bool, error)
	List(ctx context.Context) ([]string, error)
}

type SnapshotRepo interface {
	Upsert(ctx context.Context, s *domain.ClosedDaySnapshot) error
	Get(ctx context.Context, date string) (*domain.ClosedDaySnapshot, error)
}

type IncidentRepo interface {
	Get(ctx context.Context, date string) (*domain.DayIncident, error)
	Upsert(ctx context.Context, i *domain.DayIncident) error
}
