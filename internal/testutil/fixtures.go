package testutil

import (
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/google/uuid"
)

// RefDay is the calendar day fixtures default to.
var RefDay = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// At returns RefDay at h:m UTC.
func At(h, m int) time.Time {
	return RefDay.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

// Record options
type RecordOption func(*domain.CompletedRecord)

func WithRecordID(id string) RecordOption {
	return func(r *domain.CompletedRecord) {
		r.ID = id
	}
}

func WithEmployeeName(name string) RecordOption {
	return func(r *domain.CompletedRecord) {
		r.EmployeeName = name
	}
}

func WithLegacyGroups(n int) RecordOption {
	return func(r *domain.CompletedRecord) {
		r.Groups = n
	}
}

func WithRecordKind(k domain.RecordKind) RecordOption {
	return func(r *domain.CompletedRecord) {
		r.Kind = k
	}
}

func WithRecordDate(date string) RecordOption {
	return func(r *domain.CompletedRecord) {
		r.Date = date
	}
}

func WithArchivedOverride() RecordOption {
	return func(r *domain.CompletedRecord) {
		r.ArchivedOverride = true
	}
}

// NewTestRecord builds a session record from start to end, dated by end in UTC.
func NewTestRecord(employeeID string, start, end time.Time, opts ...RecordOption) *domain.CompletedRecord {
	r := &domain.CompletedRecord{
		ID:              uuid.New().String(),
		EmployeeID:      employeeID,
		EmployeeName:    employeeID,
		StartTime:       start,
		EndTime:         end,
		DurationSeconds: end.Sub(start).Seconds(),
		Date:            domain.DateOf(end, time.UTC),
		Kind:            domain.RecordSession,
		CreatedAt:       end.UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Session options
type SessionOption func(*domain.WorkSession)

func WithClientStart(t time.Time) SessionOption {
	return func(s *domain.WorkSession) {
		s.ClientStartTime = &t
	}
}

func WithSessionName(name string) SessionOption {
	return func(s *domain.WorkSession) {
		s.EmployeeName = name
	}
}

func NewTestSession(employeeID string, start time.Time, opts ...SessionOption) *domain.WorkSession {
	s := &domain.WorkSession{
		EmployeeID:   employeeID,
		EmployeeName: employeeID,
		StartTime:    start,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewTestGroups(employeeID, date string, std, jew, rec int) *domain.DailyGroups {
	return &domain.DailyGroups{
		EmployeeID: employeeID,
		Date:       date,
		Counts:     domain.GroupCount{Standard: std, Jewelry: jew, Recoverable: rec},
		UpdatedAt:  RefDay,
	}
}

// FixedClock is a settable clock for services that take a now func.
type FixedClock struct {
	T time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{T: t}
}

func (c *FixedClock) Now() time.Time {
	return c.T
}

func (c *FixedClock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}
