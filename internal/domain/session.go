package domain

import (
	"strings"
	"time"
)

// WorkSession is an in-progress clock-in. At most one exists per employee.
type WorkSession struct {
	EmployeeID   string
	EmployeeName string
	StartTime    time.Time
	// ClientStartTime is the secondary sub-timer a client may set while the
	// session is open (e.g. when the employee starts serving a customer).
	ClientStartTime *time.Time
}

// Validate checks the identity fields required to open a session.
func (s *WorkSession) Validate() error {
	if strings.TrimSpace(s.EmployeeID) == "" {
		return NewValidationError("employee ID is required")
	}
	return nil
}

// Elapsed returns the time worked so far, never negative.
func (s *WorkSession) Elapsed(now time.Time) time.Duration {
	d := now.Sub(s.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// Complete converts the session into a completed record ending at end.
// The record is dated by end's calendar day in loc, so a session that spans
// midnight lands on the day it finished.
func (s *WorkSession) Complete(id string, end time.Time, loc *time.Location) *CompletedRecord {
	return &CompletedRecord{
		ID:              id,
		EmployeeID:      s.EmployeeID,
		EmployeeName:    s.EmployeeName,
		StartTime:       s.StartTime,
		EndTime:         end,
		DurationSeconds: s.Elapsed(end).Seconds(),
		Date:            DateOf(end, loc),
		Kind:            RecordSession,
		CreatedAt:       end.UTC(),
	}
}
