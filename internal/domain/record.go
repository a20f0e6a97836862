package domain

import (
	"strings"
	"time"
)

// CompletedRecord is a durable unit of worked time. Records are never edited
// in place: duration corrections append a RecordAdjustment carrying the signed
// delta, and Date is fixed at creation.
type CompletedRecord struct {
	ID              string
	EmployeeID      string
	EmployeeName    string
	StartTime       time.Time
	EndTime         time.Time
	DurationSeconds float64
	Date            string
	// Groups is the legacy scalar group count, superseded by GroupCount.
	Groups int
	Kind   RecordKind
	// AdjustsID links an adjustment to the record it corrects.
	AdjustsID string
	// ArchivedOverride marks a record written into an already-closed day.
	ArchivedOverride bool
	CreatedAt        time.Time
}

// IsInterval reports whether the record describes a span of wall-clock time.
// Adjustments only carry a duration delta.
func (r *CompletedRecord) IsInterval() bool {
	return r.Kind != RecordAdjustment
}

// Validate enforces the record invariants before it is persisted.
func (r *CompletedRecord) Validate() error {
	if strings.TrimSpace(r.EmployeeID) == "" {
		return NewValidationError("employee ID is required")
	}
	if err := ValidateDate(r.Date); err != nil {
		return err
	}
	if r.Groups < 0 {
		return NewValidationError("groups must not be negative, got %d", r.Groups)
	}
	if !ValidRecordKinds[r.Kind] {
		return NewValidationError("unknown record kind %q", r.Kind)
	}
	if r.Kind == RecordAdjustment {
		if r.AdjustsID == "" {
			return NewValidationError("adjustment must reference a record")
		}
		return nil
	}
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return NewValidationError("start and end times are required")
	}
	if r.EndTime.Before(r.StartTime) {
		return NewValidationError("end time %s is before start time %s",
			r.EndTime.Format(time.RFC3339), r.StartTime.Format(time.RFC3339))
	}
	if r.DurationSeconds < 0 {
		return NewValidationError("duration must not be negative")
	}
	return nil
}

// NewAdjustment builds the correction record that moves target's effective
// duration by delta seconds. It shares target's date and employee.
func NewAdjustment(id string, target *CompletedRecord, delta float64, now time.Time) *CompletedRecord {
	return &CompletedRecord{
		ID:              id,
		EmployeeID:      target.EmployeeID,
		EmployeeName:    target.EmployeeName,
		StartTime:       target.EndTime,
		EndTime:         target.EndTime,
		DurationSeconds: delta,
		Date:            target.Date,
		Kind:            RecordAdjustment,
		AdjustsID:       target.ID,
		CreatedAt:       now.UTC(),
	}
}

// EffectiveDuration returns target's duration after applying its adjustments.
func EffectiveDuration(target *CompletedRecord, adjustments []*CompletedRecord) float64 {
	total := target.DurationSeconds
	for _, a := range adjustments {
		if a.AdjustsID == target.ID {
			total += a.DurationSeconds
		}
	}
	return total
}
