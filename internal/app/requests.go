package app

import (
	"encoding/json"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
)

type StartSessionRequest struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
}

// ClientStartRequest sets or, with a null timestamp, clears the sub-timer.
type ClientStartRequest struct {
	Timestamp *time.Time `json:"timestamp"`
}

type AddRecordRequest struct {
	EmployeeID      string    `json:"employeeId"`
	EmployeeName    string    `json:"employeeName"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationSeconds *float64  `json:"durationSeconds"`
	Date            string    `json:"date"`
	Groups          int       `json:"groups"`
	Override        bool      `json:"override"`
}

// Record converts the request; a nil duration is derived from the interval.
func (r AddRecordRequest) Record() *domain.CompletedRecord {
	rec := &domain.CompletedRecord{
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Date:         r.Date,
		Groups:       r.Groups,
		Kind:         domain.RecordManual,
	}
	if r.DurationSeconds != nil {
		rec.DurationSeconds = *r.DurationSeconds
	}
	return rec
}

type EditDurationRequest struct {
	DurationSeconds *float64 `json:"durationSeconds"`
	Override        bool     `json:"override"`
}

func (r EditDurationRequest) Validate() error {
	if r.DurationSeconds == nil {
		return domain.NewValidationError("durationSeconds is required")
	}
	return nil
}

// GroupWriteRequest carries a partial count in any accepted shape (a bare
// legacy number or an object naming some categories).
type GroupWriteRequest struct {
	Mode     domain.GroupMergeMode `json:"mode"`
	Counts   json.RawMessage       `json:"counts"`
	Override bool                  `json:"override"`
}

func (r GroupWriteRequest) Patch() (domain.GroupPatch, error) {
	switch r.Mode {
	case "", domain.MergeReplace, domain.MergeAdd:
	default:
		return domain.GroupPatch{}, domain.NewValidationError("unknown group mode %q (want %q or %q)", r.Mode, domain.MergeReplace, domain.MergeAdd)
	}
	p, err := domain.ParseGroupPatch(r.Counts)
	if err != nil {
		return domain.GroupPatch{}, err
	}
	if p.IsEmpty() {
		return domain.GroupPatch{}, domain.NewValidationError("no group counts given")
	}
	return p, nil
}

type CloseDayRequest struct {
	Observation string `json:"observation"`
}

type IncidentRequest struct {
	Text string `json:"text"`
}

// ConfirmRequest guards destructive operations.
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

// RequireConfirmation rejects a destructive request that was not confirmed.
func RequireConfirmation(confirmed bool) error {
	if !confirmed {
		return domain.NewValidationError("confirmation required")
	}
	return nil
}
