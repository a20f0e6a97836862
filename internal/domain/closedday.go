package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ClosedDaySnapshot archives a day's results at the moment it was closed.
// The snapshot survives a reopen and is replaced by the next close.
type ClosedDaySnapshot struct {
	Date          string
	TotalGroups   int
	UsersReport   string
	Observation   string
	MaxConcurrent int
	ClosedAt      time.Time
}

// ReportLine is one employee's row inside a snapshot's users report.
type ReportLine struct {
	EmployeeID    string     `json:"employeeId"`
	EmployeeName  string     `json:"employeeName"`
	TotalSeconds  float64    `json:"totalSeconds"`
	Groups        GroupCount `json:"groups"`
	GroupsPerHour float64    `json:"groupsPerHour"`
}

// EncodeUsersReport serializes report lines for storage in a snapshot.
func EncodeUsersReport(lines []ReportLine) (string, error) {
	if lines == nil {
		lines = []ReportLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("encoding users report: %w", err)
	}
	return string(data), nil
}

// DecodeUsersReport parses a snapshot's stored users report.
func (s *ClosedDaySnapshot) DecodeUsersReport() ([]ReportLine, error) {
	if s.UsersReport == "" {
		return nil, nil
	}
	var lines []ReportLine
	if err := json.Unmarshal([]byte(s.UsersReport), &lines); err != nil {
		return nil, fmt.Errorf("decoding users report for %s: %w", s.Date, err)
	}
	return lines, nil
}

// DayIncident is a free-text note attached to a date.
type DayIncident struct {
	Date      string
	Text      string
	UpdatedAt time.Time
}
