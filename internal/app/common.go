package app

import (
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/stats"
)

// SessionView is an open clock-in as shown to clients.
type SessionView struct {
	EmployeeID      string     `json:"employeeId"`
	EmployeeName    string     `json:"employeeName"`
	StartTime       time.Time  `json:"startTime"`
	ClientStartTime *time.Time `json:"clientStartTime"`
	ElapsedSeconds  float64    `json:"elapsedSeconds"`
}

func NewSessionView(s *domain.WorkSession, now time.Time) SessionView {
	return SessionView{
		EmployeeID:      s.EmployeeID,
		EmployeeName:    s.EmployeeName,
		StartTime:       s.StartTime,
		ClientStartTime: s.ClientStartTime,
		ElapsedSeconds:  s.Elapsed(now).Seconds(),
	}
}

func NewSessionViews(sessions []*domain.WorkSession, now time.Time) []SessionView {
	out := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, NewSessionView(s, now))
	}
	return out
}

type RecordView struct {
	ID               string            `json:"id"`
	EmployeeID       string            `json:"employeeId"`
	EmployeeName     string            `json:"employeeName"`
	StartTime        time.Time         `json:"startTime"`
	EndTime          time.Time         `json:"endTime"`
	DurationSeconds  float64           `json:"durationSeconds"`
	Date             string            `json:"date"`
	Groups           int               `json:"groups,omitempty"`
	Kind             domain.RecordKind `json:"kind"`
	AdjustsID        string            `json:"adjustsId,omitempty"`
	ArchivedOverride bool              `json:"archivedOverride"`
	CreatedAt        time.Time         `json:"createdAt"`
}

func NewRecordView(r *domain.CompletedRecord) RecordView {
	return RecordView{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		DurationSeconds:  r.DurationSeconds,
		Date:             r.Date,
		Groups:           r.Groups,
		Kind:             r.Kind,
		AdjustsID:        r.AdjustsID,
		ArchivedOverride: r.ArchivedOverride,
		CreatedAt:        r.CreatedAt,
	}
}

func NewRecordViews(records []*domain.CompletedRecord) []RecordView {
	out := make([]RecordView, 0, len(records))
	for _, r := range records {
		out = append(out, NewRecordView(r))
	}
	return out
}

type GroupsView struct {
	EmployeeID string            `json:"employeeId"`
	Date       string            `json:"date"`
	Counts     domain.GroupCount `json:"counts"`
	Total      int               `json:"total"`
}

func NewGroupsView(employeeID, date string, g domain.GroupCount) GroupsView {
	return GroupsView{EmployeeID: employeeID, Date: date, Counts: g, Total: g.Total()}
}

type SnapshotView struct {
	Date          string              `json:"date"`
	TotalGroups   int                 `json:"totalGroups"`
	Users         []domain.ReportLine `json:"users"`
	Observation   string              `json:"observation"`
	MaxConcurrent int                 `json:"maxConcurrent"`
	ClosedAt      time.Time           `json:"closedAt"`
}

// NewSnapshotView decodes the stored users report.
func NewSnapshotView(s *domain.ClosedDaySnapshot) (SnapshotView, error) {
	lines, err := s.DecodeUsersReport()
	if err != nil {
		return SnapshotView{}, err
	}
	if lines == nil {
		lines = []domain.ReportLine{}
	}
	return SnapshotView{
		Date:          s.Date,
		TotalGroups:   s.TotalGroups,
		Users:         lines,
		Observation:   s.Observation,
		MaxConcurrent: s.MaxConcurrent,
		ClosedAt:      s.ClosedAt,
	}, nil
}

type EmployeeReportView struct {
	EmployeeID    string            `json:"employeeId"`
	EmployeeName  string            `json:"employeeName"`
	TotalSeconds  float64           `json:"totalSeconds"`
	Groups        domain.GroupCount `json:"groups"`
	GroupsPerHour float64           `json:"groupsPerHour"`
	ActiveDays    int               `json:"activeDays"`
	ActiveNow     bool              `json:"activeNow"`
}

type ShopReportView struct {
	ActiveShopSeconds float64           `json:"activeShopSeconds"`
	MaxConcurrent     int               `json:"maxConcurrent"`
	TotalGroups       domain.GroupCount `json:"totalGroups"`
	TotalSeconds      float64           `json:"totalSeconds"`
	GroupsPerHour     float64           `json:"groupsPerHour"`
}

type DayReportView struct {
	Date              string     `json:"date"`
	ActiveShopSeconds float64    `json:"activeShopSeconds"`
	MaxConcurrent     int        `json:"maxConcurrent"`
	PeakAt            *time.Time `json:"peakAt,omitempty"`
	TotalGroups       int        `json:"totalGroups"`
}

type ReportView struct {
	From      string               `json:"from"`
	To        string               `json:"to"`
	Employees []EmployeeReportView `json:"employees"`
	Shop      ShopReportView       `json:"shop"`
	Days      []DayReportView      `json:"days"`
}

func NewReportView(r *stats.Result) ReportView {
	v := ReportView{
		From:      r.From,
		To:        r.To,
		Employees: make([]EmployeeReportView, 0, len(r.Employees)),
		Days:      make([]DayReportView, 0, len(r.Days)),
		Shop: ShopReportView{
			ActiveShopSeconds: r.Shop.ActiveShopSeconds,
			MaxConcurrent:     r.Shop.MaxConcurrent,
			TotalGroups:       r.Shop.TotalGroups,
			TotalSeconds:      r.Shop.TotalSeconds,
			GroupsPerHour:     r.Shop.GroupsPerHour,
		},
	}
	for _, e := range r.Employees {
		v.Employees = append(v.Employees, EmployeeReportView{
			EmployeeID:    e.EmployeeID,
			EmployeeName:  e.EmployeeName,
			TotalSeconds:  e.TotalSeconds,
			Groups:        e.Groups,
			GroupsPerHour: e.GroupsPerHour,
			ActiveDays:    e.ActiveDays,
			ActiveNow:     e.ActiveNow,
		})
	}
	for _, d := range r.Days {
		dv := DayReportView{
			Date:              d.Date,
			ActiveShopSeconds: d.ActiveShopSeconds,
			MaxConcurrent:     d.MaxConcurrent,
			TotalGroups:       d.TotalGroups,
		}
		if !d.PeakAt.IsZero() {
			peak := d.PeakAt
			dv.PeakAt = &peak
		}
		v.Days = append(v.Days, dv)
	}
	return v
}

// ErrorView is the body of every failed request.
type ErrorView struct {
	Code    domain.ErrorCode `json:"code"`
	Message string           `json:"message"`
	Date    string           `json:"date,omitempty"`
}
