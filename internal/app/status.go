package app

import (
	"context"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
)

// DashboardView is today's live state: who is clocked in, the running day
// report and whether the day is already closed.
type DashboardView struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Date        string          `json:"date"`
	State       domain.DayState `json:"state"`
	Active      []SessionView   `json:"active"`
	Report      ReportView      `json:"report"`
	Incident    string          `json:"incident,omitempty"`
}

func (s *Shop) Dashboard(ctx context.Context) (*DashboardView, error) {
	now := s.Now()
	date := domain.DateOf(now, s.Location)

	state, err := s.Days.State(ctx, date)
	if err != nil {
		return nil, err
	}
	active, err := s.Sessions.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	report, err := s.Reports.Day(ctx, date)
	if err != nil {
		return nil, err
	}
	incident, err := s.Days.GetIncident(ctx, date)
	if err != nil {
		return nil, err
	}

	return &DashboardView{
		GeneratedAt: now,
		Date:        date,
		State:       state,
		Active:      NewSessionViews(active, now),
		Report:      NewReportView(report),
		Incident:    incident,
	}, nil
}
