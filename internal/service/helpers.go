package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/stats"
)

// notFound rewrites a repository miss as a domain error with a readable
// message; other errors pass through.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewNotFoundError(format, args...)
	}
	return err
}

// guardOpen rejects a write to a closed date unless override is set. It
// reports whether the date was closed so callers can flag the write.
func guardOpen(ctx context.Context, closed repository.ClosedDayRepo, date string, override bool) (bool, error) {
	isClosed, err := closed.IsClosed(ctx, date)
	if err != nil {
		return false, err
	}
	if isClosed && !override {
		return true, domain.NewDayClosedError(date)
	}
	return isClosed, nil
}

func requireEmployee(employeeID string) error {
	if strings.TrimSpace(employeeID) == "" {
		return domain.NewValidationError("employee ID is required")
	}
	return nil
}

// statsSource is the read side the aggregator draws from. Close passes
// tx-scoped repositories so the snapshot sees the same state it locks.
type statsSource struct {
	records  repository.RecordRepo
	groups   repository.GroupRepo
	sessions repository.SessionRepo
}

func (s statsSource) load(ctx context.Context, dates []string, today string, now time.Time) (stats.Input, error) {
	in := stats.Input{Dates: dates, Today: today, Now: now}
	if len(dates) == 0 {
		return in, nil
	}
	from, to := dates[0], dates[len(dates)-1]

	var err error
	if in.Records, err = s.records.List(ctx, repository.RecordFilter{From: from, To: to}); err != nil {
		return in, err
	}
	if in.Groups, err = s.groups.ListRange(ctx, from, to); err != nil {
		return in, err
	}
	if today >= from && today <= to {
		if in.Active, err = s.sessions.List(ctx); err != nil {
			return in, err
		}
	}
	return in, nil
}

// currentGroups returns the stored counts for an employee's day, falling
// back to the legacy per-record group sum when nothing is stored.
func currentGroups(ctx context.Context, groups repository.GroupRepo, records repository.RecordRepo, employeeID, date string) (domain.GroupCount, error) {
	g, err := groups.Get(ctx, employeeID, date)
	if err == nil {
		return g.Counts, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.GroupCount{}, err
	}

	recs, err := records.List(ctx, repository.RecordFilter{From: date, To: date, EmployeeID: employeeID})
	if err != nil {
		return domain.GroupCount{}, err
	}
	var legacy int
	for _, r := range recs {
		if r.IsInterval() {
			legacy += r.Groups
		}
	}
	return domain.GroupCount{Standard: legacy}, nil
}
