package service

import (
	"context"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/stats"
)

// maxRangeDays bounds a range report.
const maxRangeDays = 366

type reportService struct {
	src  statsSource
	opts options
}

func NewReportService(records repository.RecordRepo, groups repository.GroupRepo, sessions repository.SessionRepo, opts ...Option) ReportService {
	return &reportService{
		src:  statsSource{records: records, groups: groups, sessions: sessions},
		opts: newOptions(opts),
	}
}

func (s *reportService) Day(ctx context.Context, date string) (*stats.Result, error) {
	return s.Range(ctx, date, date)
}

func (s *reportService) Range(ctx context.Context, from, to string) (*stats.Result, error) {
	dates, err := domain.DatesInRange(from, to)
	if err != nil {
		return nil, err
	}
	if len(dates) > maxRangeDays {
		return nil, domain.NewValidationError("range %s..%s spans %d days; the limit is %d", from, to, len(dates), maxRangeDays)
	}

	in, err := s.src.load(ctx, dates, s.opts.today(), s.opts.now())
	if err != nil {
		return nil, err
	}
	res := stats.Aggregate(in)
	return &res, nil
}

func (s *reportService) Month(ctx context.Context, month string) (*stats.Result, error) {
	from, to, err := domain.MonthRange(month)
	if err != nil {
		return nil, err
	}
	return s.Range(ctx, from, to)
}
