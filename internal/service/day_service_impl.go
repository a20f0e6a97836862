package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/stats"
)

type dayService struct {
	closed    repository.ClosedDayRepo
	snapshots repository.SnapshotRepo
	incidents repository.IncidentRepo
	uow       db.UnitOfWork
	locks     *KeyedLocks
	opts      options
}

func NewDayService(
	closed repository.ClosedDayRepo,
	snapshots repository.SnapshotRepo,
	incidents repository.IncidentRepo,
	uow db.UnitOfWork,
	locks *KeyedLocks,
	opts ...Option,
) DayService {
	return &dayService{
		closed:    closed,
		snapshots: snapshots,
		incidents: incidents,
		uow:       uow,
		locks:     locks,
		opts:      newOptions(opts),
	}
}

func (s *dayService) ListClosed(ctx context.Context) ([]string, error) {
	dates, err := s.closed.List(ctx)
	if err != nil {
		return nil, err
	}
	if dates == nil {
		dates = []string{}
	}
	return dates, nil
}

func (s *dayService) State(ctx context.Context, date string) (domain.DayState, error) {
	if err := domain.ValidateDate(date); err != nil {
		return "", err
	}
	closed, err := s.closed.IsClosed(ctx, date)
	if err != nil {
		return "", err
	}
	if closed {
		return domain.DayClosed, nil
	}
	return domain.DayOpen, nil
}

// Close archives date. Closing an already closed day returns the stored
// snapshot without recomputing it.
func (s *dayService) Close(ctx context.Context, date, observation string) (snapshot *domain.ClosedDaySnapshot, err error) {
	fields := map[string]any{"date": date}
	defer observe(ctx, s.opts.observer, "close-day", time.Now(), fields, &err)

	if err = domain.ValidateDate(date); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(dateKey(date))
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txClosed := repository.NewSQLiteClosedDayRepo(tx)
		txSnapshots := repository.NewSQLiteSnapshotRepo(tx)

		isClosed, err := txClosed.IsClosed(ctx, date)
		if err != nil {
			return err
		}
		if isClosed {
			existing, err := txSnapshots.Get(ctx, date)
			if err == nil {
				fields["already_closed"] = true
				snapshot = existing
				return nil
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			// Closed without a snapshot: write one now.
		}

		snap, err := s.buildSnapshot(ctx, tx, date, observation)
		if err != nil {
			return err
		}
		if err := txSnapshots.Upsert(ctx, snap); err != nil {
			return err
		}
		if _, err := txClosed.Close(ctx, date, snap.ClosedAt); err != nil {
			return err
		}
		snapshot = snap
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["total_groups"] = snapshot.TotalGroups
	fields["max_concurrent"] = snapshot.MaxConcurrent
	return snapshot, nil
}

func (s *dayService) buildSnapshot(ctx context.Context, tx db.DBTX, date, observation string) (*domain.ClosedDaySnapshot, error) {
	now := s.opts.now()
	src := statsSource{
		records:  repository.NewSQLiteRecordRepo(tx),
		groups:   repository.NewSQLiteGroupRepo(tx),
		sessions: repository.NewSQLiteSessionRepo(tx),
	}
	in, err := src.load(ctx, []string{date}, s.opts.today(), now)
	if err != nil {
		return nil, err
	}
	res := stats.Aggregate(in)

	report, err := domain.EncodeUsersReport(stats.ReportLines(res.Employees))
	if err != nil {
		return nil, err
	}

	observation = strings.TrimSpace(observation)
	if observation == "" {
		incident, err := repository.NewSQLiteIncidentRepo(tx).Get(ctx, date)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if incident != nil {
			observation = incident.Text
		}
	}

	return &domain.ClosedDaySnapshot{
		Date:          date,
		TotalGroups:   res.Shop.TotalGroups.Total(),
		UsersReport:   report,
		Observation:   observation,
		MaxConcurrent: res.Shop.MaxConcurrent,
		ClosedAt:      now.UTC().Truncate(time.Second),
	}, nil
}

// Reopen clears the closed mark; the snapshot stays as history.
func (s *dayService) Reopen(ctx context.Context, date string) (err error) {
	fields := map[string]any{"date": date}
	defer observe(ctx, s.opts.observer, "reopen-day", time.Now(), fields, &err)

	if err = domain.ValidateDate(date); err != nil {
		return err
	}

	unlock := s.locks.Lock(dateKey(date))
	defer unlock()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		changed, err := repository.NewSQLiteClosedDayRepo(tx).Reopen(ctx, date)
		if err != nil {
			return err
		}
		if !changed {
			return domain.NewInvalidStateError(date, "day %s is not closed", date)
		}
		return nil
	})
}

func (s *dayService) GetSnapshot(ctx context.Context, date string) (*domain.ClosedDaySnapshot, error) {
	if err := domain.ValidateDate(date); err != nil {
		return nil, err
	}
	snap, err := s.snapshots.Get(ctx, date)
	if err != nil {
		return nil, notFound(err, "no snapshot for %s", date)
	}
	return snap, nil
}

// GetIncident returns the day's note, or "" when none was written.
func (s *dayService) GetIncident(ctx context.Context, date string) (string, error) {
	if err := domain.ValidateDate(date); err != nil {
		return "", err
	}
	incident, err := s.incidents.Get(ctx, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return incident.Text, nil
}

func (s *dayService) SetIncident(ctx context.Context, date, text string) (err error) {
	fields := map[string]any{"date": date, "length": len(text)}
	defer observe(ctx, s.opts.observer, "set-incident", time.Now(), fields, &err)

	if err = domain.ValidateDate(date); err != nil {
		return err
	}

	unlock := s.locks.Lock(dateKey(date))
	defer unlock()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := guardOpen(ctx, repository.NewSQLiteClosedDayRepo(tx), date, false); err != nil {
			return err
		}
		return repository.NewSQLiteIncidentRepo(tx).Upsert(ctx, &domain.DayIncident{
			Date:      date,
			Text:      text,
			UpdatedAt: s.opts.now().UTC(),
		})
	})
}
