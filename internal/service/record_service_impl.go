package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/google/uuid"
)

type recordService struct {
	records repository.RecordRepo
	uow     db.UnitOfWork
	locks   *KeyedLocks
	opts    options
}

func NewRecordService(records repository.RecordRepo, uow db.UnitOfWork, locks *KeyedLocks, opts ...Option) RecordService {
	return &recordService{records: records, uow: uow, locks: locks, opts: newOptions(opts)}
}

func (s *recordService) List(ctx context.Context, q RecordQuery) ([]*domain.CompletedRecord, error) {
	for _, d := range []string{q.From, q.To} {
		if d == "" {
			continue
		}
		if err := domain.ValidateDate(d); err != nil {
			return nil, err
		}
	}
	if q.From != "" && q.To != "" && q.From > q.To {
		return nil, domain.NewValidationError("range start %s is after end %s", q.From, q.To)
	}
	return s.records.List(ctx, repository.RecordFilter{From: q.From, To: q.To, EmployeeID: q.EmployeeID})
}

func (s *recordService) Get(ctx context.Context, id string) (*domain.CompletedRecord, error) {
	r, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "record %s not found", id)
	}
	return r, nil
}

func (s *recordService) Add(ctx context.Context, r *domain.CompletedRecord, override bool) (record *domain.CompletedRecord, err error) {
	fields := map[string]any{"override": override}
	defer observe(ctx, s.opts.observer, "add-record", time.Now(), fields, &err)

	if r == nil {
		return nil, domain.NewValidationError("record is required")
	}
	rec := *r
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	switch rec.Kind {
	case "":
		rec.Kind = domain.RecordManual
	case domain.RecordAdjustment:
		return nil, domain.NewValidationError("adjustments are created by editing a record's duration")
	}
	rec.EmployeeID = strings.TrimSpace(rec.EmployeeID)
	rec.StartTime = rec.StartTime.UTC().Truncate(time.Second)
	rec.EndTime = rec.EndTime.UTC().Truncate(time.Second)
	if rec.DurationSeconds == 0 {
		rec.DurationSeconds = math.Max(0, rec.EndTime.Sub(rec.StartTime).Seconds())
	}
	if !rec.StartTime.IsZero() {
		derived := domain.DateOf(rec.StartTime, s.opts.loc)
		if rec.Date != "" && rec.Date != derived {
			return nil, domain.NewValidationError("date %s does not match start time (%s)", rec.Date, derived)
		}
		rec.Date = derived
	}
	if rec.EmployeeName == "" {
		rec.EmployeeName = rec.EmployeeID
	}
	rec.AdjustsID = ""
	rec.ArchivedOverride = false
	rec.CreatedAt = s.opts.now().UTC()
	if err = rec.Validate(); err != nil {
		return nil, err
	}
	fields["employee_id"] = rec.EmployeeID
	fields["date"] = rec.Date

	unlock := s.locks.Lock(dateKey(rec.Date))
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		wasClosed, err := guardOpen(ctx, repository.NewSQLiteClosedDayRepo(tx), rec.Date, override)
		if err != nil {
			return err
		}
		rec.ArchivedOverride = wasClosed
		return repository.NewSQLiteRecordRepo(tx).Create(ctx, &rec)
	})
	if err != nil {
		return nil, err
	}
	fields["archived_override"] = rec.ArchivedOverride
	return &rec, nil
}

func (s *recordService) EditDuration(ctx context.Context, id string, newTotalSeconds float64, override bool) (result *domain.CompletedRecord, err error) {
	fields := map[string]any{"record_id": id, "new_total_seconds": newTotalSeconds, "override": override}
	defer observe(ctx, s.opts.observer, "edit-record-duration", time.Now(), fields, &err)

	if newTotalSeconds < 0 || math.IsNaN(newTotalSeconds) || math.IsInf(newTotalSeconds, 0) {
		return nil, domain.NewValidationError("duration must be a non-negative number of seconds")
	}

	// The date never changes, so it can be read before taking its lock.
	target, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "record %s not found", id)
	}
	fields["date"] = target.Date

	unlock := s.locks.Lock(dateKey(target.Date))
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRecords := repository.NewSQLiteRecordRepo(tx)

		target, err := txRecords.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "record %s not found", id)
		}
		if target.Kind == domain.RecordAdjustment {
			return domain.NewValidationError("record %s is an adjustment; edit the record it adjusts", id)
		}
		wasClosed, err := guardOpen(ctx, repository.NewSQLiteClosedDayRepo(tx), target.Date, override)
		if err != nil {
			return err
		}

		adjustments, err := txRecords.ListAdjustments(ctx, id)
		if err != nil {
			return err
		}
		delta := newTotalSeconds - domain.EffectiveDuration(target, adjustments)
		fields["delta_seconds"] = delta
		if delta == 0 {
			result = target
			return nil
		}

		adj := domain.NewAdjustment(uuid.New().String(), target, delta, s.opts.now())
		adj.ArchivedOverride = wasClosed
		if err := txRecords.Create(ctx, adj); err != nil {
			return err
		}
		result = adj
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *recordService) Delete(ctx context.Context, id string) (err error) {
	fields := map[string]any{"record_id": id}
	defer observe(ctx, s.opts.observer, "delete-record", time.Now(), fields, &err)

	target, err := s.records.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "record %s not found", id)
	}
	fields["date"] = target.Date

	unlock := s.locks.Lock(dateKey(target.Date))
	defer unlock()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := guardOpen(ctx, repository.NewSQLiteClosedDayRepo(tx), target.Date, false); err != nil {
			return err
		}
		if err := repository.NewSQLiteRecordRepo(tx).Delete(ctx, id); err != nil {
			return notFound(err, "record %s not found", id)
		}
		return nil
	})
}
