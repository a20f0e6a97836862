package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/google/uuid"
)

type sessionLedger struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	locks    *KeyedLocks
	opts     options
}

func NewSessionLedger(sessions repository.SessionRepo, uow db.UnitOfWork, locks *KeyedLocks, opts ...Option) SessionLedger {
	return &sessionLedger{sessions: sessions, uow: uow, locks: locks, opts: newOptions(opts)}
}

func (s *sessionLedger) GetActive(ctx context.Context) ([]*domain.WorkSession, error) {
	return s.sessions.List(ctx)
}

func (s *sessionLedger) Start(ctx context.Context, employeeID, employeeName string) (session *domain.WorkSession, err error) {
	fields := map[string]any{"employee_id": employeeID}
	defer observe(ctx, s.opts.observer, "start-session", time.Now(), fields, &err)

	candidate := &domain.WorkSession{
		EmployeeID:   strings.TrimSpace(employeeID),
		EmployeeName: strings.TrimSpace(employeeName),
		StartTime:    s.opts.now().UTC().Truncate(time.Second),
	}
	if err = candidate.Validate(); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(employeeKey(candidate.EmployeeID))
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		existing, err := txSessions.Get(ctx, candidate.EmployeeID)
		if err == nil {
			// A retried clock-in gets the session that is already open.
			fields["existing"] = true
			session = existing
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if err := txSessions.Create(ctx, candidate); err != nil {
			return err
		}
		session = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionLedger) End(ctx context.Context, employeeID string) (record *domain.CompletedRecord, err error) {
	fields := map[string]any{"employee_id": employeeID}
	defer observe(ctx, s.opts.observer, "end-session", time.Now(), fields, &err)

	if err = requireEmployee(employeeID); err != nil {
		return nil, err
	}

	unlockEmployee := s.locks.Lock(employeeKey(employeeID))
	defer unlockEmployee()

	end := s.opts.now().UTC().Truncate(time.Second)
	date := domain.DateOf(end, s.opts.loc)
	fields["date"] = date

	unlockDate := s.locks.Lock(dateKey(date))
	defer unlockDate()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txRecords := repository.NewSQLiteRecordRepo(tx)

		session, err := txSessions.Get(ctx, employeeID)
		if err != nil {
			return notFound(err, "no open session for employee %s", employeeID)
		}
		if _, err := guardOpen(ctx, repository.NewSQLiteClosedDayRepo(tx), date, false); err != nil {
			return err
		}

		record = session.Complete(uuid.New().String(), end, s.opts.loc)
		if err := record.Validate(); err != nil {
			return err
		}
		if err := txRecords.Create(ctx, record); err != nil {
			return err
		}
		return txSessions.Delete(ctx, employeeID)
	})
	if err != nil {
		return nil, err
	}
	fields["duration_seconds"] = record.DurationSeconds
	return record, nil
}

func (s *sessionLedger) UpdateClientStart(ctx context.Context, employeeID string, at *time.Time) (session *domain.WorkSession, err error) {
	fields := map[string]any{"employee_id": employeeID, "cleared": at == nil}
	defer observe(ctx, s.opts.observer, "update-client-start", time.Now(), fields, &err)

	if err = requireEmployee(employeeID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(employeeKey(employeeID))
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		if err := txSessions.SetClientStart(ctx, employeeID, at); err != nil {
			return notFound(err, "no open session for employee %s", employeeID)
		}
		var err error
		session, err = txSessions.Get(ctx, employeeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}
