package service

import (
	"context"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
)

type groupService struct {
	groups  repository.GroupRepo
	records repository.RecordRepo
	uow     db.UnitOfWork
	locks   *KeyedLocks
	opts    options
}

func NewGroupService(groups repository.GroupRepo, records repository.RecordRepo, uow db.UnitOfWork, locks *KeyedLocks, opts ...Option) GroupService {
	return &groupService{groups: groups, records: records, uow: uow, locks: locks, opts: newOptions(opts)}
}

func validateGroupKey(employeeID, date string) error {
	if err := requireEmployee(employeeID); err != nil {
		return err
	}
	return domain.ValidateDate(date)
}

func (s *groupService) Get(ctx context.Context, employeeID, date string) (domain.GroupCount, error) {
	if err := validateGroupKey(employeeID, date); err != nil {
		return domain.GroupCount{}, err
	}
	return currentGroups(ctx, s.groups, s.records, employeeID, date)
}

func (s *groupService) Patch(ctx context.Context, employeeID, date string, patch domain.GroupPatch) (counts domain.GroupCount, err error) {
	fields := map[string]any{"employee_id": employeeID, "date": date, "mode": string(domain.MergeReplace)}
	defer observe(ctx, s.opts.observer, "patch-groups", time.Now(), fields, &err)

	if err = validateGroupKey(employeeID, date); err != nil {
		return domain.GroupCount{}, err
	}
	if err = patch.Validate(); err != nil {
		return domain.GroupCount{}, err
	}
	return s.write(ctx, employeeID, date, false, func(current domain.GroupCount) (domain.GroupCount, error) {
		return current.Merge(patch)
	})
}

func (s *groupService) Add(ctx context.Context, employeeID, date string, delta domain.GroupPatch, override bool) (counts domain.GroupCount, err error) {
	fields := map[string]any{"employee_id": employeeID, "date": date, "mode": string(domain.MergeAdd), "override": override}
	defer observe(ctx, s.opts.observer, "add-groups", time.Now(), fields, &err)

	if err = validateGroupKey(employeeID, date); err != nil {
		return domain.GroupCount{}, err
	}
	if err = delta.Validate(); err != nil {
		return domain.GroupCount{}, err
	}
	return s.write(ctx, employeeID, date, override, func(current domain.GroupCount) (domain.GroupCount, error) {
		full, err := current.AddPatch(delta)
		if err != nil {
			return current, err
		}
		return current.Merge(full)
	})
}

// write runs the read-merge-store cycle for one employee's day under the
// date lock and a single transaction.
func (s *groupService) write(ctx context.Context, employeeID, date string, override bool, merge func(domain.GroupCount) (domain.GroupCount, error)) (domain.GroupCount, error) {
	unlock := s.locks.Lock(dateKey(date))
	defer unlock()

	var result domain.GroupCount
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := guardOpen(ctx, repository.NewSQLiteClosedDayRepo(tx), date, override); err != nil {
			return err
		}
		txGroups := repository.NewSQLiteGroupRepo(tx)

		current, err := currentGroups(ctx, txGroups, repository.NewSQLiteRecordRepo(tx), employeeID, date)
		if err != nil {
			return err
		}
		next, err := merge(current)
		if err != nil {
			return err
		}
		if err := txGroups.Upsert(ctx, &domain.DailyGroups{
			EmployeeID: employeeID,
			Date:       date,
			Counts:     next,
			UpdatedAt:  s.opts.now().UTC(),
		}); err != nil {
			return err
		}
		result = next
		return nil
	})
	if err != nil {
		return domain.GroupCount{}, err
	}
	return result, nil
}
