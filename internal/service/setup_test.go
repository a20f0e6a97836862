package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/testutil"
)

// shop wires every service against one database, clock and lock registry,
// the same way cmd/shopfloor does.
type shop struct {
	db      *sql.DB
	clock   *testutil.FixedClock
	locks   *KeyedLocks
	ledger  SessionLedger
	records RecordService
	groups  GroupService
	days    DayService
	reports ReportService
}

func newShop(t *testing.T) *shop {
	t.Helper()
	return newShopWith(t, testutil.NewTestDB(t), nil)
}

// newShopWith lets a test substitute the UnitOfWork, e.g. to inject failures.
func newShopWith(t *testing.T, database *sql.DB, uow db.UnitOfWork) *shop {
	t.Helper()
	if uow == nil {
		uow = testutil.NewTestUoW(database)
	}
	clock := testutil.NewFixedClock(testutil.At(12, 0))
	locks := NewKeyedLocks()
	opts := []Option{WithClock(clock.Now), WithLocation(time.UTC)}

	sessions := repository.NewSQLiteSessionRepo(database)
	records := repository.NewSQLiteRecordRepo(database)
	groups := repository.NewSQLiteGroupRepo(database)

	return &shop{
		db:      database,
		clock:   clock,
		locks:   locks,
		ledger:  NewSessionLedger(sessions, uow, locks, opts...),
		records: NewRecordService(records, uow, locks, opts...),
		groups:  NewGroupService(groups, records, uow, locks, opts...),
		days: NewDayService(
			repository.NewSQLiteClosedDayRepo(database),
			repository.NewSQLiteSnapshotRepo(database),
			repository.NewSQLiteIncidentRepo(database),
			uow, locks, opts...,
		),
		reports: NewReportService(records, groups, sessions, opts...),
	}
}

func intPtr(v int) *int { return &v }

// workShift clocks an employee in at start and out at end.
func (s *shop) workShift(t *testing.T, employeeID string, start, end time.Time) {
	t.Helper()
	ctx := context.Background()
	s.clock.T = start
	if _, err := s.ledger.Start(ctx, employeeID, employeeID); err != nil {
		t.Fatalf("start %s: %v", employeeID, err)
	}
	s.clock.T = end
	if _, err := s.ledger.End(ctx, employeeID); err != nil {
		t.Fatalf("end %s: %v", employeeID, err)
	}
}
