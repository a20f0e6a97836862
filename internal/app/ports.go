package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/service"
)

// DashboardUseCase is the read model polled by the live views.
type DashboardUseCase interface {
	Dashboard(ctx context.Context) (*DashboardView, error)
}

// Shop bundles the use cases every boundary (CLI, HTTP) drives.
type Shop struct {
	Sessions service.SessionLedger
	Records  service.RecordService
	Groups   service.GroupService
	Days     service.DayService
	Reports  service.ReportService

	Now      func() time.Time
	Location *time.Location
}

// ShopConfig carries the clock and location shared by every service.
type ShopConfig struct {
	Now      func() time.Time
	Location *time.Location
	Observer service.UseCaseObserver
}

// NewShop wires repositories and services over database. All services share
// one lock registry so per-date writes serialize with closing that date.
func NewShop(database *sql.DB, cfg ShopConfig) *Shop {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	opts := []service.Option{service.WithClock(cfg.Now), service.WithLocation(cfg.Location)}
	if cfg.Observer != nil {
		opts = append(opts, service.WithObserver(cfg.Observer))
	}

	uow := db.NewTxRunner(database)
	locks := service.NewKeyedLocks()
	sessions := repository.NewSQLiteSessionRepo(database)
	records := repository.NewSQLiteRecordRepo(database)
	groups := repository.NewSQLiteGroupRepo(database)

	return &Shop{
		Sessions: service.NewSessionLedger(sessions, uow, locks, opts...),
		Records:  service.NewRecordService(records, uow, locks, opts...),
		Groups:   service.NewGroupService(groups, records, uow, locks, opts...),
		Days: service.NewDayService(
			repository.NewSQLiteClosedDayRepo(database),
			repository.NewSQLiteSnapshotRepo(database),
			repository.NewSQLiteIncidentRepo(database),
			uow, locks, opts...,
		),
		Reports:  service.NewReportService(records, groups, sessions, opts...),
		Now:      cfg.Now,
		Location: cfg.Location,
	}
}

// Today is the current calendar day in the shop's location.
func (s *Shop) Today() string {
	return domain.DateOf(s.Now(), s.Location)
}
