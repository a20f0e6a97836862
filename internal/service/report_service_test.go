package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_Day(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()

	s.workShift(t, "e1", testutil.At(9, 0), testutil.At(11, 0))
	s.workShift(t, "e2", testutil.At(10, 0), testutil.At(11, 0))
	_, err := s.groups.Patch(ctx, "e1", d1, domain.GroupPatch{Standard: intPtr(4)})
	require.NoError(t, err)

	res, err := s.reports.Day(ctx, d1)
	require.NoError(t, err)

	assert.Equal(t, d1, res.From)
	assert.Equal(t, d1, res.To)
	require.Len(t, res.Employees, 2)
	assert.InDelta(t, 2.0, res.Employees[0].GroupsPerHour, 1e-9)
	assert.Equal(t, 2, res.Shop.MaxConcurrent)
	assert.InDelta(t, 7200, res.Shop.ActiveShopSeconds, 1e-9, "union of worked intervals")
	assert.InDelta(t, 10800, res.Shop.TotalSeconds, 1e-9)
	assert.Equal(t, 4, res.Shop.TotalGroups.Total())
}

func TestReportService_Range(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()

	repo := s.records
	_, err := repo.Add(ctx, &domain.CompletedRecord{EmployeeID: "e1", StartTime: testutil.At(9, 0), EndTime: testutil.At(10, 0)}, false)
	require.NoError(t, err)
	_, err = repo.Add(ctx, &domain.CompletedRecord{
		EmployeeID: "e1",
		StartTime:  testutil.At(9, 0).AddDate(0, 0, 1),
		EndTime:    testutil.At(10, 0).AddDate(0, 0, 1),
	}, false)
	require.NoError(t, err)

	res, err := s.reports.Range(ctx, "2025-06-01", "2025-06-02")
	require.NoError(t, err)
	require.Len(t, res.Employees, 1)
	assert.InDelta(t, 7200, res.Employees[0].TotalSeconds, 1e-9)
	assert.Equal(t, 2, res.Employees[0].ActiveDays)
	assert.Len(t, res.Days, 2)
}

func TestReportService_Month(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	s.workShift(t, "e1", testutil.At(9, 0), testutil.At(10, 0))

	res, err := s.reports.Month(ctx, "2025-06")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", res.From)
	assert.Equal(t, "2025-06-30", res.To)
	require.Len(t, res.Employees, 1)

	_, err = s.reports.Month(ctx, "2025-6")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReportService_RangeLimits(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()

	_, err := s.reports.Range(ctx, "2025-06-02", "2025-06-01")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.reports.Range(ctx, "2024-01-01", "2025-06-01")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReportService_PastDayIgnoresOpenSessions(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()

	s.clock.T = testutil.At(9, 0)
	_, err := s.ledger.Start(ctx, "e1", "Ana")
	require.NoError(t, err)

	s.clock.T = testutil.At(9, 0).AddDate(0, 0, 1)
	res, err := s.reports.Day(ctx, d1)
	require.NoError(t, err)
	assert.Empty(t, res.Employees)

	res, err = s.reports.Day(ctx, "2025-06-02")
	require.NoError(t, err)
	require.Len(t, res.Employees, 1)
	assert.True(t, res.Employees[0].ActiveNow)
}
