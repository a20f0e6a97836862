package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteRecordRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	rec := testutil.NewTestRecord("e1", testutil.At(9, 0), testutil.At(10, 30),
		testutil.WithEmployeeName("Ana"), testutil.WithLegacyGroups(3), testutil.WithArchivedOverride())
	require.NoError(t, repo.Create(ctx, rec))

	fetched, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", fetched.EmployeeName)
	assert.Equal(t, "2025-06-01", fetched.Date)
	assert.InDelta(t, 5400, fetched.DurationSeconds, 1e-9)
	assert.Equal(t, 3, fetched.Groups)
	assert.Equal(t, domain.RecordSession, fetched.Kind)
	assert.True(t, fetched.ArchivedOverride)
	assert.Empty(t, fetched.AdjustsID)
	assert.True(t, fetched.StartTime.Equal(rec.StartTime))
	assert.True(t, fetched.EndTime.Equal(rec.EndTime))
}

func TestRecordRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteRecordRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestRecordRepo_ListFilters(t *testing.T) {
	repo := NewSQLiteRecordRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	recs := []*domain.CompletedRecord{
		testutil.NewTestRecord("e1", testutil.At(14, 0), testutil.At(15, 0)),
		testutil.NewTestRecord("e1", testutil.At(9, 0), testutil.At(10, 0)),
		testutil.NewTestRecord("e2", testutil.At(9, 0), testutil.At(10, 0)),
		testutil.NewTestRecord("e1", testutil.At(33, 0), testutil.At(34, 0)),
	}
	for _, r := range recs {
		require.NoError(t, repo.Create(ctx, r))
	}

	day, err := repo.List(ctx, RecordFilter{From: "2025-06-01", To: "2025-06-01"})
	require.NoError(t, err)
	require.Len(t, day, 3)
	assert.True(t, day[0].StartTime.Equal(testutil.At(9, 0)), "ordered by start time")
	assert.True(t, day[2].StartTime.Equal(testutil.At(14, 0)))

	e1, err := repo.List(ctx, RecordFilter{EmployeeID: "e1"})
	require.NoError(t, err)
	assert.Len(t, e1, 3)

	e1Next, err := repo.List(ctx, RecordFilter{From: "2025-06-02", EmployeeID: "e1"})
	require.NoError(t, err)
	require.Len(t, e1Next, 1)
	assert.Equal(t, "2025-06-02", e1Next[0].Date)
}

func TestRecordRepo_AdjustmentsCascadeOnDelete(t *testing.T) {
	repo := NewSQLiteRecordRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	target := testutil.NewTestRecord("e1", testutil.At(9, 0), testutil.At(10, 0))
	require.NoError(t, repo.Create(ctx, target))
	require.NoError(t, repo.Create(ctx, domain.NewAdjustment("adj-1", target, -600, testutil.At(12, 0))))
	require.NoError(t, repo.Create(ctx, domain.NewAdjustment("adj-2", target, 120, testutil.At(13, 0))))

	adjs, err := repo.ListAdjustments(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, adjs, 2)
	assert.Equal(t, "adj-1", adjs[0].ID)
	assert.Equal(t, domain.RecordAdjustment, adjs[0].Kind)
	assert.Equal(t, target.ID, adjs[0].AdjustsID)
	assert.InDelta(t, 3600-600+120, domain.EffectiveDuration(target, adjs), 1e-9)

	require.NoError(t, repo.Delete(ctx, target.ID))

	all, err := repo.List(ctx, RecordFilter{})
	require.NoError(t, err)
	assert.Empty(t, all, "adjustments are removed with their target")
}

func TestRecordRepo_Delete_NotFound(t *testing.T) {
	repo := NewSQLiteRecordRepo(testutil.NewTestDB(t))
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrNotFound)
}
