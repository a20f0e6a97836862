package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosedDayRepo_CloseReopen(t *testing.T) {
	repo := NewSQLiteClosedDayRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	closed, err := repo.IsClosed(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.False(t, closed)

	changed, err := repo.Close(ctx, "2025-06-01", testutil.At(22, 0))
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.Close(ctx, "2025-06-01", testutil.At(23, 0))
	require.NoError(t, err)
	assert.False(t, changed, "closing twice changes nothing")

	closed, err = repo.IsClosed(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.True(t, closed)

	changed, err = repo.Reopen(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.Reopen(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestClosedDayRepo_ListMostRecentFirst(t *testing.T) {
	repo := NewSQLiteClosedDayRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, d := range []string{"2025-06-01", "2025-06-03", "2025-06-02"} {
		_, err := repo.Close(ctx, d, testutil.At(22, 0))
		require.NoError(t, err)
	}

	dates, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-03", "2025-06-02", "2025-06-01"}, dates)
}

func TestSnapshotRepo_UpsertReplaces(t *testing.T) {
	repo := NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, "2025-06-01")
	assert.ErrorIs(t, err, ErrNotFound)

	first := &domain.ClosedDaySnapshot{Date: "2025-06-01", TotalGroups: 5, MaxConcurrent: 2, ClosedAt: testutil.At(22, 0)}
	require.NoError(t, repo.Upsert(ctx, first))

	got, err := repo.Get(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, 5, got.TotalGroups)
	assert.Equal(t, "[]", got.UsersReport, "empty report is stored as an empty list")

	second := &domain.ClosedDaySnapshot{
		Date: "2025-06-01", TotalGroups: 9, MaxConcurrent: 3,
		UsersReport: `[{"employeeId":"e1"}]`, Observation: "late delivery",
		ClosedAt: testutil.At(23, 0),
	}
	require.NoError(t, repo.Upsert(ctx, second))

	got, err = repo.Get(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, 9, got.TotalGroups)
	assert.Equal(t, 3, got.MaxConcurrent)
	assert.Equal(t, "late delivery", got.Observation)
	assert.True(t, got.ClosedAt.Equal(testutil.At(23, 0)))
}

func TestIncidentRepo_UpsertAndGet(t *testing.T) {
	repo := NewSQLiteIncidentRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, "2025-06-01")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Upsert(ctx, &domain.DayIncident{Date: "2025-06-01", Text: "till jammed", UpdatedAt: testutil.At(11, 0)}))
	require.NoError(t, repo.Upsert(ctx, &domain.DayIncident{Date: "2025-06-01", Text: "till fixed", UpdatedAt: testutil.At(12, 0)}))

	got, err := repo.Get(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, "till fixed", got.Text)
}
