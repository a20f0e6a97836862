package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/shopfloor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	sess := testutil.NewTestSession("e1", testutil.At(9, 0), testutil.WithSessionName("Ana"))
	require.NoError(t, repo.Create(ctx, sess))

	fetched, err := repo.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", fetched.EmployeeName)
	assert.True(t, fetched.StartTime.Equal(testutil.At(9, 0)))
	assert.Nil(t, fetched.ClientStartTime)
}

func TestSessionRepo_Get_NotFound(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_CreateDuplicateFails(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestSession("e1", testutil.At(9, 0))))
	assert.Error(t, repo.Create(ctx, testutil.NewTestSession("e1", testutil.At(10, 0))),
		"at most one open session per employee")
}

func TestSessionRepo_List(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestSession("e2", testutil.At(10, 0))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession("e1", testutil.At(9, 0))))

	sessions, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "e1", sessions[0].EmployeeID, "ordered by start time")
	assert.Equal(t, "e2", sessions[1].EmployeeID)
}

func TestSessionRepo_SetClientStart(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession("e1", testutil.At(9, 0))))

	at := testutil.At(9, 45)
	require.NoError(t, repo.SetClientStart(ctx, "e1", &at))

	fetched, err := repo.Get(ctx, "e1")
	require.NoError(t, err)
	require.NotNil(t, fetched.ClientStartTime)
	assert.True(t, fetched.ClientStartTime.Equal(at))

	require.NoError(t, repo.SetClientStart(ctx, "e1", nil))
	fetched, err = repo.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Nil(t, fetched.ClientStartTime)

	assert.ErrorIs(t, repo.SetClientStart(ctx, "nobody", &at), ErrNotFound)
}

func TestSessionRepo_Delete(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession("e1", testutil.At(9, 0))))

	require.NoError(t, repo.Delete(ctx, "e1"))

	_, err := repo.Get(ctx, "e1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, repo.Delete(ctx, "e1"), "deleting a missing session is a no-op")
}
