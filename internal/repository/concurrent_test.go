package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAccess_ReadDuringWrite lists a day's records while another
// goroutine keeps inserting into it.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteRecordRepo(database)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			rec := testutil.NewTestRecord(fmt.Sprintf("e%d", i), testutil.At(9, 0), testutil.At(10, 0))
			if err := repo.Create(ctx, rec); err != nil {
				t.Errorf("writer: create record %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				recs, err := repo.List(ctx, RecordFilter{From: "2025-06-01", To: "2025-06-01"})
				if err != nil {
					t.Errorf("reader %d: list: %v", reader, err)
					return
				}
				for _, rec := range recs {
					if rec.ID == "" || rec.EmployeeID == "" {
						t.Errorf("reader %d: half-written record %+v", reader, rec)
					}
				}
			}
		}(r)
	}
	wg.Wait()

	recs, err := repo.List(ctx, RecordFilter{})
	require.NoError(t, err)
	assert.Len(t, recs, 20)
}

// TestConcurrentAccess_CloseIsIdempotent races several closers on one date;
// exactly one of them observes the open-to-closed transition.
func TestConcurrentAccess_CloseIsIdempotent(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	uow := db.NewTxRunner(database)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		changed int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				ok, err := NewSQLiteClosedDayRepo(tx).Close(ctx, "2025-06-01", testutil.At(22, 0))
				if err != nil {
					return err
				}
				if ok {
					mu.Lock()
					changed++
					mu.Unlock()
				}
				return nil
			})
			if err != nil {
				t.Errorf("close: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, changed)
}
