package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/alexanderramin/shopfloor/internal/db"
)

// FailingStmtUoW runs real transactions but makes the first write whose SQL
// contains FailOn return Err instead of executing. Tests use it to break a
// multi-write operation at a named statement and check nothing leaked.
type FailingStmtUoW struct {
	DB     *sql.DB
	FailOn string
	Err    error

	// Hit reports whether the statement was reached.
	Hit bool
}

func (u *FailingStmtUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewTxRunner(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingStmt{DBTX: tx, uow: u})
	})
}

type failingStmt struct {
	db.DBTX
	uow *FailingStmtUoW
}

func (f *failingStmt) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if !f.uow.Hit && strings.Contains(query, f.uow.FailOn) {
		f.uow.Hit = true
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
