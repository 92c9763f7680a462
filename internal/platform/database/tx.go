package database

import (
	"context"
	"database/sql"
	"time"

	dErrors "uims/pkg/domain-errors"
	txcontext "uims/pkg/platform/tx"
)

const defaultTxTimeout = 5 * time.Second

// Transactor runs units of work in a database transaction. Stores join the
// transaction through the context passed to fn.
type Transactor struct {
	db      *sql.DB
	timeout time.Duration
}

// NewTransactor creates a Transactor. A zero timeout uses the default.
func NewTransactor(db *sql.DB, timeout time.Duration) *Transactor {
	return &Transactor{db: db, timeout: timeout}
}

// RunInTx commits when fn returns nil and rolls back otherwise. When ctx has
// no deadline, one is applied so a stuck unit of work cannot hold locks
// indefinitely. Nested calls reuse the outer transaction.
func (t *Transactor) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, ok := txcontext.From(ctx); ok {
		return fn(ctx)
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return Classify(err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return Classify(err)
	}
	return nil
}
