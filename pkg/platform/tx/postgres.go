package tx

import (
	"context"
	"database/sql"
	"time"

	dErrors "carbonledger/pkg/domain-errors"
)

const defaultTxTimeout = 5 * time.Second

// ledgerLockKey is the advisory lock taken by every write transaction so ledger
// mutations are serialized across server replicas.
const ledgerLockKey int64 = 0x6c6564676572

// PostgresTx runs fn inside a database transaction.
type PostgresTx struct {
	db      *sql.DB
	gate    callbackGate
	timeout time.Duration
}

func NewPostgres(db *sql.DB) *PostgresTx {
	return &PostgresTx{db: db, timeout: defaultTxTimeout}
}

// RunInTx begins a transaction, takes the ledger advisory lock and commits if
// fn succeeds. Calls nested inside an open transaction join it.
func (t *PostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.run(ctx, false, fn)
}

// View runs fn in a read-only transaction.
func (t *PostgresTx) View(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.run(ctx, true, fn)
}

func (t *PostgresTx) run(ctx context.Context, readOnly bool, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}
	// A detached transaction opened during a callback would wait on the
	// advisory lock its own caller holds.
	if t.gate.inCallback() {
		return reentered()
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	sqlTx, err := t.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: readOnly})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "begin transaction")
	}
	defer func() {
		_ = sqlTx.Rollback() //nolint:errcheck // rollback after commit is no-op; error already captured
	}()

	if !readOnly {
		if _, err := sqlTx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, ledgerLockKey); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "acquire ledger lock")
		}
	}

	// Writes made by in-memory collaborators during fn are compensated through
	// the journal when the database transaction does not commit.
	j := &journal{gate: &t.gate}
	txCtx := WithTx(ctx, sqlTx)
	if !readOnly {
		txCtx = context.WithValue(txCtx, contextKeyJournal{}, j)
	}
	if err := fn(txCtx); err != nil {
		j.rollback()
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		j.rollback()
		return dErrors.Wrap(err, dErrors.CodeInternal, "commit transaction")
	}
	return nil
}
