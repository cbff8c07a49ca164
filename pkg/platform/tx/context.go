// Package tx provides the transactional boundary shared by every ledger store:
// a PostgreSQL implementation over database/sql and an in-memory implementation
// that serializes writers and rolls back through an undo journal.
package tx

import (
	"context"
	"database/sql"
)

type contextKeyTx struct{}

// WithTx stores a SQL transaction in the context.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, contextKeyTx{}, tx)
}

// From returns the SQL transaction bound to ctx, if any.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(contextKeyTx{}).(*sql.Tx)
	return tx, ok && tx != nil
}

// Executor is satisfied by both *sql.DB and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Exec returns the transaction bound to ctx, or db outside a transaction.
func Exec(ctx context.Context, db *sql.DB) Executor {
	if tx, ok := From(ctx); ok {
		return tx
	}
	return db
}
