package postgres

import (
	"context"
	"database/sql"

	"github.com/r-o-main/bulk-transfer-api/common/mpostgres"
)

// WithTx runs fn inside a single database transaction owned by the caller.
// It commits on a nil return and rolls back otherwise, so callers never have to remember to
// clean up a half-finished transaction.
func WithTx(ctx context.Context, pc *mpostgres.PostgresConnection, fn func(tx *sql.Tx) error) error {
	db, err := pc.GetDB(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// TxRunner abstracts WithTx behind an interface so the intake, worker and
// finalizer services can run their pipelines against a stub in tests
// without a live database.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// ConnectionTxRunner is the production TxRunner, opening transactions on a
// PostgresConnection.
type ConnectionTxRunner struct {
	connection *mpostgres.PostgresConnection
}

// NewConnectionTxRunner returns a TxRunner over pc.
func NewConnectionTxRunner(pc *mpostgres.PostgresConnection) *ConnectionTxRunner {
	return &ConnectionTxRunner{connection: pc}
}

// WithTx implements TxRunner.
func (r *ConnectionTxRunner) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return WithTx(ctx, r.connection, fn)
}
