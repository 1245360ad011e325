package pgutils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// WithTx begins a transaction, runs fn, and commits when fn returns nil.
// Any error from fn rolls the transaction back and is returned unwrapped,
// so sentinel checks with errors.Is keep working across the boundary.
func WithTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	err = fn(tx)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}

		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// AdvisoryXactLock blocks until the transaction-scoped advisory lock on key
// is acquired. The lock is released automatically when tx commits or rolls
// back. At READ COMMITTED, a statement issued after the lock is granted sees
// everything the previous holder committed, which makes a count-then-insert
// sequence safe against concurrent writers using the same key.
func AdvisoryXactLock(tx *sql.Tx, key int64) error {
	_, err := tx.Exec("SELECT pg_advisory_xact_lock($1)", key)
	if err != nil {
		return fmt.Errorf("advisory lock %d: %w", key, err)
	}

	return nil
}
