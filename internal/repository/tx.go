package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// withTx runs fn inside a single transaction.  The transaction commits
// only when fn returns nil; on every other path it is rolled back.  The
// deferred Rollback after a successful Commit returns sql.ErrTxDone and
// is ignored.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// rowExists reports whether table has a row with the given id.  table is
// always a constant supplied by this package.
func rowExists(ctx context.Context, tx *sql.Tx, table string, id uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
