// Package dbx holds the small database plumbing shared by the repositories:
// the DBTX handle satisfied by both *sql.DB and *sql.Tx, and a transactional
// wrapper for flows that must not partially commit.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the repositories need. A repository bound to a
// *sql.DB runs its statements directly; bound to a *sql.Tx it runs them
// inside the caller's transaction without knowing the difference.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction on db. The transaction commits when fn
// returns nil and rolls back when fn returns an error or panics; a panic is
// rethrown after the rollback.
//
// Account registration binds its repository to the transactional handle:
//
//	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    _, err := s.repomanager.Users(tx).Create(ctx, user)
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
