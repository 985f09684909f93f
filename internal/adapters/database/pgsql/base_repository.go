package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx operations shared by the pool and an open
// transaction, so read methods work inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// baseRepository holds the connection pool and implements transaction
// management for repositories that embed it.
type baseRepository struct {
	pool *pgxpool.Pool
}

// Begin starts a new database transaction.
func (r *baseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Commit commits a transaction.
func (r *baseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return tx.Commit(ctx)
}

// Rollback rolls back a transaction. Rolling back an already-committed
// transaction is a no-op error and is safe to ignore at call sites.
func (r *baseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return tx.Rollback(ctx)
}

// querierFor picks the transaction when one is open, otherwise the pool.
func (r *baseRepository) querierFor(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.pool
}
