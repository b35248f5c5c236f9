package helpers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"go.uber.org/zap"
)

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// TransactionFunc is a function that executes within a database transaction
type TransactionFunc func(tx pgx.Tx) error

// WithTransaction executes a function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function returns nil, the transaction is committed.
func WithTransaction(ctx context.Context, pool *pgxpool.Pool, fn TransactionFunc) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		// After a commit, rollback returns ErrTxClosed
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			logger.Log.Error("Failed to rollback transaction", zap.Error(rollbackErr))
		}
	}()

	if err := fn(tx); err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// WithTransactionRetry executes a function within a database transaction with retry logic.
// It retries up to maxRetries times on serialization failures and deadlocks.
func WithTransactionRetry(ctx context.Context, pool *pgxpool.Pool, maxRetries int, fn TransactionFunc) error {
	var err error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = WithTransaction(ctx, pool, fn)
		if err == nil {
			return nil
		}

		if IsRetryableTxError(err) && attempt < maxRetries {
			logger.Log.Warn("Transaction failed with a retryable error, retrying",
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", maxRetries),
				zap.Error(err),
			)
			continue
		}
		break
	}

	return err
}

// IsRetryableTxError reports whether err is a serialization failure or deadlock
func IsRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
}

// PoolTxRunner runs db.Querier work inside pgx transactions on a pool
type PoolTxRunner struct {
	pool       *pgxpool.Pool
	maxRetries int
}

// NewPoolTxRunner creates a transaction runner over pool
func NewPoolTxRunner(pool *pgxpool.Pool, maxRetries int) *PoolTxRunner {
	return &PoolTxRunner{pool: pool, maxRetries: maxRetries}
}

// RunInTransaction hands fn a Querier bound to a fresh transaction
func (r *PoolTxRunner) RunInTransaction(ctx context.Context, fn func(q db.Querier) error) error {
	return WithTransactionRetry(ctx, r.pool, r.maxRetries, func(tx pgx.Tx) error {
		return fn(db.New(tx))
	})
}
