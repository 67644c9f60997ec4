package db

import (
	"context"
	"database/sql"
	"fmt"
	_ "github.com/lib/pq" // Import postgres driver
	"log/slog"
	"time"
)

// PoolConfig controls the connection pool Connect opens. Unlike the
// teacher's Connect (hardcoded 25/25/5m), these are caller-supplied so
// cmd/server and cmd/worker can size the pool to their own concurrency
// (the worker's pool need only cover JobPoolWorkers concurrent transactions,
// not the server's full request concurrency).
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func Connect(dsn string, timeout time.Duration, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			fmt.Printf("failed to close database handle after ping error: %v\n", closeErr)
		}
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return db, nil
}

// BuildJobLockNamespace distinguishes build-job advisory locks from any
// other feature that might take a lock in this keyspace.
const BuildJobLockNamespace = 42

// TryAcquireTransactionalLock attempts to acquire a transaction-level
// advisory lock, automatically released at the end of the transaction.
// jobqueue.Pool uses this, namespaced per tournament id, so two worker
// processes racing on a retried build job for the same tournament don't run
// build_structure concurrently against it.
func TryAcquireTransactionalLock(ctx context.Context, tx *sql.Tx, lockID int64, logger *slog.Logger) (bool, error) {
	var acquired bool
	err := tx.QueryRowContext(ctx, "SELECT pg_try_advisory_xact_lock($1, $2)", BuildJobLockNamespace, lockID).Scan(&acquired)
	if err != nil {
		if logger != nil {
			logger.ErrorContext(ctx, "error executing pg_try_advisory_xact_lock", slog.Int64("lock_id", lockID), slog.Any("error", err))
		}
		return false, fmt.Errorf("failed to execute pg_try_advisory_xact_lock for lock ID %d: %w", lockID, err)
	}

	if logger != nil {
		if acquired {
			logger.InfoContext(ctx, "acquired build-job advisory lock", slog.Int64("lock_id", lockID))
		} else {
			logger.InfoContext(ctx, "build-job advisory lock already held", slog.Int64("lock_id", lockID))
		}
	}
	return acquired, nil
}
