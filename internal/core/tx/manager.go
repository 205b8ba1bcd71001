// Package tx provides transaction management abstractions.
// Domain services depend on these interfaces, never on a concrete
// database; the ledger writer's atomicity guarantee is expressed
// entirely through Manager.
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
// Implementations handle BEGIN, COMMIT, ROLLBACK, and nested
// transaction support.
//
// The postgres implementation lives in infrastructure/storage/postgres;
// an in-memory implementation with per-key mutexes lives in
// infrastructure/storage/memory for unit tests.
type Manager interface {
	// RunInTransaction executes fn within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	//
	// Nested calls reuse the existing transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transaction support.
// Use for queries that don't modify data (no locks taken).
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction.
	// Attempts to modify data will fail.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
