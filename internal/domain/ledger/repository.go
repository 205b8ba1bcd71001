package ledger

import (
	"context"

	"stockledger/internal/core/id"
)

// Repository defines the ledger's persistence contract. Write methods
// are only ever called from inside a tx.Manager transaction; the
// postgres implementation takes the product-scoped row lock in
// GetBalanceForUpdate.
type Repository interface {
	// GetBalanceForUpdate returns the balance row for productID under
	// an exclusive lock, creating a zero row when the product has never
	// moved. Lock-wait timeouts surface as CONCURRENCY_ERROR.
	GetBalanceForUpdate(ctx context.Context, productID id.ID) (*StockBalance, error)

	// SaveBalance writes the updated balance row.
	SaveBalance(ctx context.Context, b *StockBalance) error

	// InsertMovement appends one immutable journal row.
	InsertMovement(ctx context.Context, m *StockMovement) error

	// GetBalance reads a balance without locking. Products that never
	// moved report a zero balance, not NOT_FOUND.
	GetBalance(ctx context.Context, productID id.ID) (*StockBalance, error)

	// ListMovements returns the journal for a product, newest first,
	// with the total row count for pagination.
	ListMovements(ctx context.Context, filter MovementFilter) ([]*StockMovement, int64, error)
}

// MovementFilter narrows journal listings.
type MovementFilter struct {
	ProductID    *id.ID
	MovementType *MovementType
	Limit        int
	Offset       int
}
