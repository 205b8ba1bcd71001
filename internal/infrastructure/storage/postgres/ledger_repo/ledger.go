// Package ledger_repo provides the PostgreSQL implementation of the
// movement journal and balance storage.
package ledger_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockledger/internal/core/id"
	"stockledger/internal/core/types"
	"stockledger/internal/domain/ledger"
	"stockledger/internal/domain/reports"
	"stockledger/internal/infrastructure/storage/postgres"
)

const (
	movementsTable = "stock_movements"
	balancesTable  = "stock_balances"
	productsTable  = "products"
)

var movementColumns = []string{
	"id", "movement_type", "product_id",
	"qty_input", "unit_input", "qty_base", "unit_base",
	"unit_cost_input", "unit_cost_base", "value_total",
	"balance_after",
	"cost_center_id", "cost_element_id", "work_order_id",
	"note", "performed_by", "performed_at",
}

// LedgerRepo implements ledger.Repository and the balance reader's
// storage interface against PostgreSQL.
type LedgerRepo struct {
	builder   squirrel.StatementBuilderType
	txManager *postgres.TxManager
}

// NewLedgerRepo creates a new ledger repository.
func NewLedgerRepo(txManager *postgres.TxManager) *LedgerRepo {
	return &LedgerRepo{
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		txManager: txManager,
	}
}

// GetBalanceForUpdate returns the balance row under an exclusive lock,
// creating a zero row for products that never moved. Lock waits are
// bounded by the transaction's lock_timeout; expiry surfaces as
// CONCURRENCY_ERROR.
func (r *LedgerRepo) GetBalanceForUpdate(ctx context.Context, productID id.ID) (*ledger.StockBalance, error) {
	querier := r.txManager.GetQuerier(ctx)

	// First movement for a product creates its balance row. ON CONFLICT
	// keeps this race-free between concurrent first movements.
	ensureSQL := `
		INSERT INTO stock_balances (product_id, on_hand, updated_at)
		VALUES ($1, 0, $2)
		ON CONFLICT (product_id) DO NOTHING
	`
	if _, err := querier.Exec(ctx, ensureSQL, productID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("ensure balance row: %w", err)
	}

	lockSQL := `
		SELECT product_id, on_hand, last_movement_id, updated_at
		FROM stock_balances
		WHERE product_id = $1
		FOR UPDATE
	`
	var balance ledger.StockBalance
	if err := pgxscan.Get(ctx, querier, &balance, lockSQL, productID); err != nil {
		if mapped := postgres.MapLockError(err, "stock_balance", productID); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("get balance for update: %w", err)
	}

	return &balance, nil
}

// SaveBalance writes the updated balance row.
func (r *LedgerRepo) SaveBalance(ctx context.Context, b *ledger.StockBalance) error {
	q := r.builder.Update(balancesTable).
		Set("on_hand", b.OnHand).
		Set("last_movement_id", b.LastMovementID).
		Set("updated_at", b.UpdatedAt).
		Where(squirrel.Eq{"product_id": b.ProductID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}

	return nil
}

// InsertMovement appends one immutable journal row.
func (r *LedgerRepo) InsertMovement(ctx context.Context, m *ledger.StockMovement) error {
	q := r.builder.Insert(movementsTable).
		Columns(movementColumns...).
		Values(
			m.ID, m.MovementType, m.ProductID,
			m.QtyInput, m.UnitInput, m.QtyBase, m.UnitBase,
			m.UnitCostInput, m.UnitCostBase, m.ValueTotal,
			m.BalanceAfter,
			m.CostCenterID, m.CostElementID, m.WorkOrderID,
			m.Note, m.PerformedBy, m.PerformedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}

	return nil
}

// GetBalance reads a balance without locking. Products that never
// moved report zero.
func (r *LedgerRepo) GetBalance(ctx context.Context, productID id.ID) (*ledger.StockBalance, error) {
	q := r.builder.Select("product_id", "on_hand", "last_movement_id", "updated_at").
		From(balancesTable).
		Where(squirrel.Eq{"product_id": productID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balance ledger.StockBalance
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &balance, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return &ledger.StockBalance{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}

	return &balance, nil
}

// ListMovements returns journal rows, newest first, with total count.
func (r *LedgerRepo) ListMovements(ctx context.Context, filter ledger.MovementFilter) ([]*ledger.StockMovement, int64, error) {
	q := r.builder.Select(movementColumns...).From(movementsTable)
	countQ := r.builder.Select("COUNT(*)").From(movementsTable)

	if filter.ProductID != nil {
		cond := squirrel.Eq{"product_id": *filter.ProductID}
		q = q.Where(cond)
		countQ = countQ.Where(cond)
	}
	if filter.MovementType != nil {
		cond := squirrel.Eq{"movement_type": *filter.MovementType}
		q = q.Where(cond)
		countQ = countQ.Where(cond)
	}

	q = q.OrderBy("performed_at DESC", "id DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	var movements []*ledger.StockMovement
	if err := pgxscan.Select(ctx, querier, &movements, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("select movements: %w", err)
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}

	var total int64
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	return movements, total, nil
}

// ListLowStockCandidates returns active products whose balance sits at
// or below the effective threshold (reorder point when set, otherwise
// the global threshold), ascending by on_hand.
func (r *LedgerRepo) ListLowStockCandidates(ctx context.Context, globalThreshold types.Quantity, limit int) ([]*reports.LowStockCandidate, error) {
	sql := `
		SELECT b.product_id,
			   p.sku,
			   p.name,
			   p.base_unit,
			   b.on_hand,
			   COALESCE(p.reorder_point, $1) AS threshold
		FROM stock_balances b
		JOIN products p ON p.id = b.product_id
		WHERE p.is_active
		  AND b.on_hand <= COALESCE(p.reorder_point, $1)
		ORDER BY b.on_hand ASC
		LIMIT $2
	`

	var candidates []*reports.LowStockCandidate
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &candidates, sql, globalThreshold, limit); err != nil {
		return nil, fmt.Errorf("select low stock candidates: %w", err)
	}

	return candidates, nil
}

// Ensure interface compliance.
var (
	_ ledger.Repository     = (*LedgerRepo)(nil)
	_ reports.BalanceSource = (*LedgerRepo)(nil)
)
