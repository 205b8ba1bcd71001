package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
	"stockledger/internal/domain/catalogs/workorder"
	"stockledger/internal/domain/ledger"
	"stockledger/internal/infrastructure/storage/postgres"
)

const workOrderTable = "work_orders"

// WorkOrderRepo implements workorder.Repository and the allocator's
// reader view.
type WorkOrderRepo struct {
	*BaseCatalogRepo[workorder.WorkOrder]
}

// NewWorkOrderRepo creates a new work order repository.
func NewWorkOrderRepo(txManager *postgres.TxManager) *WorkOrderRepo {
	return &WorkOrderRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[workorder.WorkOrder](txManager, workOrderTable, "work order"),
	}
}

func (r *WorkOrderRepo) Create(ctx context.Context, w *workorder.WorkOrder) error {
	return r.insert(ctx, w)
}

func (r *WorkOrderRepo) Update(ctx context.Context, w *workorder.WorkOrder) error {
	return r.update(ctx, w.ID, w)
}

func (r *WorkOrderRepo) GetByID(ctx context.Context, woID id.ID) (*workorder.WorkOrder, error) {
	q := r.baseSelect().Where(squirrel.Eq{"id": woID})
	return r.getOne(ctx, q, woID)
}

func (r *WorkOrderRepo) GetByNumber(ctx context.Context, woNumber string) (*workorder.WorkOrder, error) {
	q := r.baseSelect().Where(squirrel.Eq{"wo_number": woNumber})
	return r.getOne(ctx, q, woNumber)
}

func (r *WorkOrderRepo) List(ctx context.Context, status *workorder.Status) ([]*workorder.WorkOrder, error) {
	q := r.baseSelect().OrderBy("wo_number")
	if status != nil {
		q = q.Where(squirrel.Eq{"status": *status})
	}
	return r.selectMany(ctx, q)
}

// GetInfo returns the slice of the work order the allocator needs.
func (r *WorkOrderRepo) GetInfo(ctx context.Context, woID id.ID) (*ledger.WorkOrderInfo, error) {
	sql := `
		SELECT id, cost_center_id, status = 'OPEN' AS open
		FROM work_orders
		WHERE id = $1
	`

	var info ledger.WorkOrderInfo
	if err := pgxscan.Get(ctx, r.querier(ctx), &info, sql, woID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("work order", woID)
		}
		return nil, fmt.Errorf("get work order info: %w", err)
	}
	return &info, nil
}

var _ workorder.Repository = (*WorkOrderRepo)(nil)
var _ ledger.WorkOrderReader = (*WorkOrderRepo)(nil)
