package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
	"stockledger/internal/domain/catalogs/costcenter"
	"stockledger/internal/domain/ledger"
	"stockledger/internal/infrastructure/storage/postgres"
)

const costCenterTable = "cost_centers"

// CostCenterRepo implements costcenter.Repository and the allocator's
// reader view.
type CostCenterRepo struct {
	*BaseCatalogRepo[costcenter.CostCenter]
}

// NewCostCenterRepo creates a new cost center repository.
func NewCostCenterRepo(txManager *postgres.TxManager) *CostCenterRepo {
	return &CostCenterRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[costcenter.CostCenter](txManager, costCenterTable, "cost center"),
	}
}

func (r *CostCenterRepo) Create(ctx context.Context, c *costcenter.CostCenter) error {
	return r.insert(ctx, c)
}

func (r *CostCenterRepo) Update(ctx context.Context, c *costcenter.CostCenter) error {
	return r.update(ctx, c.ID, c)
}

func (r *CostCenterRepo) GetByID(ctx context.Context, ccID id.ID) (*costcenter.CostCenter, error) {
	q := r.baseSelect().Where(squirrel.Eq{"id": ccID})
	return r.getOne(ctx, q, ccID)
}

func (r *CostCenterRepo) GetByCode(ctx context.Context, code string) (*costcenter.CostCenter, error) {
	q := r.baseSelect().Where(squirrel.Eq{"code": code})
	return r.getOne(ctx, q, code)
}

func (r *CostCenterRepo) List(ctx context.Context, activeOnly bool) ([]*costcenter.CostCenter, error) {
	q := r.baseSelect().OrderBy("code")
	if activeOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	return r.selectMany(ctx, q)
}

// IsActive reports whether the cost center exists and is active.
func (r *CostCenterRepo) IsActive(ctx context.Context, ccID id.ID) (bool, error) {
	sql := `SELECT is_active FROM cost_centers WHERE id = $1`

	var active bool
	err := r.querier(ctx).QueryRow(ctx, sql, ccID).Scan(&active)
	if err != nil {
		if isNoRows(err) {
			return false, apperror.NewNotFound("cost center", ccID)
		}
		return false, fmt.Errorf("check cost center: %w", err)
	}
	return active, nil
}

var _ costcenter.Repository = (*CostCenterRepo)(nil)
var _ ledger.CostCenterReader = (*CostCenterRepo)(nil)
