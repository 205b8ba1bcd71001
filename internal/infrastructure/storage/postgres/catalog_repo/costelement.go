package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
	"stockledger/internal/domain/catalogs/costelement"
	"stockledger/internal/domain/ledger"
	"stockledger/internal/infrastructure/storage/postgres"
)

const costElementTable = "cost_elements"

// CostElementRepo implements costelement.Repository and the
// allocator's reader view.
type CostElementRepo struct {
	*BaseCatalogRepo[costelement.CostElement]
}

// NewCostElementRepo creates a new cost element repository.
func NewCostElementRepo(txManager *postgres.TxManager) *CostElementRepo {
	return &CostElementRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[costelement.CostElement](txManager, costElementTable, "cost element"),
	}
}

func (r *CostElementRepo) Create(ctx context.Context, c *costelement.CostElement) error {
	return r.insert(ctx, c)
}

func (r *CostElementRepo) Update(ctx context.Context, c *costelement.CostElement) error {
	return r.update(ctx, c.ID, c)
}

func (r *CostElementRepo) GetByID(ctx context.Context, ceID id.ID) (*costelement.CostElement, error) {
	q := r.baseSelect().Where(squirrel.Eq{"id": ceID})
	return r.getOne(ctx, q, ceID)
}

func (r *CostElementRepo) GetByCode(ctx context.Context, code string) (*costelement.CostElement, error) {
	q := r.baseSelect().Where(squirrel.Eq{"code": code})
	return r.getOne(ctx, q, code)
}

func (r *CostElementRepo) List(ctx context.Context, activeOnly bool) ([]*costelement.CostElement, error) {
	q := r.baseSelect().OrderBy("code")
	if activeOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	return r.selectMany(ctx, q)
}

// IsActive reports whether the cost element exists and is active.
func (r *CostElementRepo) IsActive(ctx context.Context, ceID id.ID) (bool, error) {
	sql := `SELECT is_active FROM cost_elements WHERE id = $1`

	var active bool
	err := r.querier(ctx).QueryRow(ctx, sql, ceID).Scan(&active)
	if err != nil {
		if isNoRows(err) {
			return false, apperror.NewNotFound("cost element", ceID)
		}
		return false, fmt.Errorf("check cost element: %w", err)
	}
	return active, nil
}

// isNoRows matches pgx's no-rows sentinel from QueryRow scans.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

var _ costelement.Repository = (*CostElementRepo)(nil)
var _ ledger.CostElementReader = (*CostElementRepo)(nil)
