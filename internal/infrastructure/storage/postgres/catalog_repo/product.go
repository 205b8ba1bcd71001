package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
	"stockledger/internal/domain/catalogs/product"
	"stockledger/internal/domain/ledger"
	"stockledger/internal/infrastructure/storage/postgres"
)

const productTable = "products"

// ProductRepo implements product.Repository and the engine's narrow
// product view.
type ProductRepo struct {
	*BaseCatalogRepo[product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[product.Product](txManager, productTable, "product"),
	}
}

func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	return r.insert(ctx, p)
}

func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	return r.update(ctx, p.ID, p)
}

func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	q := r.baseSelect().Where(squirrel.Eq{"id": productID})
	return r.getOne(ctx, q, productID)
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*product.Product, error) {
	q := r.baseSelect().Where(squirrel.Eq{"sku": sku})
	return r.getOne(ctx, q, sku)
}

func (r *ProductRepo) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	q := r.baseSelect()

	if filter.ProductType != nil {
		q = q.Where(squirrel.Eq{"product_type": *filter.ProductType})
	}
	if filter.ActiveOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}

	q = q.OrderBy("sku")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	return r.selectMany(ctx, q)
}

// GetStockInfo returns the slice of the product the movement engine
// needs. Narrow select, no row lock.
func (r *ProductRepo) GetStockInfo(ctx context.Context, productID id.ID) (*ledger.ProductInfo, error) {
	sql := `
		SELECT id, sku, base_unit, cost, is_active AS active
		FROM products
		WHERE id = $1
	`

	var info ledger.ProductInfo
	if err := pgxscan.Get(ctx, r.querier(ctx), &info, sql, productID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", productID)
		}
		return nil, fmt.Errorf("get product stock info: %w", err)
	}
	return &info, nil
}

var (
	_ product.Repository   = (*ProductRepo)(nil)
	_ ledger.ProductReader = (*ProductRepo)(nil)
)
