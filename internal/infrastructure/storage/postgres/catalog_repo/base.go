// Package catalog_repo provides PostgreSQL implementations of the
// master-data repositories.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockledger/internal/core/apperror"
	"stockledger/internal/infrastructure/storage/postgres"
)

// BaseCatalogRepo carries the shared query plumbing of the catalog
// repositories: statement builder, column list derived from db tags,
// and querier resolution through the transaction manager.
type BaseCatalogRepo[T any] struct {
	table      string
	entityName string
	columns    []string
	builder    squirrel.StatementBuilderType
	txManager  *postgres.TxManager
}

// NewBaseCatalogRepo creates the shared repo base for entity type T.
func NewBaseCatalogRepo[T any](txManager *postgres.TxManager, table, entityName string) *BaseCatalogRepo[T] {
	return &BaseCatalogRepo[T]{
		table:      table,
		entityName: entityName,
		columns:    postgres.ExtractDBColumns[T](),
		builder:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		txManager:  txManager,
	}
}

func (r *BaseCatalogRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.builder.Select(r.columns...).From(r.table)
}

func (r *BaseCatalogRepo[T]) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// insert writes one row from the entity's db-tagged fields.
func (r *BaseCatalogRepo[T]) insert(ctx context.Context, row any) error {
	sql, args, err := r.builder.Insert(r.table).
		SetMap(postgres.StructToMap(row)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.entityName, err)
	}
	return nil
}

// update rewrites one row by id from the entity's db-tagged fields.
func (r *BaseCatalogRepo[T]) update(ctx context.Context, idValue any, row any) error {
	cols := postgres.StructToMap(row)
	delete(cols, "id")

	sql, args, err := r.builder.Update(r.table).
		SetMap(cols).
		Where(squirrel.Eq{"id": idValue}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update %s: %w", r.entityName, err)
	}
	return nil
}

// getOne runs a single-row select, mapping missing rows to NOT_FOUND
// keyed by the lookup value.
func (r *BaseCatalogRepo[T]) getOne(ctx context.Context, q squirrel.SelectBuilder, key any) (*T, error) {
	sql, args, err := q.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row T
	if err := pgxscan.Get(ctx, r.querier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(r.entityName, key)
		}
		return nil, fmt.Errorf("get %s: %w", r.entityName, err)
	}
	return &row, nil
}

// selectMany runs a multi-row select.
func (r *BaseCatalogRepo[T]) selectMany(ctx context.Context, q squirrel.SelectBuilder) ([]*T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []*T
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", r.entityName, err)
	}
	return rows, nil
}
