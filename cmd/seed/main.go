// Command seed loads demo master data: units are implicit in the
// product rows, so seeding products, cost centers, cost elements and
// work orders is enough to exercise every movement type.
package main

import (
	"context"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"stockledger/internal/core/id"
	"stockledger/internal/core/types"
	"stockledger/internal/infrastructure/storage/postgres"
	"stockledger/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{Level: "info"})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatalw("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("pool", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	inserter := postgres.NewBatchInserter(txManager)
	executor := postgres.NewBatchExecutor(txManager)

	err = txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		now := time.Now().UTC()

		ccProduction := id.New()
		ccWarehouse := id.New()
		if _, err := inserter.CopyFromSlice(ctx, "cost_centers",
			[]string{"id", "code", "name", "is_active", "created_at", "updated_at"},
			[][]any{
				{ccProduction, "CC-100", "Production", true, now, now},
				{ccWarehouse, "CC-200", "Warehouse", true, now, now},
			}); err != nil {
			return err
		}

		ceMaterials := id.New()
		ceScrap := id.New()
		if _, err := inserter.CopyFromSlice(ctx, "cost_elements",
			[]string{"id", "code", "name", "is_active", "created_at", "updated_at"},
			[][]any{
				{ceMaterials, "CE-400", "Raw materials", true, now, now},
				{ceScrap, "CE-410", "Scrap and rework", true, now, now},
			}); err != nil {
			return err
		}

		insertWO := `
			INSERT INTO work_orders (id, wo_number, title, status, cost_center_id, cost_element_id, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		if err := executor.ExecuteBatch(ctx, []postgres.BatchQuery{
			{SQL: insertWO, Args: []any{id.New(), "WO-2026-001", "Assembly batch 1", "OPEN", ccProduction, ceMaterials, "seed", now, now}},
			{SQL: insertWO, Args: []any{id.New(), "WO-2026-002", "Assembly batch 2", "DRAFT", ccProduction, ceMaterials, "seed", now, now}},
		}); err != nil {
			return err
		}

		reorder := types.NewQuantityFromInt(50).Int64Scaled()
		if _, err := inserter.CopyFromSlice(ctx, "products",
			[]string{"id", "sku", "name", "product_type", "base_unit", "cost", "price", "reorder_point", "is_active", "created_by", "created_at", "updated_at"},
			[][]any{
				{id.New(), "WIDGET-01", "Widget", "PRODUCT", "PCS", decimal.RequireFromString("2.50"), decimal.RequireFromString("4.99"), reorder, true, "seed", now, now},
				{id.New(), "STEEL-01", "Steel sheet", "MATERIAL", "KG", decimal.RequireFromString("12.00"), nil, nil, true, "seed", now, now},
				{id.New(), "OIL-01", "Machine oil", "CONSUMABLE", "LTR", decimal.RequireFromString("8.75"), nil, nil, true, "seed", now, now},
			}); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		log.Fatalw("seed failed", "error", err)
	}

	log.Infow("seed complete")
}
