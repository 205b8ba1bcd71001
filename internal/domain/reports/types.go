package reports

import (
	"time"

	"stockledger/internal/core/id"
	"stockledger/internal/core/types"
	"stockledger/internal/domain/ledger"
)

// ProductBalance is the balance view returned to callers: the raw
// on-hand figure enriched with product info and the low-stock verdict.
type ProductBalance struct {
	ProductID   id.ID          `json:"productId"`
	SKU         string         `json:"sku"`
	Name        string         `json:"name"`
	BaseUnit    string         `json:"baseUnit"`
	OnHand      types.Quantity `json:"onHand"`
	Threshold   types.Quantity `json:"threshold"`
	IsLowStock  bool           `json:"isLowStock"`
	LastMovedAt *time.Time     `json:"lastMovedAt,omitempty"`
}

// LowStockCandidate is one row of the storage-side pre-filter: every
// balance at or below its effective threshold, product info attached.
// The CEL rule makes the final call.
type LowStockCandidate struct {
	ProductID id.ID          `db:"product_id"`
	SKU       string         `db:"sku"`
	Name      string         `db:"name"`
	BaseUnit  string         `db:"base_unit"`
	OnHand    types.Quantity `db:"on_hand"`
	Threshold types.Quantity `db:"threshold"`
}

// LowStockItem is one line of the low-stock report.
type LowStockItem struct {
	ProductID id.ID          `json:"productId"`
	SKU       string         `json:"sku"`
	Name      string         `json:"name"`
	BaseUnit  string         `json:"baseUnit"`
	OnHand    types.Quantity `json:"onHand"`
	Threshold types.Quantity `json:"threshold"`
}

// MovementPage is one page of the movement journal, newest first.
type MovementPage struct {
	Items  []*ledger.StockMovement `json:"items"`
	Total  int64                   `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}
