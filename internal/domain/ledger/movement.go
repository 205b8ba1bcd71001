// Package ledger implements the stock movement engine: the immutable
// movement journal, per-product on-hand balances, unit/cost conversion
// and cost allocation. All writes go through Service.Execute inside a
// single transaction.
package ledger

import (
	"time"

	"stockledger/internal/core/id"
	"stockledger/internal/core/security"
	"stockledger/internal/core/types"
)

// MovementType classifies a ledger entry.
type MovementType string

const (
	// MovementReceive increases stock (goods receipt).
	MovementReceive MovementType = "RECEIVE"
	// MovementIssue decreases stock (sale or transfer out), allocated
	// to an explicit cost center and cost element.
	MovementIssue MovementType = "ISSUE"
	// MovementConsume decreases stock against an OPEN work order; the
	// allocation is derived from the work order.
	MovementConsume MovementType = "CONSUME"
	// MovementAdjust corrects stock in either direction. Owner only.
	MovementAdjust MovementType = "ADJUST"
)

// Action maps the movement type onto the authorization table.
func (t MovementType) Action() security.MovementAction {
	return security.MovementAction(t)
}

// IsValid reports whether t is a known movement type.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementReceive, MovementIssue, MovementConsume, MovementAdjust:
		return true
	}
	return false
}

// StockMovement is one immutable row of the movement journal.
//
// Quantities and costs are stored twice: as entered (input unit) and
// converted to the product's base unit. QtyBase is signed; the sign
// encodes direction, so RECEIVE rows are positive and ISSUE/CONSUME
// rows negative. ValueTotal is computed from the input pair, which
// keeps it exact regardless of the conversion factor.
type StockMovement struct {
	ID           id.ID        `db:"id" json:"id"`
	MovementType MovementType `db:"movement_type" json:"movementType"`
	ProductID    id.ID        `db:"product_id" json:"productId"`

	QtyInput  types.Quantity `db:"qty_input" json:"qtyInput"`
	UnitInput string         `db:"unit_input" json:"unitInput"`

	QtyBase  types.Quantity `db:"qty_base" json:"qtyBase"`
	UnitBase string         `db:"unit_base" json:"unitBase"`

	UnitCostInput types.Money `db:"unit_cost_input" json:"unitCostInput"`
	UnitCostBase  types.Money `db:"unit_cost_base" json:"unitCostBase"`
	ValueTotal    types.Money `db:"value_total" json:"valueTotal"`

	// BalanceAfter is the product's on-hand balance immediately after
	// this movement was applied, captured inside the same transaction.
	BalanceAfter types.Quantity `db:"balance_after" json:"balanceAfter"`

	CostCenterID  *id.ID `db:"cost_center_id" json:"costCenterId,omitempty"`
	CostElementID *id.ID `db:"cost_element_id" json:"costElementId,omitempty"`
	WorkOrderID   *id.ID `db:"work_order_id" json:"workOrderId,omitempty"`

	Note        string    `db:"note" json:"note,omitempty"`
	PerformedBy string    `db:"performed_by" json:"performedBy"`
	PerformedAt time.Time `db:"performed_at" json:"performedAt"`
}

// StockBalance is the per-product running balance maintained by the
// engine. OnHand is always in the product's base unit and never
// negative.
type StockBalance struct {
	ProductID      id.ID          `db:"product_id" json:"productId"`
	OnHand         types.Quantity `db:"on_hand" json:"onHand"`
	LastMovementID *id.ID         `db:"last_movement_id" json:"lastMovementId,omitempty"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updatedAt"`
}
