package ledger

import (
	"context"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
	"stockledger/internal/core/types"
)

// Input is the sum type of movement requests. Each variant carries
// exactly the fields its movement type allows, so invalid combinations
// (a cost center on RECEIVE, a caller-supplied cost center on CONSUME)
// cannot be expressed here at all. The HTTP layer rejects them while
// decoding the wire payload.
type Input interface {
	// Type returns the movement type of the variant.
	Type() MovementType
	// Product returns the target product id.
	Product() id.ID
	// Validate checks variant-local invariants. Reference checks
	// (product active, cost center known) happen in the service.
	Validate(ctx context.Context) error

	sealed()
}

// ReceiveInput records a goods receipt. The only variant that accepts
// a non-base unit and carries its own acquisition cost.
type ReceiveInput struct {
	ProductID id.ID
	Qty       types.Quantity
	Unit      string
	UnitCost  types.Money
	Note      string
}

func (in ReceiveInput) Type() MovementType { return MovementReceive }
func (in ReceiveInput) Product() id.ID     { return in.ProductID }
func (in ReceiveInput) sealed()            {}

func (in ReceiveInput) Validate(ctx context.Context) error {
	if id.IsNil(in.ProductID) {
		return apperror.NewValidation("product id is required").
			WithDetail("field", "productId")
	}
	if !in.Qty.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "qty").
			WithDetail("value", in.Qty.String())
	}
	if in.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}
	if !in.UnitCost.IsPositive() {
		return apperror.NewValidation("unit cost must be positive").
			WithDetail("field", "unitCost").
			WithDetail("value", in.UnitCost.String())
	}
	return nil
}

// IssueInput records an outbound issue allocated to an explicit cost
// center and cost element. Always in the product's base unit.
type IssueInput struct {
	ProductID     id.ID
	Qty           types.Quantity
	CostCenterID  id.ID
	CostElementID id.ID
	Note          string
}

func (in IssueInput) Type() MovementType { return MovementIssue }
func (in IssueInput) Product() id.ID     { return in.ProductID }
func (in IssueInput) sealed()            {}

func (in IssueInput) Validate(ctx context.Context) error {
	if id.IsNil(in.ProductID) {
		return apperror.NewValidation("product id is required").
			WithDetail("field", "productId")
	}
	if !in.Qty.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "qty").
			WithDetail("value", in.Qty.String())
	}
	if id.IsNil(in.CostCenterID) {
		return apperror.NewValidation("cost center is required for ISSUE").
			WithDetail("field", "costCenterId")
	}
	if id.IsNil(in.CostElementID) {
		return apperror.NewValidation("cost element is required for ISSUE").
			WithDetail("field", "costElementId")
	}
	return nil
}

// ConsumeInput records consumption against a work order. The cost
// center is derived from the work order, never supplied by the caller.
type ConsumeInput struct {
	ProductID     id.ID
	Qty           types.Quantity
	WorkOrderID   id.ID
	CostElementID id.ID
	Note          string
}

func (in ConsumeInput) Type() MovementType { return MovementConsume }
func (in ConsumeInput) Product() id.ID     { return in.ProductID }
func (in ConsumeInput) sealed()            {}

func (in ConsumeInput) Validate(ctx context.Context) error {
	if id.IsNil(in.ProductID) {
		return apperror.NewValidation("product id is required").
			WithDetail("field", "productId")
	}
	if !in.Qty.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "qty").
			WithDetail("value", in.Qty.String())
	}
	if id.IsNil(in.WorkOrderID) {
		return apperror.NewValidation("work order is required for CONSUME").
			WithDetail("field", "workOrderId")
	}
	if id.IsNil(in.CostElementID) {
		return apperror.NewValidation("cost element is required for CONSUME").
			WithDetail("field", "costElementId")
	}
	return nil
}

// AdjustInput corrects stock by a signed delta. Positive deltas add,
// negative deltas remove; the non-negativity floor still applies.
type AdjustInput struct {
	ProductID id.ID
	Delta     types.Quantity
	Note      string
}

func (in AdjustInput) Type() MovementType { return MovementAdjust }
func (in AdjustInput) Product() id.ID     { return in.ProductID }
func (in AdjustInput) sealed()            {}

func (in AdjustInput) Validate(ctx context.Context) error {
	if id.IsNil(in.ProductID) {
		return apperror.NewValidation("product id is required").
			WithDetail("field", "productId")
	}
	if in.Delta.IsZero() {
		return apperror.NewValidation("adjustment delta cannot be zero").
			WithDetail("field", "delta")
	}
	if in.Note == "" {
		return apperror.NewValidation("a note is required for ADJUST").
			WithDetail("field", "note")
	}
	return nil
}
