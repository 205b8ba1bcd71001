package dto

import (
	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
	"stockledger/internal/core/types"
	"stockledger/internal/domain/ledger"
)

// CreateMovementRequest is the wire shape for POST /stock/movements.
//
// The legacy cost_center/cost_element string codes are kept as fields
// only so their presence can be detected and rejected with an error
// that names the replacement. They are never read otherwise.
type CreateMovementRequest struct {
	MovementType string         `json:"movementType" binding:"required"`
	ProductID    string         `json:"productId" binding:"required"`
	Qty          types.Quantity `json:"qty"`
	Unit         string         `json:"unit,omitempty"`
	UnitCost     *types.Money   `json:"unitCost,omitempty"`

	CostCenterID  string `json:"costCenterId,omitempty"`
	CostElementID string `json:"costElementId,omitempty"`
	WorkOrderID   string `json:"workOrderId,omitempty"`

	Note string `json:"note,omitempty"`

	// Deprecated wire fields. Any value here is an error.
	LegacyCostCenter  *string `json:"cost_center,omitempty"`
	LegacyCostElement *string `json:"cost_element,omitempty"`
}

// ToInput decodes the request into the movement sum type. Fields a
// movement type does not allow are rejected here, so the domain layer
// only ever sees well-formed variants.
func (r *CreateMovementRequest) ToInput() (ledger.Input, error) {
	if r.LegacyCostCenter != nil {
		return nil, apperror.NewDeprecatedField("cost_center", "costCenterId")
	}
	if r.LegacyCostElement != nil {
		return nil, apperror.NewDeprecatedField("cost_element", "costElementId")
	}

	movementType := ledger.MovementType(r.MovementType)
	if !movementType.IsValid() {
		return nil, apperror.NewValidation("unknown movement type").
			WithDetail("field", "movementType").
			WithDetail("value", r.MovementType)
	}

	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid product id").
			WithDetail("field", "productId").
			WithDetail("value", r.ProductID)
	}

	if movementType != ledger.MovementReceive {
		if r.Unit != "" {
			return nil, apperror.NewValidation("unit may only be set on RECEIVE").
				WithDetail("field", "unit").
				WithDetail("movementType", r.MovementType)
		}
		if r.UnitCost != nil {
			return nil, apperror.NewValidation("unit cost may only be set on RECEIVE").
				WithDetail("field", "unitCost").
				WithDetail("movementType", r.MovementType)
		}
	}

	switch movementType {
	case ledger.MovementReceive:
		return r.toReceive(productID)
	case ledger.MovementIssue:
		return r.toIssue(productID)
	case ledger.MovementConsume:
		return r.toConsume(productID)
	default:
		return r.toAdjust(productID)
	}
}

func (r *CreateMovementRequest) toReceive(productID id.ID) (ledger.Input, error) {
	if err := r.rejectAllocation(); err != nil {
		return nil, err
	}
	if r.UnitCost == nil {
		return nil, apperror.NewValidation("unit cost is required for RECEIVE").
			WithDetail("field", "unitCost")
	}
	return ledger.ReceiveInput{
		ProductID: productID,
		Qty:       r.Qty,
		Unit:      r.Unit,
		UnitCost:  *r.UnitCost,
		Note:      r.Note,
	}, nil
}

func (r *CreateMovementRequest) toIssue(productID id.ID) (ledger.Input, error) {
	if r.WorkOrderID != "" {
		return nil, apperror.NewValidation("work order is not allowed on ISSUE").
			WithDetail("field", "workOrderId")
	}
	costCenterID, err := parseRef(r.CostCenterID, "costCenterId")
	if err != nil {
		return nil, err
	}
	costElementID, err := parseRef(r.CostElementID, "costElementId")
	if err != nil {
		return nil, err
	}
	return ledger.IssueInput{
		ProductID:     productID,
		Qty:           r.Qty,
		CostCenterID:  costCenterID,
		CostElementID: costElementID,
		Note:          r.Note,
	}, nil
}

func (r *CreateMovementRequest) toConsume(productID id.ID) (ledger.Input, error) {
	// The cost center always comes from the work order.
	if r.CostCenterID != "" {
		return nil, apperror.NewValidation("cost center is derived from the work order on CONSUME").
			WithDetail("field", "costCenterId")
	}
	workOrderID, err := parseRef(r.WorkOrderID, "workOrderId")
	if err != nil {
		return nil, err
	}
	costElementID, err := parseRef(r.CostElementID, "costElementId")
	if err != nil {
		return nil, err
	}
	return ledger.ConsumeInput{
		ProductID:     productID,
		Qty:           r.Qty,
		WorkOrderID:   workOrderID,
		CostElementID: costElementID,
		Note:          r.Note,
	}, nil
}

func (r *CreateMovementRequest) toAdjust(productID id.ID) (ledger.Input, error) {
	if err := r.rejectAllocation(); err != nil {
		return nil, err
	}
	return ledger.AdjustInput{
		ProductID: productID,
		Delta:     r.Qty,
		Note:      r.Note,
	}, nil
}

func (r *CreateMovementRequest) rejectAllocation() error {
	if r.CostCenterID != "" {
		return apperror.NewValidation("cost center is not allowed on " + r.MovementType).
			WithDetail("field", "costCenterId")
	}
	if r.CostElementID != "" {
		return apperror.NewValidation("cost element is not allowed on " + r.MovementType).
			WithDetail("field", "costElementId")
	}
	if r.WorkOrderID != "" {
		return apperror.NewValidation("work order is not allowed on " + r.MovementType).
			WithDetail("field", "workOrderId")
	}
	return nil
}

func parseRef(raw, field string) (id.ID, error) {
	if raw == "" {
		return id.Nil(), apperror.NewValidation(field + " is required").
			WithDetail("field", field)
	}
	parsed, err := id.Parse(raw)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid " + field).
			WithDetail("field", field).
			WithDetail("value", raw)
	}
	return parsed, nil
}
