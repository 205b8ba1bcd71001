package ledger

import (
	"context"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
)

// CostCenterReader is the allocator's view of the cost center catalog.
type CostCenterReader interface {
	IsActive(ctx context.Context, ccID id.ID) (bool, error)
}

// CostElementReader is the allocator's view of the cost element catalog.
type CostElementReader interface {
	IsActive(ctx context.Context, ceID id.ID) (bool, error)
}

// WorkOrderInfo is the slice of a work order the allocator needs.
type WorkOrderInfo struct {
	ID           id.ID
	CostCenterID id.ID
	Open         bool
}

// WorkOrderReader is the allocator's view of the work order catalog.
type WorkOrderReader interface {
	GetInfo(ctx context.Context, woID id.ID) (*WorkOrderInfo, error)
}

// Allocation is the resolved cost assignment of a movement. All fields
// nil for RECEIVE and ADJUST.
type Allocation struct {
	CostCenterID  *id.ID
	CostElementID *id.ID
	WorkOrderID   *id.ID
}

// Allocator resolves cost references for ISSUE and CONSUME movements.
// Every failed resolution is a REFERENCE_ERROR, never a silent null.
type Allocator struct {
	costCenters CostCenterReader
	costElems   CostElementReader
	workOrders  WorkOrderReader
}

// NewAllocator creates a cost allocator over the catalog readers.
func NewAllocator(costCenters CostCenterReader, costElems CostElementReader, workOrders WorkOrderReader) *Allocator {
	return &Allocator{
		costCenters: costCenters,
		costElems:   costElems,
		workOrders:  workOrders,
	}
}

// Allocate resolves the allocation for the given input.
//
// ISSUE: both references must exist and be active. CONSUME: the work
// order must be OPEN and contributes its cost center; the cost element
// is resolved independently. RECEIVE and ADJUST carry no allocation.
func (a *Allocator) Allocate(ctx context.Context, input Input) (Allocation, error) {
	switch in := input.(type) {
	case ReceiveInput, AdjustInput:
		return Allocation{}, nil

	case IssueInput:
		if err := a.checkCostCenter(ctx, in.CostCenterID); err != nil {
			return Allocation{}, err
		}
		if err := a.checkCostElement(ctx, in.CostElementID); err != nil {
			return Allocation{}, err
		}
		cc, ce := in.CostCenterID, in.CostElementID
		return Allocation{CostCenterID: &cc, CostElementID: &ce}, nil

	case ConsumeInput:
		wo, err := a.workOrders.GetInfo(ctx, in.WorkOrderID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return Allocation{}, apperror.NewReference("work order", in.WorkOrderID, "not found")
			}
			return Allocation{}, err
		}
		if !wo.Open {
			return Allocation{}, apperror.NewReference("work order", in.WorkOrderID, "not OPEN")
		}
		if err := a.checkCostElement(ctx, in.CostElementID); err != nil {
			return Allocation{}, err
		}
		cc, ce, woID := wo.CostCenterID, in.CostElementID, wo.ID
		return Allocation{CostCenterID: &cc, CostElementID: &ce, WorkOrderID: &woID}, nil
	}

	return Allocation{}, apperror.NewValidation("unknown movement input").
		WithDetail("movement_type", string(input.Type()))
}

func (a *Allocator) checkCostCenter(ctx context.Context, ccID id.ID) error {
	active, err := a.costCenters.IsActive(ctx, ccID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewReference("cost center", ccID, "not found")
		}
		return err
	}
	if !active {
		return apperror.NewReference("cost center", ccID, "inactive")
	}
	return nil
}

func (a *Allocator) checkCostElement(ctx context.Context, ceID id.ID) error {
	active, err := a.costElems.IsActive(ctx, ceID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewReference("cost element", ceID, "not found")
		}
		return err
	}
	if !active {
		return apperror.NewReference("cost element", ceID, "inactive")
	}
	return nil
}
