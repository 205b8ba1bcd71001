package dto

import (
	"stockledger/internal/core/apperror"
	"stockledger/internal/domain/catalogs/workorder"
)

// CreateWorkOrderRequest is the wire shape for POST /work-orders.
type CreateWorkOrderRequest struct {
	WONumber      string `json:"woNumber" binding:"required"`
	Title         string `json:"title" binding:"required"`
	CostCenterID  string `json:"costCenterId" binding:"required"`
	CostElementID string `json:"costElementId" binding:"required"`
}

func (r *CreateWorkOrderRequest) ToModel() (*workorder.WorkOrder, error) {
	costCenterID, err := parseRef(r.CostCenterID, "costCenterId")
	if err != nil {
		return nil, err
	}
	costElementID, err := parseRef(r.CostElementID, "costElementId")
	if err != nil {
		return nil, err
	}
	return workorder.NewWorkOrder(r.WONumber, r.Title, costCenterID, costElementID), nil
}

// TransitionWorkOrderRequest is the wire shape for POST /work-orders/:id/status.
type TransitionWorkOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

// Target validates and returns the requested status.
func (r *TransitionWorkOrderRequest) Target() (workorder.Status, error) {
	status := workorder.Status(r.Status)
	if !status.IsValid() {
		return "", apperror.NewValidation("unknown work order status").
			WithDetail("field", "status").
			WithDetail("value", r.Status)
	}
	return status, nil
}
