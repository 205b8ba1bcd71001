// Package workorder provides the Work Order catalog.
// CONSUME movements are tied to a work order; only OPEN work orders
// accept consumption, and they carry the cost center the consumption
// is allocated to.
package workorder

import (
	"context"
	"time"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
)

// Status is the work order lifecycle state.
type Status string

const (
	StatusDraft  Status = "DRAFT"
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// transitions is the full state machine: DRAFT → OPEN → CLOSED.
var transitions = map[Status]Status{
	StatusDraft: StatusOpen,
	StatusOpen:  StatusClosed,
}

// WorkOrder represents a production/service job.
type WorkOrder struct {
	ID            id.ID     `db:"id" json:"id"`
	WONumber      string    `db:"wo_number" json:"woNumber"`
	Title         string    `db:"title" json:"title"`
	Status        Status    `db:"status" json:"status"`
	CostCenterID  id.ID     `db:"cost_center_id" json:"costCenterId"`
	CostElementID id.ID     `db:"cost_element_id" json:"costElementId"`
	CreatedBy     string    `db:"created_by" json:"createdBy"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// NewWorkOrder creates a DRAFT work order with generated id.
func NewWorkOrder(woNumber, title string, costCenterID, costElementID id.ID) *WorkOrder {
	now := time.Now().UTC()
	return &WorkOrder{
		ID:            id.New(),
		WONumber:      woNumber,
		Title:         title,
		Status:        StatusDraft,
		CostCenterID:  costCenterID,
		CostElementID: costElementID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate checks entity invariants.
func (w *WorkOrder) Validate(ctx context.Context) error {
	if w.WONumber == "" {
		return apperror.NewValidation("work order number is required").
			WithDetail("field", "woNumber")
	}
	if w.Title == "" {
		return apperror.NewValidation("title is required").
			WithDetail("field", "title")
	}
	if !w.Status.IsValid() {
		return apperror.NewValidation("invalid work order status").
			WithDetail("field", "status").
			WithDetail("value", string(w.Status))
	}
	if id.IsNil(w.CostCenterID) {
		return apperror.NewValidation("cost center is required").
			WithDetail("field", "costCenterId")
	}
	if id.IsNil(w.CostElementID) {
		return apperror.NewValidation("cost element is required").
			WithDetail("field", "costElementId")
	}
	return nil
}

// CanTransitionTo reports whether the state machine allows the move.
func (w *WorkOrder) CanTransitionTo(target Status) bool {
	return transitions[w.Status] == target
}

// TransitionTo advances the work order state, rejecting any move the
// state machine does not allow (including backwards moves).
func (w *WorkOrder) TransitionTo(target Status) error {
	if !w.CanTransitionTo(target) {
		return apperror.NewConflict("invalid work order status transition").
			WithDetail("from", string(w.Status)).
			WithDetail("to", string(target))
	}
	w.Status = target
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// IsOpen reports whether the work order accepts consumption.
func (w *WorkOrder) IsOpen() bool {
	return w.Status == StatusOpen
}

// IsValid reports whether s is a known lifecycle state.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusOpen, StatusClosed:
		return true
	}
	return false
}

// Repository defines persistence operations for work orders.
type Repository interface {
	Create(ctx context.Context, w *WorkOrder) error
	Update(ctx context.Context, w *WorkOrder) error
	GetByID(ctx context.Context, woID id.ID) (*WorkOrder, error)
	GetByNumber(ctx context.Context, woNumber string) (*WorkOrder, error)
	List(ctx context.Context, status *Status) ([]*WorkOrder, error)
}
