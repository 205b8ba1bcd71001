package workorder

import (
	"context"
	"testing"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
)

func newTestWorkOrder() *WorkOrder {
	return NewWorkOrder("WO-001", "Test batch",
		id.MustParse("018f4a10-0000-7000-8000-0000000000c1"),
		id.MustParse("018f4a10-0000-7000-8000-0000000000e1"),
	)
}

func TestWorkOrder_Lifecycle(t *testing.T) {
	w := newTestWorkOrder()
	if w.Status != StatusDraft {
		t.Fatalf("new work order status = %s, want DRAFT", w.Status)
	}
	if w.IsOpen() {
		t.Error("DRAFT work order must not accept consumption")
	}

	if err := w.TransitionTo(StatusOpen); err != nil {
		t.Fatalf("DRAFT -> OPEN failed: %v", err)
	}
	if !w.IsOpen() {
		t.Error("OPEN work order must accept consumption")
	}

	if err := w.TransitionTo(StatusClosed); err != nil {
		t.Fatalf("OPEN -> CLOSED failed: %v", err)
	}
	if w.IsOpen() {
		t.Error("CLOSED work order must not accept consumption")
	}
}

func TestWorkOrder_RejectedTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   Status
		target Status
	}{
		{"skip to closed", StatusDraft, StatusClosed},
		{"reopen closed", StatusClosed, StatusOpen},
		{"back to draft", StatusOpen, StatusDraft},
		{"self transition", StatusOpen, StatusOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorkOrder()
			w.Status = tt.from

			err := w.TransitionTo(tt.target)
			if err == nil {
				t.Fatalf("%s -> %s should be rejected", tt.from, tt.target)
			}

			appErr, ok := apperror.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != apperror.CodeConflict {
				t.Errorf("code = %s, want %s", appErr.Code, apperror.CodeConflict)
			}
			if appErr.Details["from"] != string(tt.from) || appErr.Details["to"] != string(tt.target) {
				t.Errorf("details = %v, want from=%s to=%s", appErr.Details, tt.from, tt.target)
			}
			if w.Status != tt.from {
				t.Errorf("status changed to %s on rejected transition", w.Status)
			}
		})
	}
}

func TestWorkOrder_Validate(t *testing.T) {
	ctx := context.Background()

	w := newTestWorkOrder()
	if err := w.Validate(ctx); err != nil {
		t.Fatalf("valid work order rejected: %v", err)
	}

	missing := newTestWorkOrder()
	missing.WONumber = ""
	if err := missing.Validate(ctx); err == nil {
		t.Error("empty wo number should fail")
	}

	noCenter := newTestWorkOrder()
	noCenter.CostCenterID = id.Nil()
	if err := noCenter.Validate(ctx); err == nil {
		t.Error("missing cost center should fail")
	}

	badStatus := newTestWorkOrder()
	badStatus.Status = Status("PAUSED")
	if err := badStatus.Validate(ctx); err == nil {
		t.Error("unknown status should fail")
	}
}
