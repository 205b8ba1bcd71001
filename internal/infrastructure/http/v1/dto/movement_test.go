package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/types"
	"stockledger/internal/domain/ledger"
)

const (
	testProductID     = "018f4a10-0000-7000-8000-000000000001"
	testCostCenterID  = "018f4a10-0000-7000-8000-0000000000c1"
	testCostElementID = "018f4a10-0000-7000-8000-0000000000e1"
	testWorkOrderID   = "018f4a10-0000-7000-8000-0000000000a1"
)

func money(t *testing.T, s string) *types.Money {
	t.Helper()
	m, err := types.NewMoneyFromString(s)
	if err != nil {
		t.Fatalf("bad money literal %q: %v", s, err)
	}
	return &m
}

func TestToInput_Variants(t *testing.T) {
	receive := CreateMovementRequest{
		MovementType: "RECEIVE",
		ProductID:    testProductID,
		Qty:          types.NewQuantityFromInt(2),
		Unit:         "DOZEN",
		UnitCost:     money(t, "25.50"),
	}
	input, err := receive.ToInput()
	if err != nil {
		t.Fatalf("RECEIVE decode failed: %v", err)
	}
	if _, ok := input.(ledger.ReceiveInput); !ok {
		t.Fatalf("expected ReceiveInput, got %T", input)
	}

	issue := CreateMovementRequest{
		MovementType:  "ISSUE",
		ProductID:     testProductID,
		Qty:           types.NewQuantityFromInt(5),
		CostCenterID:  testCostCenterID,
		CostElementID: testCostElementID,
	}
	input, err = issue.ToInput()
	if err != nil {
		t.Fatalf("ISSUE decode failed: %v", err)
	}
	if _, ok := input.(ledger.IssueInput); !ok {
		t.Fatalf("expected IssueInput, got %T", input)
	}

	consume := CreateMovementRequest{
		MovementType:  "CONSUME",
		ProductID:     testProductID,
		Qty:           types.NewQuantityFromInt(3),
		WorkOrderID:   testWorkOrderID,
		CostElementID: testCostElementID,
	}
	input, err = consume.ToInput()
	if err != nil {
		t.Fatalf("CONSUME decode failed: %v", err)
	}
	if _, ok := input.(ledger.ConsumeInput); !ok {
		t.Fatalf("expected ConsumeInput, got %T", input)
	}

	adjust := CreateMovementRequest{
		MovementType: "ADJUST",
		ProductID:    testProductID,
		Qty:          types.NewQuantityFromInt(-4),
		Note:         "cycle count",
	}
	input, err = adjust.ToInput()
	if err != nil {
		t.Fatalf("ADJUST decode failed: %v", err)
	}
	adj, ok := input.(ledger.AdjustInput)
	if !ok {
		t.Fatalf("expected AdjustInput, got %T", input)
	}
	if !adj.Delta.IsNegative() {
		t.Errorf("ADJUST delta should stay signed, got %s", adj.Delta)
	}
}

func TestToInput_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateMovementRequest
		wantField string
	}{
		{
			name: "unknown movement type",
			req: CreateMovementRequest{
				MovementType: "TRANSFER",
				ProductID:    testProductID,
			},
			wantField: "movementType",
		},
		{
			name: "bad product id",
			req: CreateMovementRequest{
				MovementType: "RECEIVE",
				ProductID:    "not-a-uuid",
			},
			wantField: "productId",
		},
		{
			name: "unit on ISSUE",
			req: CreateMovementRequest{
				MovementType:  "ISSUE",
				ProductID:     testProductID,
				Unit:          "DOZEN",
				CostCenterID:  testCostCenterID,
				CostElementID: testCostElementID,
			},
			wantField: "unit",
		},
		{
			name: "unit cost on ADJUST",
			req: func() CreateMovementRequest {
				m := types.MustMoney("5.00")
				return CreateMovementRequest{
					MovementType: "ADJUST",
					ProductID:    testProductID,
					UnitCost:     &m,
				}
			}(),
			wantField: "unitCost",
		},
		{
			name: "missing unit cost on RECEIVE",
			req: CreateMovementRequest{
				MovementType: "RECEIVE",
				ProductID:    testProductID,
				Unit:         "PCS",
			},
			wantField: "unitCost",
		},
		{
			name: "cost center on RECEIVE",
			req: CreateMovementRequest{
				MovementType: "RECEIVE",
				ProductID:    testProductID,
				CostCenterID: testCostCenterID,
			},
			wantField: "costCenterId",
		},
		{
			name: "cost center supplied on CONSUME",
			req: CreateMovementRequest{
				MovementType:  "CONSUME",
				ProductID:     testProductID,
				CostCenterID:  testCostCenterID,
				WorkOrderID:   testWorkOrderID,
				CostElementID: testCostElementID,
			},
			wantField: "costCenterId",
		},
		{
			name: "work order on ISSUE",
			req: CreateMovementRequest{
				MovementType:  "ISSUE",
				ProductID:     testProductID,
				WorkOrderID:   testWorkOrderID,
				CostCenterID:  testCostCenterID,
				CostElementID: testCostElementID,
			},
			wantField: "workOrderId",
		},
		{
			name: "allocation on ADJUST",
			req: CreateMovementRequest{
				MovementType:  "ADJUST",
				ProductID:     testProductID,
				CostElementID: testCostElementID,
			},
			wantField: "costElementId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.ToInput()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			appErr, ok := apperror.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != apperror.CodeValidation {
				t.Errorf("code = %s, want %s", appErr.Code, apperror.CodeValidation)
			}
			if got := appErr.Details["field"]; got != tt.wantField {
				t.Errorf("details.field = %v, want %s", got, tt.wantField)
			}
		})
	}
}

func TestToInput_DeprecatedFieldsRejected(t *testing.T) {
	// The legacy fields arrive as JSON, so decode from the wire shape
	// to prove presence detection survives unmarshalling.
	payload := `{
		"movementType": "ISSUE",
		"productId": "` + testProductID + `",
		"qty": 5,
		"cost_center": "CC-MAIN",
		"costElementId": "` + testCostElementID + `"
	}`

	var req CreateMovementRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	_, err := req.ToInput()
	if err == nil {
		t.Fatal("expected deprecated field rejection")
	}
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Details["deprecated_field"] != "cost_center" {
		t.Errorf("rejection must name the deprecated field, got %v", appErr.Details["deprecated_field"])
	}
	if !strings.Contains(appErr.Message, "costCenterId") {
		t.Errorf("rejection must name the replacement, got %q", appErr.Message)
	}

	// Empty string still counts as present.
	empty := ""
	req2 := CreateMovementRequest{
		MovementType:      "RECEIVE",
		ProductID:         testProductID,
		LegacyCostElement: &empty,
	}
	if _, err := req2.ToInput(); err == nil {
		t.Fatal("empty deprecated field must still be rejected")
	}
}
