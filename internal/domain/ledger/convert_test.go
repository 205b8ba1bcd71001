package ledger

import (
	"testing"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/types"
)

func TestConvert_UnitTable(t *testing.T) {
	tests := []struct {
		name         string
		qty          types.Quantity
		unit         string
		baseUnit     string
		unitCost     string
		wantQtyBase  types.Quantity
		wantCostBase string
		wantValue    string
	}{
		{
			name:         "PCS identity",
			qty:          types.NewQuantityFromInt(10),
			unit:         "PCS",
			baseUnit:     "PCS",
			unitCost:     "3.50",
			wantQtyBase:  types.NewQuantityFromInt(10),
			wantCostBase: "3.50",
			wantValue:    "35.00",
		},
		{
			name:         "DOZEN to PCS",
			qty:          types.NewQuantityFromInt(2),
			unit:         "DOZEN",
			baseUnit:     "PCS",
			unitCost:     "25.50",
			wantQtyBase:  types.NewQuantityFromInt(24),
			wantCostBase: "2.125",
			wantValue:    "51.00",
		},
		{
			name:         "GROSS to PCS",
			qty:          types.NewQuantityFromInt(1),
			unit:         "GROSS",
			baseUnit:     "PCS",
			unitCost:     "144.00",
			wantQtyBase:  types.NewQuantityFromInt(144),
			wantCostBase: "1.00",
			wantValue:    "144.00",
		},
		{
			name:         "KG identity",
			qty:          types.NewQuantityFromFloat64(2.5),
			unit:         "KG",
			baseUnit:     "KG",
			unitCost:     "8.00",
			wantQtyBase:  types.NewQuantityFromFloat64(2.5),
			wantCostBase: "8.00",
			wantValue:    "20.00",
		},
		{
			name:         "fractional DOZEN",
			qty:          types.NewQuantityFromFloat64(0.5),
			unit:         "DOZEN",
			baseUnit:     "PCS",
			unitCost:     "12.00",
			wantQtyBase:  types.NewQuantityFromInt(6),
			wantCostBase: "1.00",
			wantValue:    "6.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := Convert(tt.qty, tt.unit, tt.baseUnit, types.MustMoney(tt.unitCost))
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			if conv.QtyBase != tt.wantQtyBase {
				t.Errorf("QtyBase: want %s, got %s", tt.wantQtyBase, conv.QtyBase)
			}
			if !conv.UnitCostBase.Equal(types.MustMoney(tt.wantCostBase)) {
				t.Errorf("UnitCostBase: want %s, got %s", tt.wantCostBase, conv.UnitCostBase)
			}
			if !conv.ValueTotal.Equal(types.MustMoney(tt.wantValue)) {
				t.Errorf("ValueTotal: want %s, got %s", tt.wantValue, conv.ValueTotal)
			}

			// Round trip: value computed from the base pair must equal
			// the value computed from the input pair.
			roundTrip := conv.QtyBase.Decimal().Mul(conv.UnitCostBase)
			if !roundTrip.Equal(conv.ValueTotal) {
				t.Errorf("round trip mismatch: base pair gives %s, input pair gives %s",
					roundTrip, conv.ValueTotal)
			}
		})
	}
}

func TestConvert_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		baseUnit string
	}{
		{"unknown unit", "CRATE", "PCS"},
		{"count unit against weight base", "DOZEN", "KG"},
		{"weight unit against count base", "KG", "PCS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(types.NewQuantityFromInt(1), tt.unit, tt.baseUnit, types.MustMoney("1.00"))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !apperror.IsCode(err, apperror.CodeValidation) {
				t.Errorf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
}

func TestKnownUnit(t *testing.T) {
	for _, unit := range []string{"PCS", "DOZEN", "GROSS", "KG", "LTR"} {
		if !KnownUnit(unit) {
			t.Errorf("expected %s to be known", unit)
		}
	}
	if KnownUnit("PALLET") {
		t.Error("expected PALLET to be unknown")
	}
}
