package product

import (
	"context"
	"testing"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/types"
)

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name        string
		productType ProductType
		baseUnit    string
		cost        string
		wantErr     bool
		wantField   string
	}{
		{
			name:        "material below cost floor",
			productType: TypeMaterial,
			baseUnit:    "KG",
			cost:        "0.50",
			wantErr:     true,
			wantField:   "cost",
		},
		{
			name:        "material at cost floor",
			productType: TypeMaterial,
			baseUnit:    "KG",
			cost:        "1.00",
		},
		{
			name:        "material above cost floor",
			productType: TypeMaterial,
			baseUnit:    "KG",
			cost:        "12.00",
		},
		{
			name:        "floor does not apply to PRODUCT",
			productType: TypeProduct,
			baseUnit:    "PCS",
			cost:        "0.50",
		},
		{
			name:        "floor does not apply to CONSUMABLE",
			productType: TypeConsumable,
			baseUnit:    "LTR",
			cost:        "0.50",
		},
		{
			name:        "negative cost",
			productType: TypeProduct,
			baseUnit:    "PCS",
			cost:        "-1.00",
			wantErr:     true,
			wantField:   "cost",
		},
		{
			name:        "unknown product type",
			productType: ProductType("SERVICE"),
			baseUnit:    "PCS",
			cost:        "1.00",
			wantErr:     true,
			wantField:   "productType",
		},
		{
			name:        "base unit outside conversion table",
			productType: TypeProduct,
			baseUnit:    "PALLET",
			cost:        "1.00",
			wantErr:     true,
			wantField:   "baseUnit",
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProduct("SKU-1", "Test item", tt.productType, tt.baseUnit, types.MustMoney(tt.cost))

			err := p.Validate(ctx)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error, got nil")
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

func TestProduct_Validate_RequiredFields(t *testing.T) {
	ctx := context.Background()

	noSKU := NewProduct("", "Item", TypeProduct, "PCS", types.MustMoney("1.00"))
	if err := noSKU.Validate(ctx); err == nil {
		t.Error("empty sku should fail")
	}

	noName := NewProduct("SKU-1", "", TypeProduct, "PCS", types.MustMoney("1.00"))
	if err := noName.Validate(ctx); err == nil {
		t.Error("empty name should fail")
	}

	negReorder := NewProduct("SKU-1", "Item", TypeProduct, "PCS", types.MustMoney("1.00"))
	rp := types.NewQuantityFromInt(-5)
	negReorder.ReorderPoint = &rp
	if err := negReorder.Validate(ctx); err == nil {
		t.Error("negative reorder point should fail")
	}
}
