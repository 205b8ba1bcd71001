package reports

import (
	"context"
	"testing"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
	"stockledger/internal/core/types"
	"stockledger/internal/domain/catalogs/product"
	"stockledger/internal/domain/ledger"
)

type stubProducts struct {
	products map[id.ID]*product.Product
}

func (s *stubProducts) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	p, ok := s.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID)
	}
	return p, nil
}

type stubBalances struct {
	balances   map[id.ID]*ledger.StockBalance
	candidates []*LowStockCandidate
	movements  []*ledger.StockMovement
	total      int64
}

func (s *stubBalances) GetBalance(ctx context.Context, productID id.ID) (*ledger.StockBalance, error) {
	if b, ok := s.balances[productID]; ok {
		return b, nil
	}
	return &ledger.StockBalance{ProductID: productID}, nil
}

func (s *stubBalances) ListMovements(ctx context.Context, filter ledger.MovementFilter) ([]*ledger.StockMovement, int64, error) {
	return s.movements, s.total, nil
}

func (s *stubBalances) ListLowStockCandidates(ctx context.Context, globalThreshold types.Quantity, limit int) ([]*LowStockCandidate, error) {
	return s.candidates, nil
}

var (
	widgetID = id.MustParse("018f0000-0000-7000-8000-000000000011")
	boltID   = id.MustParse("018f0000-0000-7000-8000-000000000012")
)

func newReader(balances *stubBalances, ruleExpr string) *Service {
	rp := types.NewQuantityFromInt(25)
	products := &stubProducts{products: map[id.ID]*product.Product{
		widgetID: {ID: widgetID, SKU: "WID-1", Name: "Widget", BaseUnit: "PCS"},
		boltID:   {ID: boltID, SKU: "BLT-1", Name: "Bolt", BaseUnit: "PCS", ReorderPoint: &rp},
	}}
	return NewService(products, balances, MustCompileLowStockRule(ruleExpr), types.NewQuantityFromInt(10))
}

func TestGetBalance_LowStockVerdict(t *testing.T) {
	tests := []struct {
		name          string
		productID     id.ID
		onHand        int64
		wantThreshold int64
		wantLow       bool
	}{
		{"above global threshold", widgetID, 11, 10, false},
		{"at global threshold", widgetID, 10, 10, true},
		{"reorder point override", boltID, 20, 25, true},
		{"above reorder point", boltID, 30, 25, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := &stubBalances{balances: map[id.ID]*ledger.StockBalance{
				tt.productID: {ProductID: tt.productID, OnHand: types.NewQuantityFromInt(tt.onHand)},
			}}
			svc := newReader(balances, DefaultLowStockRule)

			pb, err := svc.GetBalance(context.Background(), tt.productID)
			if err != nil {
				t.Fatalf("GetBalance failed: %v", err)
			}
			if pb.Threshold != types.NewQuantityFromInt(tt.wantThreshold) {
				t.Errorf("Threshold: want %d, got %s", tt.wantThreshold, pb.Threshold)
			}
			if pb.IsLowStock != tt.wantLow {
				t.Errorf("IsLowStock: want %v, got %v", tt.wantLow, pb.IsLowStock)
			}
		})
	}
}

func TestGetBalance_NeverMovedReportsZero(t *testing.T) {
	svc := newReader(&stubBalances{}, DefaultLowStockRule)

	pb, err := svc.GetBalance(context.Background(), widgetID)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if pb.OnHand != 0 {
		t.Errorf("OnHand: want 0, got %s", pb.OnHand)
	}
	if !pb.IsLowStock {
		t.Error("zero balance must be flagged low")
	}
	if pb.LastMovedAt != nil {
		t.Error("never-moved product must not report LastMovedAt")
	}
}

func TestGetBalance_UnknownProduct(t *testing.T) {
	svc := newReader(&stubBalances{}, DefaultLowStockRule)

	_, err := svc.GetBalance(context.Background(), id.New())
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestLowStock_RuleFilters(t *testing.T) {
	balances := &stubBalances{candidates: []*LowStockCandidate{
		{ProductID: widgetID, SKU: "WID-1", OnHand: 0, Threshold: types.NewQuantityFromInt(10)},
		{ProductID: boltID, SKU: "BLT-1", OnHand: types.NewQuantityFromInt(20), Threshold: types.NewQuantityFromInt(25)},
	}}

	// Stricter rule than the storage pre-filter: only hard zero counts.
	svc := newReader(balances, "on_hand == 0.0")

	items, err := svc.LowStock(context.Background(), 0)
	if err != nil {
		t.Fatalf("LowStock failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("want 1 item, got %d", len(items))
	}
	if items[0].SKU != "WID-1" {
		t.Errorf("want WID-1, got %s", items[0].SKU)
	}
}

func TestMovementHistory_Pagination(t *testing.T) {
	balances := &stubBalances{
		movements: []*ledger.StockMovement{{ID: id.New()}, {ID: id.New()}},
		total:     7,
	}
	svc := newReader(balances, DefaultLowStockRule)

	page, err := svc.MovementHistory(context.Background(), widgetID, 500, -3)
	if err != nil {
		t.Fatalf("MovementHistory failed: %v", err)
	}
	if page.Total != 7 {
		t.Errorf("Total: want 7, got %d", page.Total)
	}
	if page.Limit != maxPageLimit {
		t.Errorf("Limit must be capped at %d, got %d", maxPageLimit, page.Limit)
	}
	if page.Offset != 0 {
		t.Errorf("negative offset must clamp to 0, got %d", page.Offset)
	}
}

func TestCompileLowStockRule(t *testing.T) {
	if _, err := CompileLowStockRule("on_hand <"); err == nil {
		t.Error("expected compile error for malformed expression")
	}
	if _, err := CompileLowStockRule("on_hand + threshold"); err == nil {
		t.Error("expected type error for non-bool expression")
	}

	rule, err := CompileLowStockRule("on_hand <= threshold * 2.0")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	low, err := rule.Eval(15, 10)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if !low {
		t.Error("15 <= 10*2 must be low")
	}
}
