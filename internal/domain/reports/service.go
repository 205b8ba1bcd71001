// Package reports provides the read-only balance projections: current
// stock per product, the low-stock report and movement history. It
// never writes; all mutation goes through the ledger.
package reports

import (
	"context"
	"fmt"

	"stockledger/internal/core/id"
	"stockledger/internal/core/types"
	"stockledger/internal/domain/catalogs/product"
	"stockledger/internal/domain/ledger"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// ProductSource is the reader's view of the product catalog.
type ProductSource interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// BalanceSource is the reader's view of the ledger storage.
type BalanceSource interface {
	GetBalance(ctx context.Context, productID id.ID) (*ledger.StockBalance, error)
	ListMovements(ctx context.Context, filter ledger.MovementFilter) ([]*ledger.StockMovement, int64, error)

	// ListLowStockCandidates returns balances with on_hand at or below
	// the per-product effective threshold (reorder point when set,
	// otherwise globalThreshold), ascending by on_hand, capped at limit.
	ListLowStockCandidates(ctx context.Context, globalThreshold types.Quantity, limit int) ([]*LowStockCandidate, error)
}

// Service is the balance reader.
type Service struct {
	products  ProductSource
	balances  BalanceSource
	rule      *LowStockRule
	threshold types.Quantity
}

// NewService creates a balance reader with the given global low-stock
// threshold and compiled rule.
func NewService(products ProductSource, balances BalanceSource, rule *LowStockRule, threshold types.Quantity) *Service {
	return &Service{
		products:  products,
		balances:  balances,
		rule:      rule,
		threshold: threshold,
	}
}

// GetBalance returns the current balance for one product, including
// the low-stock verdict. Products that never moved report zero.
func (s *Service) GetBalance(ctx context.Context, productID id.ID) (*ProductBalance, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	b, err := s.balances.GetBalance(ctx, productID)
	if err != nil {
		return nil, err
	}

	threshold := s.effectiveThreshold(p)
	low, err := s.rule.Eval(b.OnHand.Float64(), threshold.Float64())
	if err != nil {
		return nil, fmt.Errorf("low stock check: %w", err)
	}

	pb := &ProductBalance{
		ProductID:  p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		BaseUnit:   p.BaseUnit,
		OnHand:     b.OnHand,
		Threshold:  threshold,
		IsLowStock: low,
	}
	if b.LastMovementID != nil {
		t := b.UpdatedAt
		pb.LastMovedAt = &t
	}
	return pb, nil
}

// LowStock returns products whose balance the rule flags as low,
// ascending by on-hand, at most limit rows. The limit caps the
// candidate query, so a rule narrower than the threshold filter may
// return fewer rows than the cap.
func (s *Service) LowStock(ctx context.Context, limit int) ([]*LowStockItem, error) {
	limit = clampLimit(limit)

	candidates, err := s.balances.ListLowStockCandidates(ctx, s.threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("list low stock candidates: %w", err)
	}

	items := make([]*LowStockItem, 0, len(candidates))
	for _, c := range candidates {
		low, err := s.rule.Eval(c.OnHand.Float64(), c.Threshold.Float64())
		if err != nil {
			return nil, fmt.Errorf("low stock check: %w", err)
		}
		if !low {
			continue
		}
		items = append(items, &LowStockItem{
			ProductID: c.ProductID,
			SKU:       c.SKU,
			Name:      c.Name,
			BaseUnit:  c.BaseUnit,
			OnHand:    c.OnHand,
			Threshold: c.Threshold,
		})
	}
	return items, nil
}

// MovementHistory returns one page of the journal for a product,
// newest first, with the total count.
func (s *Service) MovementHistory(ctx context.Context, productID id.ID, limit, offset int) (*MovementPage, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	items, total, err := s.balances.ListMovements(ctx, ledger.MovementFilter{
		ProductID: &productID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}

	return &MovementPage{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *Service) effectiveThreshold(p *product.Product) types.Quantity {
	if p.ReorderPoint != nil {
		return *p.ReorderPoint
	}
	return s.threshold
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}
