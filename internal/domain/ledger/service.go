package ledger

import (
	"context"
	"fmt"
	"time"

	"stockledger/internal/core/apperror"
	appctx "stockledger/internal/core/context"
	"stockledger/internal/core/id"
	"stockledger/internal/core/security"
	"stockledger/internal/core/tx"
	"stockledger/internal/core/types"
	"stockledger/pkg/logger"
)

// ProductInfo is the slice of a product the engine needs to post a
// movement against it.
type ProductInfo struct {
	ID       id.ID
	SKU      string
	BaseUnit string
	Cost     types.Money
	Active   bool
}

// ProductReader is the engine's view of the product catalog.
type ProductReader interface {
	GetStockInfo(ctx context.Context, productID id.ID) (*ProductInfo, error)
}

// Service is the ledger writer. Execute is the only way stock moves.
type Service struct {
	products  ProductReader
	allocator *Allocator
	repo      Repository
	txManager tx.Manager
}

// NewService creates the movement engine.
func NewService(products ProductReader, allocator *Allocator, repo Repository, txManager tx.Manager) *Service {
	return &Service{
		products:  products,
		allocator: allocator,
		repo:      repo,
		txManager: txManager,
	}
}

// Execute runs the full movement pipeline: authorization gate, input
// validation, product check, unit conversion, cost allocation, then a
// single transaction that locks the balance row, enforces the
// non-negativity floor, writes the new balance and appends the journal
// row. Nothing is retried; lock contention surfaces as
// CONCURRENCY_ERROR for the caller to retry.
func (s *Service) Execute(ctx context.Context, input Input) (*StockMovement, error) {
	if err := security.AuthorizeMovement(appctx.GetRole(ctx), input.Type().Action()); err != nil {
		return nil, err
	}

	if err := input.Validate(ctx); err != nil {
		return nil, err
	}

	p, err := s.products.GetStockInfo(ctx, input.Product())
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, apperror.NewReference("product", p.ID, "inactive")
	}

	conv, signedQty, err := s.convert(input, p)
	if err != nil {
		return nil, err
	}

	alloc, err := s.allocator.Allocate(ctx, input)
	if err != nil {
		return nil, err
	}

	movement := s.buildMovement(ctx, input, p, conv, signedQty, alloc)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		balance, err := s.repo.GetBalanceForUpdate(ctx, p.ID)
		if err != nil {
			return err
		}

		newOnHand := balance.OnHand + signedQty
		if newOnHand.IsNegative() {
			return apperror.NewInsufficientStock(
				p.ID.String(),
				signedQty.Abs().Float64(),
				balance.OnHand.Float64(),
			).WithDetail("movement_type", string(input.Type()))
		}

		movement.BalanceAfter = newOnHand
		if err := s.repo.InsertMovement(ctx, movement); err != nil {
			return fmt.Errorf("insert movement: %w", err)
		}

		balance.OnHand = newOnHand
		balance.LastMovementID = &movement.ID
		balance.UpdatedAt = movement.PerformedAt
		if err := s.repo.SaveBalance(ctx, balance); err != nil {
			return fmt.Errorf("save balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "movement posted",
		"movement_id", movement.ID,
		"movement_type", movement.MovementType,
		"product_id", p.ID,
		"qty_base", movement.QtyBase,
		"balance_after", movement.BalanceAfter,
	)
	return movement, nil
}

// convert produces the conversion result and the signed base quantity
// that will be applied to the balance.
func (s *Service) convert(input Input, p *ProductInfo) (Conversion, types.Quantity, error) {
	switch in := input.(type) {
	case ReceiveInput:
		conv, err := Convert(in.Qty, in.Unit, p.BaseUnit, in.UnitCost)
		if err != nil {
			return Conversion{}, 0, err
		}
		return conv, conv.QtyBase, nil

	case IssueInput:
		conv := baseConversion(in.Qty, p)
		return conv, in.Qty.Neg(), nil

	case ConsumeInput:
		conv := baseConversion(in.Qty, p)
		return conv, in.Qty.Neg(), nil

	case AdjustInput:
		conv := baseConversion(in.Delta.Abs(), p)
		return conv, in.Delta, nil
	}
	return Conversion{}, 0, apperror.NewValidation("unknown movement input").
		WithDetail("movement_type", string(input.Type()))
}

// baseConversion values a base-unit movement at the product's master
// cost. ISSUE, CONSUME and ADJUST never carry their own cost.
func baseConversion(qty types.Quantity, p *ProductInfo) Conversion {
	return Conversion{
		QtyBase:      qty,
		UnitBase:     p.BaseUnit,
		UnitCostBase: p.Cost,
		ValueTotal:   qty.Decimal().Mul(p.Cost),
	}
}

func (s *Service) buildMovement(ctx context.Context, input Input, p *ProductInfo, conv Conversion, signedQty types.Quantity, alloc Allocation) *StockMovement {
	m := &StockMovement{
		ID:            id.New(),
		MovementType:  input.Type(),
		ProductID:     p.ID,
		QtyBase:       signedQty,
		UnitBase:      conv.UnitBase,
		UnitCostBase:  conv.UnitCostBase,
		ValueTotal:    conv.ValueTotal,
		CostCenterID:  alloc.CostCenterID,
		CostElementID: alloc.CostElementID,
		WorkOrderID:   alloc.WorkOrderID,
		PerformedBy:   appctx.GetUserID(ctx),
		PerformedAt:   time.Now().UTC(),
	}

	switch in := input.(type) {
	case ReceiveInput:
		m.QtyInput = in.Qty
		m.UnitInput = in.Unit
		m.UnitCostInput = in.UnitCost
		m.Note = in.Note
	case IssueInput:
		m.QtyInput = in.Qty
		m.UnitInput = p.BaseUnit
		m.UnitCostInput = p.Cost
		m.Note = in.Note
	case ConsumeInput:
		m.QtyInput = in.Qty
		m.UnitInput = p.BaseUnit
		m.UnitCostInput = p.Cost
		m.Note = in.Note
	case AdjustInput:
		m.QtyInput = in.Delta
		m.UnitInput = p.BaseUnit
		m.UnitCostInput = p.Cost
		m.Note = in.Note
	}
	return m
}
