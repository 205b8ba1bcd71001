package product

import (
	"context"
	"fmt"

	"stockledger/internal/core/apperror"
	appctx "stockledger/internal/core/context"
	"stockledger/internal/core/id"
	"stockledger/internal/core/security"
	"stockledger/internal/core/types"
	"stockledger/pkg/logger"
)

// Auditor records master-data mutations.
type Auditor interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes any) error
}

// Service provides business operations for the product catalog.
type Service struct {
	repo  Repository
	audit Auditor
}

// NewService creates a new product service.
func NewService(repo Repository, audit Auditor) *Service {
	return &Service{repo: repo, audit: audit}
}

// Create validates and persists a new product. Staff is read-only.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := security.AuthorizeMasterData(appctx.GetRole(ctx)); err != nil {
		return err
	}

	if err := p.Validate(ctx); err != nil {
		return err
	}

	if existing, err := s.repo.GetBySKU(ctx, p.SKU); err == nil && existing != nil {
		return apperror.NewDuplicate("product", "sku", p.SKU)
	}

	p.CreatedBy = appctx.GetUserID(ctx)
	if err := s.repo.Create(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	if s.audit != nil {
		if err := s.audit.LogChange(ctx, "Product", p.ID, "create", p); err != nil {
			logger.Warn(ctx, "audit log failed", "entity", "Product", "id", p.ID, "error", err)
		}
	}

	logger.Info(ctx, "product created", "id", p.ID, "sku", p.SKU, "type", p.ProductType)
	return nil
}

// UpdateCost updates cost/price/reorder point. SKU and type stay fixed.
func (s *Service) UpdateCost(ctx context.Context, productID id.ID, cost types.Money, price *types.Money, reorderPoint *types.Quantity) (*Product, error) {
	if err := security.AuthorizeMasterData(appctx.GetRole(ctx)); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	p.Cost = cost
	if price != nil {
		p.Price = price
	}
	if reorderPoint != nil {
		p.ReorderPoint = reorderPoint
	}

	if err := p.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if s.audit != nil {
		if err := s.audit.LogChange(ctx, "Product", p.ID, "update", p); err != nil {
			logger.Warn(ctx, "audit log failed", "entity", "Product", "id", p.ID, "error", err)
		}
	}

	return p, nil
}

// Deactivate marks the product inactive. Movements against inactive
// products are rejected by the ledger; history is kept.
func (s *Service) Deactivate(ctx context.Context, productID id.ID) error {
	if err := security.AuthorizeMasterData(appctx.GetRole(ctx)); err != nil {
		return err
	}

	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	p.IsActive = false
	if err := s.repo.Update(ctx, p); err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}

	if s.audit != nil {
		if err := s.audit.LogChange(ctx, "Product", p.ID, "deactivate", p); err != nil {
			logger.Warn(ctx, "audit log failed", "entity", "Product", "id", p.ID, "error", err)
		}
	}

	logger.Info(ctx, "product deactivated", "id", p.ID, "sku", p.SKU)
	return nil
}

// GetByID retrieves a product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// List retrieves products with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	return s.repo.List(ctx, filter)
}
