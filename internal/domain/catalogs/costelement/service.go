package costelement

import (
	"context"
	"fmt"

	"stockledger/internal/core/apperror"
	appctx "stockledger/internal/core/context"
	"stockledger/internal/core/id"
	"stockledger/internal/core/security"
	"stockledger/pkg/logger"
)

// Auditor records master-data mutations.
type Auditor interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes any) error
}

// Service provides business operations for the cost element catalog.
type Service struct {
	repo  Repository
	audit Auditor
}

// NewService creates a new cost element service.
func NewService(repo Repository, audit Auditor) *Service {
	return &Service{repo: repo, audit: audit}
}

// Create validates and persists a new cost element.
func (s *Service) Create(ctx context.Context, c *CostElement) error {
	if err := security.AuthorizeMasterData(appctx.GetRole(ctx)); err != nil {
		return err
	}

	if err := c.Validate(ctx); err != nil {
		return err
	}

	if existing, err := s.repo.GetByCode(ctx, c.Code); err == nil && existing != nil {
		return apperror.NewDuplicate("cost element", "code", c.Code)
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return fmt.Errorf("create cost element: %w", err)
	}

	if s.audit != nil {
		if err := s.audit.LogChange(ctx, "CostElement", c.ID, "create", c); err != nil {
			logger.Warn(ctx, "audit log failed", "entity", "CostElement", "id", c.ID, "error", err)
		}
	}

	logger.Info(ctx, "cost element created", "id", c.ID, "code", c.Code)
	return nil
}

// SetActive toggles the active flag.
func (s *Service) SetActive(ctx context.Context, ceID id.ID, active bool) (*CostElement, error) {
	if err := security.AuthorizeMasterData(appctx.GetRole(ctx)); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, ceID)
	if err != nil {
		return nil, err
	}

	c.IsActive = active
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update cost element: %w", err)
	}

	if s.audit != nil {
		if err := s.audit.LogChange(ctx, "CostElement", c.ID, "update", c); err != nil {
			logger.Warn(ctx, "audit log failed", "entity", "CostElement", "id", c.ID, "error", err)
		}
	}

	return c, nil
}

// GetByID retrieves a cost element.
func (s *Service) GetByID(ctx context.Context, ceID id.ID) (*CostElement, error) {
	return s.repo.GetByID(ctx, ceID)
}

// List retrieves cost elements.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*CostElement, error) {
	return s.repo.List(ctx, activeOnly)
}
