package workorder

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

// CostCenterChecker validates the cost center reference at creation.
type CostCenterChecker interface {
	IsActive(ctx context.Context, ccID id.ID) (bool, error)
}

// CostElementChecker validates the cost element reference at creation.
type CostElementChecker interface {
	IsActive(ctx context.Context, ceID id.ID) (bool, error)
}

// Service provides business operations for work orders.
type Service struct {
	repo        Repository
	costCenters CostCenterChecker
	costElems   CostElementChecker
	audit       Auditor
}

// NewService creates a new work order service.
func NewService(repo Repository, costCenters CostCenterChecker, costElems CostElementChecker, audit Auditor) *Service {
	return &Service{
		repo:        repo,
		costCenters: costCenters,
		costElems:   costElems,
		audit:       audit,
	}
}

// Create validates and persists a new work order in DRAFT state.
func (s *Service) Create(ctx context.Context, w *WorkOrder) error {
	if err := security.AuthorizeMasterData(appctx.GetRole(ctx)); err != nil {
		return err
	}

	if err := w.Validate(ctx); err != nil {
		return err
	}

	if active, err := s.costCenters.IsActive(ctx, w.CostCenterID); err != nil || !active {
		return apperror.NewReference("cost center", w.CostCenterID, "unknown or inactive")
	}
	if active, err := s.costElems.IsActive(ctx, w.CostElementID); err != nil || !active {
		return apperror.NewReference("cost element", w.CostElementID, "unknown or inactive")
	}

	if existing, err := s.repo.GetByNumber(ctx, w.WONumber); err == nil && existing != nil {
		return apperror.NewDuplicate("work order", "wo_number", w.WONumber)
	}

	w.CreatedBy = appctx.GetUserID(ctx)
	if err := s.repo.Create(ctx, w); err != nil {
		return fmt.Errorf("create work order: %w", err)
	}

	if s.audit != nil {
		if err := s.audit.LogChange(ctx, "WorkOrder", w.ID, "create", w); err != nil {
			logger.Warn(ctx, "audit log failed", "entity", "WorkOrder", "id", w.ID, "error", err)
		}
	}

	logger.Info(ctx, "work order created", "id", w.ID, "wo_number", w.WONumber)
	return nil
}

// Transition moves a work order through its lifecycle.
func (s *Service) Transition(ctx context.Context, woID id.ID, target Status) (*WorkOrder, error) {
	if err := security.AuthorizeMasterData(appctx.GetRole(ctx)); err != nil {
		return nil, err
	}

	w, err := s.repo.GetByID(ctx, woID)
	if err != nil {
		return nil, err
	}

	from := w.Status
	if err := w.TransitionTo(target); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("update work order: %w", err)
	}

	if s.audit != nil {
		err := s.audit.LogChange(ctx, "WorkOrder", w.ID, "status", map[string]string{
			"from": string(from),
			"to":   string(target),
		})
		if err != nil {
			logger.Warn(ctx, "audit log failed", "entity", "WorkOrder", "id", w.ID, "error", err)
		}
	}

	logger.Info(ctx, "work order transitioned", "id", w.ID, "from", from, "to", target)
	return w, nil
}

// GetByID retrieves a work order.
func (s *Service) GetByID(ctx context.Context, woID id.ID) (*WorkOrder, error) {
	return s.repo.GetByID(ctx, woID)
}

// List retrieves work orders, optionally by status.
func (s *Service) List(ctx context.Context, status *Status) ([]*WorkOrder, error) {
	return s.repo.List(ctx, status)
}
