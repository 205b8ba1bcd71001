// Package costelement provides the Cost Element master-data catalog.
package costelement

import (
	"context"
	"regexp"
	"time"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9_-]{2,20}$`)

// CostElement classifies what kind of cost a movement represents
// (materials, labor, overhead). Referenced by id from movements.
type CostElement struct {
	ID        id.ID     `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewCostElement creates an active cost element with generated id.
func NewCostElement(code, name string) *CostElement {
	now := time.Now().UTC()
	return &CostElement{
		ID:        id.New(),
		Code:      code,
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks entity invariants.
func (c *CostElement) Validate(ctx context.Context) error {
	if !codePattern.MatchString(c.Code) {
		return apperror.NewValidation("cost element code must match ^[A-Z0-9_-]{2,20}$").
			WithDetail("field", "code").
			WithDetail("value", c.Code)
	}
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Repository defines persistence operations for cost elements.
type Repository interface {
	Create(ctx context.Context, c *CostElement) error
	Update(ctx context.Context, c *CostElement) error
	GetByID(ctx context.Context, ceID id.ID) (*CostElement, error)
	GetByCode(ctx context.Context, code string) (*CostElement, error)
	List(ctx context.Context, activeOnly bool) ([]*CostElement, error)
}
