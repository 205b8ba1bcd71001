// Package costcenter provides the Cost Center master-data catalog.
// Cost centers classify where an issued cost lands; movements reference
// them by id, never by code string.
package costcenter

import (
	"context"
	"regexp"
	"time"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
)

// codePattern restricts cost center codes (e.g. PROD01, MAINT).
var codePattern = regexp.MustCompile(`^[A-Z0-9_-]{2,20}$`)

// CostCenter is a master-data reference entity.
type CostCenter struct {
	ID        id.ID     `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewCostCenter creates an active cost center with generated id.
func NewCostCenter(code, name string) *CostCenter {
	now := time.Now().UTC()
	return &CostCenter{
		ID:        id.New(),
		Code:      code,
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks entity invariants.
func (c *CostCenter) Validate(ctx context.Context) error {
	if !codePattern.MatchString(c.Code) {
		return apperror.NewValidation("cost center code must match ^[A-Z0-9_-]{2,20}$").
			WithDetail("field", "code").
			WithDetail("value", c.Code)
	}
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Repository defines persistence operations for cost centers.
type Repository interface {
	Create(ctx context.Context, c *CostCenter) error
	Update(ctx context.Context, c *CostCenter) error
	GetByID(ctx context.Context, ccID id.ID) (*CostCenter, error)
	GetByCode(ctx context.Context, code string) (*CostCenter, error)
	List(ctx context.Context, activeOnly bool) ([]*CostCenter, error)
}
