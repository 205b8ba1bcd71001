// Package product provides the Product master-data catalog.
// Products are the dimension every stock movement is recorded against;
// their balances live in the ledger, never here.
package product

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
	"stockledger/internal/core/types"
	"stockledger/internal/domain/ledger"
)

// ProductType defines the stock-keeping category of an item.
type ProductType string

const (
	// TypeProduct - finished goods for sale
	TypeProduct ProductType = "PRODUCT"
	// TypeMaterial - raw materials; cost floor of 1.00 applies
	TypeMaterial ProductType = "MATERIAL"
	// TypeConsumable - consumables tracked approximately
	TypeConsumable ProductType = "CONSUMABLE"
)

// materialCostFloor is the minimum allowed cost for MATERIAL products.
var materialCostFloor = decimal.NewFromInt(1)

// Product represents a stock-keeping item.
// SKU and type are immutable after creation; cost and price may be
// updated by authorized roles.
type Product struct {
	ID          id.ID       `db:"id" json:"id"`
	SKU         string      `db:"sku" json:"sku"`
	Name        string      `db:"name" json:"name"`
	ProductType ProductType `db:"product_type" json:"productType"`

	// BaseUnit is the canonical unit on_hand is tracked in.
	BaseUnit string `db:"base_unit" json:"baseUnit"`

	Cost  types.Money  `db:"cost" json:"cost"`
	Price *types.Money `db:"price" json:"price,omitempty"`

	// ReorderPoint overrides the global low-stock threshold when set.
	ReorderPoint *types.Quantity `db:"reorder_point" json:"reorderPoint,omitempty"`

	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedBy string    `db:"created_by" json:"createdBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewProduct creates a product with generated id and timestamps.
func NewProduct(sku, name string, productType ProductType, baseUnit string, cost types.Money) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:          id.New(),
		SKU:         sku,
		Name:        name,
		ProductType: productType,
		BaseUnit:    baseUnit,
		Cost:        cost,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks product invariants, including the MATERIAL cost floor.
func (p *Product) Validate(ctx context.Context) error {
	if p.SKU == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}

	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if !isValidProductType(p.ProductType) {
		return apperror.NewValidation("invalid product type").
			WithDetail("field", "productType").
			WithDetail("value", string(p.ProductType))
	}

	if p.BaseUnit == "" {
		return apperror.NewValidation("base unit is required").
			WithDetail("field", "baseUnit")
	}

	// A product with a unit outside the conversion table could never
	// receive stock, so reject it here rather than on first movement.
	if !ledger.KnownUnit(p.BaseUnit) {
		return apperror.NewValidation("unknown base unit").
			WithDetail("field", "baseUnit").
			WithDetail("value", p.BaseUnit)
	}

	if p.Cost.IsNegative() {
		return apperror.NewValidation("cost cannot be negative").
			WithDetail("field", "cost")
	}

	if p.ProductType == TypeMaterial && p.Cost.LessThan(materialCostFloor) {
		return apperror.NewValidation("material cost must be >= 1.00").
			WithDetail("field", "cost").
			WithDetail("cost", p.Cost.String())
	}

	if p.Price != nil && p.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}

	if p.ReorderPoint != nil && p.ReorderPoint.IsNegative() {
		return apperror.NewValidation("reorder point cannot be negative").
			WithDetail("field", "reorderPoint")
	}

	return nil
}

func isValidProductType(t ProductType) bool {
	switch t {
	case TypeProduct, TypeMaterial, TypeConsumable:
		return true
	}
	return false
}
