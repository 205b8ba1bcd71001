package dto

import (
	"stockledger/internal/core/apperror"
	"stockledger/internal/core/types"
	"stockledger/internal/domain/catalogs/product"
)

// CreateProductRequest is the wire shape for POST /products.
type CreateProductRequest struct {
	SKU          string          `json:"sku" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	ProductType  string          `json:"productType" binding:"required"`
	BaseUnit     string          `json:"baseUnit" binding:"required"`
	Cost         string          `json:"cost" binding:"required"`
	Price        *string         `json:"price,omitempty"`
	ReorderPoint *types.Quantity `json:"reorderPoint,omitempty"`
}

// ToModel builds a new Product from the request. Monetary fields come
// in as strings to keep decimal precision off the float path.
func (r *CreateProductRequest) ToModel() (*product.Product, error) {
	cost, err := types.NewMoneyFromString(r.Cost)
	if err != nil {
		return nil, apperror.NewValidation("invalid cost").
			WithDetail("field", "cost").
			WithDetail("value", r.Cost)
	}

	p := product.NewProduct(r.SKU, r.Name, product.ProductType(r.ProductType), r.BaseUnit, cost)

	if r.Price != nil {
		price, err := types.NewMoneyFromString(*r.Price)
		if err != nil {
			return nil, apperror.NewValidation("invalid price").
				WithDetail("field", "price").
				WithDetail("value", *r.Price)
		}
		p.Price = &price
	}
	p.ReorderPoint = r.ReorderPoint

	return p, nil
}

// UpdateProductCostRequest is the wire shape for PUT /products/:id/cost.
type UpdateProductCostRequest struct {
	Cost         string          `json:"cost" binding:"required"`
	Price        *string         `json:"price,omitempty"`
	ReorderPoint *types.Quantity `json:"reorderPoint,omitempty"`
}

// Parse extracts the decimal fields.
func (r *UpdateProductCostRequest) Parse() (types.Money, *types.Money, error) {
	cost, err := types.NewMoneyFromString(r.Cost)
	if err != nil {
		return types.Money{}, nil, apperror.NewValidation("invalid cost").
			WithDetail("field", "cost").
			WithDetail("value", r.Cost)
	}

	var price *types.Money
	if r.Price != nil {
		parsed, err := types.NewMoneyFromString(*r.Price)
		if err != nil {
			return types.Money{}, nil, apperror.NewValidation("invalid price").
				WithDetail("field", "price").
				WithDetail("value", *r.Price)
		}
		price = &parsed
	}

	return cost, price, nil
}
