package dto

import (
	"stockledger/internal/domain/catalogs/costcenter"
	"stockledger/internal/domain/catalogs/costelement"
)

// CreateCostCenterRequest is the wire shape for POST /cost-centers.
type CreateCostCenterRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

func (r *CreateCostCenterRequest) ToModel() *costcenter.CostCenter {
	return costcenter.NewCostCenter(r.Code, r.Name)
}

// CreateCostElementRequest is the wire shape for POST /cost-elements.
type CreateCostElementRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

func (r *CreateCostElementRequest) ToModel() *costelement.CostElement {
	return costelement.NewCostElement(r.Code, r.Name)
}
