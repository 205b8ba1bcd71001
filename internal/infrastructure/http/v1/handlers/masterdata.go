package handlers

import (
	"github.com/gin-gonic/gin"

	"stockledger/internal/domain/catalogs/costcenter"
	"stockledger/internal/domain/catalogs/costelement"
	"stockledger/internal/infrastructure/http/v1/dto"
)

// MasterDataHandler serves the cost center and cost element catalogs.
// The two share one handler because their surface is identical.
type MasterDataHandler struct {
	BaseHandler
	costCenters  *costcenter.Service
	costElements *costelement.Service
}

func NewMasterDataHandler(costCenters *costcenter.Service, costElements *costelement.Service) *MasterDataHandler {
	return &MasterDataHandler{
		costCenters:  costCenters,
		costElements: costElements,
	}
}

// CreateCostCenter handles POST /cost-centers.
func (h *MasterDataHandler) CreateCostCenter(c *gin.Context) {
	var req dto.CreateCostCenterRequest
	if err := h.BindJSON(c, &req); err != nil {
		h.Error(c, err)
		return
	}

	cc := req.ToModel()
	if err := h.costCenters.Create(c.Request.Context(), cc); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, cc)
}

// ListCostCenters handles GET /cost-centers?activeOnly=.
func (h *MasterDataHandler) ListCostCenters(c *gin.Context) {
	items, err := h.costCenters.List(c.Request.Context(), c.Query("activeOnly") == "true")
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse[*costcenter.CostCenter]{
		Items: items,
		Total: int64(len(items)),
	})
}

// SetCostCenterActive handles PUT /cost-centers/:id/active.
func (h *MasterDataHandler) SetCostCenterActive(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ccID, err := h.ParseIDParam(c, "id")
		if err != nil {
			h.Error(c, err)
			return
		}

		cc, err := h.costCenters.SetActive(c.Request.Context(), ccID, active)
		if err != nil {
			h.Error(c, err)
			return
		}

		h.OK(c, cc)
	}
}

// CreateCostElement handles POST /cost-elements.
func (h *MasterDataHandler) CreateCostElement(c *gin.Context) {
	var req dto.CreateCostElementRequest
	if err := h.BindJSON(c, &req); err != nil {
		h.Error(c, err)
		return
	}

	ce := req.ToModel()
	if err := h.costElements.Create(c.Request.Context(), ce); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, ce)
}

// ListCostElements handles GET /cost-elements?activeOnly=.
func (h *MasterDataHandler) ListCostElements(c *gin.Context) {
	items, err := h.costElements.List(c.Request.Context(), c.Query("activeOnly") == "true")
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse[*costelement.CostElement]{
		Items: items,
		Total: int64(len(items)),
	})
}

// SetCostElementActive handles PUT /cost-elements/:id/active.
func (h *MasterDataHandler) SetCostElementActive(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ceID, err := h.ParseIDParam(c, "id")
		if err != nil {
			h.Error(c, err)
			return
		}

		ce, err := h.costElements.SetActive(c.Request.Context(), ceID, active)
		if err != nil {
			h.Error(c, err)
			return
		}

		h.OK(c, ce)
	}
}
