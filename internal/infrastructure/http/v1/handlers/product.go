package handlers

import (
	"github.com/gin-gonic/gin"

	"stockledger/internal/domain/catalogs/product"
	"stockledger/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product catalog.
type ProductHandler struct {
	BaseHandler
	products *product.Service
}

func NewProductHandler(products *product.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := h.BindJSON(c, &req); err != nil {
		h.Error(c, err)
		return
	}

	p, err := req.ToModel()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.products.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, p)
}

// GetByID handles GET /products/:id.
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, err := h.ParseIDParam(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}

	p, err := h.products.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, p)
}

// List handles GET /products?type=&activeOnly=&limit=&offset=.
func (h *ProductHandler) List(c *gin.Context) {
	filter := product.ListFilter{
		ActiveOnly: c.Query("activeOnly") == "true",
	}

	if raw := c.Query("type"); raw != "" {
		productType := product.ProductType(raw)
		filter.ProductType = &productType
	}

	var err error
	if filter.Limit, err = h.ParseIntQuery(c, "limit", 0); err != nil {
		h.Error(c, err)
		return
	}
	if filter.Offset, err = h.ParseIntQuery(c, "offset", 0); err != nil {
		h.Error(c, err)
		return
	}

	items, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse[*product.Product]{
		Items: items,
		Total: int64(len(items)),
	})
}

// UpdateCost handles PUT /products/:id/cost.
func (h *ProductHandler) UpdateCost(c *gin.Context) {
	productID, err := h.ParseIDParam(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}

	var req dto.UpdateProductCostRequest
	if err := h.BindJSON(c, &req); err != nil {
		h.Error(c, err)
		return
	}

	cost, price, err := req.Parse()
	if err != nil {
		h.Error(c, err)
		return
	}

	p, err := h.products.UpdateCost(c.Request.Context(), productID, cost, price, req.ReorderPoint)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, p)
}

// Deactivate handles DELETE /products/:id.
// Products referenced by movements are never removed, only deactivated.
func (h *ProductHandler) Deactivate(c *gin.Context) {
	productID, err := h.ParseIDParam(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.products.Deactivate(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
