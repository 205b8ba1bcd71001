package handlers

import (
	"github.com/gin-gonic/gin"

	"stockledger/internal/domain/catalogs/workorder"
	"stockledger/internal/infrastructure/http/v1/dto"
)

// WorkOrderHandler serves the work order catalog.
type WorkOrderHandler struct {
	BaseHandler
	workOrders *workorder.Service
}

func NewWorkOrderHandler(workOrders *workorder.Service) *WorkOrderHandler {
	return &WorkOrderHandler{workOrders: workOrders}
}

// Create handles POST /work-orders.
func (h *WorkOrderHandler) Create(c *gin.Context) {
	var req dto.CreateWorkOrderRequest
	if err := h.BindJSON(c, &req); err != nil {
		h.Error(c, err)
		return
	}

	w, err := req.ToModel()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.workOrders.Create(c.Request.Context(), w); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, w)
}

// GetByID handles GET /work-orders/:id.
func (h *WorkOrderHandler) GetByID(c *gin.Context) {
	woID, err := h.ParseIDParam(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}

	w, err := h.workOrders.GetByID(c.Request.Context(), woID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, w)
}

// List handles GET /work-orders?status=.
func (h *WorkOrderHandler) List(c *gin.Context) {
	var status *workorder.Status
	if raw := c.Query("status"); raw != "" {
		s := workorder.Status(raw)
		status = &s
	}

	items, err := h.workOrders.List(c.Request.Context(), status)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse[*workorder.WorkOrder]{
		Items: items,
		Total: int64(len(items)),
	})
}

// Transition handles POST /work-orders/:id/status.
func (h *WorkOrderHandler) Transition(c *gin.Context) {
	woID, err := h.ParseIDParam(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}

	var req dto.TransitionWorkOrderRequest
	if err := h.BindJSON(c, &req); err != nil {
		h.Error(c, err)
		return
	}

	target, err := req.Target()
	if err != nil {
		h.Error(c, err)
		return
	}

	w, err := h.workOrders.Transition(c.Request.Context(), woID, target)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, w)
}
