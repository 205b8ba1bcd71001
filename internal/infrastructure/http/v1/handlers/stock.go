package handlers

import (
	"github.com/gin-gonic/gin"

	"stockledger/internal/domain/ledger"
	"stockledger/internal/domain/reports"
	"stockledger/internal/infrastructure/http/v1/dto"
)

// StockHandler serves the movement engine and the balance reader.
type StockHandler struct {
	BaseHandler
	movements *ledger.Service
	reports   *reports.Service
}

func NewStockHandler(movements *ledger.Service, reports *reports.Service) *StockHandler {
	return &StockHandler{movements: movements, reports: reports}
}

// CreateMovement handles POST /stock/movements.
func (h *StockHandler) CreateMovement(c *gin.Context) {
	var req dto.CreateMovementRequest
	if err := h.BindJSON(c, &req); err != nil {
		h.Error(c, err)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	movement, err := h.movements.Execute(c.Request.Context(), input)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, movement)
}

// GetBalance handles GET /stock/balances/:productId.
func (h *StockHandler) GetBalance(c *gin.Context) {
	productID, err := h.ParseIDParam(c, "productId")
	if err != nil {
		h.Error(c, err)
		return
	}

	balance, err := h.reports.GetBalance(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, balance)
}

// LowStock handles GET /stock/low-stock.
func (h *StockHandler) LowStock(c *gin.Context) {
	limit, err := h.ParseIntQuery(c, "limit", 0)
	if err != nil {
		h.Error(c, err)
		return
	}

	items, err := h.reports.LowStock(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse[*reports.LowStockItem]{
		Items: items,
		Total: int64(len(items)),
	})
}

// MovementHistory handles GET /stock/movements?productId=&limit=&offset=.
func (h *StockHandler) MovementHistory(c *gin.Context) {
	raw := c.Query("productId")
	productID, err := parseQueryID(raw, "productId")
	if err != nil {
		h.Error(c, err)
		return
	}

	limit, err := h.ParseIntQuery(c, "limit", 0)
	if err != nil {
		h.Error(c, err)
		return
	}
	offset, err := h.ParseIntQuery(c, "offset", 0)
	if err != nil {
		h.Error(c, err)
		return
	}

	page, err := h.reports.MovementHistory(c.Request.Context(), productID, limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, page)
}
