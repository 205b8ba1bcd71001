// Package handlers provides HTTP request handlers.
// Handlers decode, call a domain service and encode; every error goes
// through c.Error so the error middleware is the single response shape.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
)

// BaseHandler provides common helpers for all handlers.
type BaseHandler struct{}

// BindJSON binds the request body, translating bind failures into a
// validation error.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperror.NewValidation("invalid request body").
			WithDetail("error", err.Error())
	}
	return nil
}

// ParseIDParam extracts and validates a UUID path parameter.
func (h *BaseHandler) ParseIDParam(c *gin.Context, name string) (id.ID, error) {
	raw := c.Param(name)
	parsed, err := id.Parse(raw)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid id parameter").
			WithDetail("param", name).
			WithDetail("value", raw)
	}
	return parsed, nil
}

// ParseIntQuery extracts an optional integer query parameter.
func (h *BaseHandler) ParseIntQuery(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewValidation("invalid query parameter").
			WithDetail("param", name).
			WithDetail("value", raw)
	}
	return v, nil
}

// parseQueryID parses a required UUID query parameter.
func parseQueryID(raw, name string) (id.ID, error) {
	if raw == "" {
		return id.Nil(), apperror.NewValidation(name + " is required").
			WithDetail("param", name)
	}
	parsed, err := id.Parse(raw)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid query parameter").
			WithDetail("param", name).
			WithDetail("value", raw)
	}
	return parsed, nil
}

// Error records the error for the error middleware and aborts.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// OK sends 200 with the payload.
func (h *BaseHandler) OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Created sends 201 with the payload.
func (h *BaseHandler) Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// NoContent sends 204.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
