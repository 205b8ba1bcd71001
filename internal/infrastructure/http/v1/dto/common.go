// Package dto defines request/response shapes for the HTTP API.
// Decoding a request into a domain value happens here; handlers never
// touch raw JSON fields.
package dto

import "stockledger/internal/core/id"

// IDResponse returns a created entity id.
type IDResponse struct {
	ID id.ID `json:"id"`
}

// SuccessResponse is a generic acknowledgement.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ListResponse wraps a collection payload.
type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}
