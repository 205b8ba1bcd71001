// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"stockledger/internal/core/security"
)

// UserContext contains authenticated user information supplied by the
// authentication collaborator.
type UserContext struct {
	UserID string
	Email  string
	Role   security.Role
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// GetRole returns the acting role from context, or empty Role when the
// request is unauthenticated.
func GetRole(ctx context.Context) security.Role {
	if u := GetUser(ctx); u != nil {
		return u.Role
	}
	return ""
}
