// Package security provides the role model and the static
// authorization table for stock movements.
package security

import (
	"fmt"

	"stockledger/internal/core/apperror"
)

// Role is the acting user's role, supplied by the authentication
// collaborator.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// ParseRole validates a role string from a token claim.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleManager, RoleStaff:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// MovementAction identifies a movement type for authorization purposes.
// Kept as a plain string so the security package does not import the
// ledger domain.
type MovementAction string

const (
	ActionReceive MovementAction = "RECEIVE"
	ActionIssue   MovementAction = "ISSUE"
	ActionConsume MovementAction = "CONSUME"
	ActionAdjust  MovementAction = "ADJUST"
)

// movementMatrix is the full (movement, role) authorization table.
// Checked once, before any validation or I/O.
var movementMatrix = map[MovementAction]map[Role]bool{
	ActionReceive: {RoleOwner: true, RoleManager: true, RoleStaff: false},
	ActionIssue:   {RoleOwner: true, RoleManager: true, RoleStaff: true},
	ActionConsume: {RoleOwner: true, RoleManager: true, RoleStaff: false},
	ActionAdjust:  {RoleOwner: true, RoleManager: false, RoleStaff: false},
}

// CanPerformMovement reports whether role may execute the movement type.
func CanPerformMovement(role Role, action MovementAction) bool {
	perms, ok := movementMatrix[action]
	if !ok {
		return false
	}
	return perms[role]
}

// AuthorizeMovement returns a FORBIDDEN error when the role is not
// permitted to execute the movement type. Pure and stateless.
func AuthorizeMovement(role Role, action MovementAction) error {
	if CanPerformMovement(role, action) {
		return nil
	}
	return apperror.NewForbidden(fmt.Sprintf("role %s cannot perform %s movements", role, action)).
		WithDetail("role", string(role)).
		WithDetail("movement_type", string(action))
}

// CanManageMasterData reports whether role may create or update
// products, cost centers, cost elements and work orders. Staff is
// read-only on master data.
func CanManageMasterData(role Role) bool {
	return role == RoleOwner || role == RoleManager
}

// AuthorizeMasterData returns a FORBIDDEN error for read-only roles.
func AuthorizeMasterData(role Role) error {
	if CanManageMasterData(role) {
		return nil
	}
	return apperror.NewForbidden("staff users cannot modify master data").
		WithDetail("role", string(role))
}
