package security

import (
	"testing"

	"stockledger/internal/core/apperror"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"owner", "manager", "staff"} {
		role, err := ParseRole(valid)
		if err != nil {
			t.Errorf("ParseRole(%q) failed: %v", valid, err)
		}
		if string(role) != valid {
			t.Errorf("ParseRole(%q) = %q", valid, role)
		}
	}

	for _, invalid := range []string{"", "admin", "OWNER", "Owner"} {
		if _, err := ParseRole(invalid); err == nil {
			t.Errorf("ParseRole(%q) should fail", invalid)
		}
	}
}

func TestMovementMatrix(t *testing.T) {
	tests := []struct {
		role    Role
		action  MovementAction
		allowed bool
	}{
		{RoleOwner, ActionReceive, true},
		{RoleOwner, ActionIssue, true},
		{RoleOwner, ActionConsume, true},
		{RoleOwner, ActionAdjust, true},
		{RoleManager, ActionReceive, true},
		{RoleManager, ActionIssue, true},
		{RoleManager, ActionConsume, true},
		{RoleManager, ActionAdjust, false},
		{RoleStaff, ActionReceive, false},
		{RoleStaff, ActionIssue, true},
		{RoleStaff, ActionConsume, false},
		{RoleStaff, ActionAdjust, false},
	}

	for _, tt := range tests {
		if got := CanPerformMovement(tt.role, tt.action); got != tt.allowed {
			t.Errorf("CanPerformMovement(%s, %s) = %v, want %v", tt.role, tt.action, got, tt.allowed)
		}

		err := AuthorizeMovement(tt.role, tt.action)
		if tt.allowed && err != nil {
			t.Errorf("AuthorizeMovement(%s, %s) unexpected error: %v", tt.role, tt.action, err)
		}
		if !tt.allowed {
			appErr, ok := apperror.AsAppError(err)
			if !ok {
				t.Errorf("AuthorizeMovement(%s, %s) expected AppError, got %v", tt.role, tt.action, err)
				continue
			}
			if appErr.Code != apperror.CodeForbidden {
				t.Errorf("AuthorizeMovement(%s, %s) code = %s", tt.role, tt.action, appErr.Code)
			}
		}
	}
}

func TestMovementMatrix_UnknownInputs(t *testing.T) {
	if CanPerformMovement(RoleOwner, MovementAction("TRANSFER")) {
		t.Error("unknown action must be denied even for owner")
	}
	if CanPerformMovement(Role("auditor"), ActionIssue) {
		t.Error("unknown role must be denied")
	}
}

func TestMasterDataAuthorization(t *testing.T) {
	if !CanManageMasterData(RoleOwner) || !CanManageMasterData(RoleManager) {
		t.Error("owner and manager manage master data")
	}
	if CanManageMasterData(RoleStaff) {
		t.Error("staff is read-only on master data")
	}

	if err := AuthorizeMasterData(RoleStaff); err == nil {
		t.Error("AuthorizeMasterData(staff) should fail")
	}
}
