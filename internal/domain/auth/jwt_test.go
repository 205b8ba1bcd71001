package auth

import (
	"testing"
	"time"

	"stockledger/internal/core/security"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expiresAt, err := svc.GenerateAccessToken("u-1", "manager@example.com", security.RoleManager)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Error("token must expire in the future")
	}

	user, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if user.UserID != "u-1" || user.Email != "manager@example.com" || user.Role != security.RoleManager {
		t.Errorf("claims round trip = %+v", user)
	}
}

func TestJWT_Rejections(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token should fail")
	}

	// Wrong secret.
	other := NewJWTService(DefaultJWTConfig("other-secret"))
	token, _, err := other.GenerateAccessToken("u-1", "x@example.com", security.RoleOwner)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret should fail")
	}

	// Unknown role claim is rejected at validation, not in handlers.
	bad := NewJWTService(DefaultJWTConfig("test-secret"))
	badToken, _, err := bad.GenerateAccessToken("u-2", "x@example.com", security.Role("superuser"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.ValidateToken(badToken); err == nil {
		t.Error("unknown role claim should fail validation")
	}

	// Expired token.
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	expired := NewJWTService(cfg)
	expiredToken, _, err := expired.GenerateAccessToken("u-3", "x@example.com", security.RoleStaff)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.ValidateToken(expiredToken); err == nil {
		t.Error("expired token should fail")
	}
}
