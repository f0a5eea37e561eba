package service

import (
	"testing"
	"time"

	"github.com/astroconsulta/platform-api/internal/core/domain"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute, 7*24*time.Hour)

	access, err := svc.CreateAccessToken("user-1", domain.RoleConsultant)
	if err != nil {
		t.Fatalf("create access token: %v", err)
	}

	claims, err := svc.VerifyToken(access, tokenTypeAccess)
	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("user id = %q, want user-1", claims.UserID)
	}
	if claims.Role != domain.RoleConsultant {
		t.Errorf("role = %q, want consultant", claims.Role)
	}
	if claims.TokenID == "" {
		t.Error("expected a token id claim")
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Error("expected a future expiry")
	}
}

func TestTokenServiceRefreshHasNoRole(t *testing.T) {
	svc := NewTokenService("test-secret", 0, 0)

	refresh, err := svc.CreateRefreshToken("user-1")
	if err != nil {
		t.Fatalf("create refresh token: %v", err)
	}

	claims, err := svc.VerifyToken(refresh, tokenTypeRefresh)
	if err != nil {
		t.Fatalf("verify refresh token: %v", err)
	}
	if claims.Role != "" {
		t.Errorf("refresh token carries role %q", claims.Role)
	}
}

func TestTokenServiceRejectsWrongType(t *testing.T) {
	svc := NewTokenService("test-secret", 0, 0)

	access, err := svc.CreateAccessToken("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("create access token: %v", err)
	}

	if _, err := svc.VerifyToken(access, tokenTypeRefresh); domain.CodeOf(err) != domain.CodeInvalidCredentials {
		t.Errorf("access token accepted as refresh, err = %v", err)
	}
}

func TestTokenServiceRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", 0, 0)
	verifier := NewTokenService("secret-b", 0, 0)

	token, err := issuer.CreateAccessToken("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	if _, err := verifier.VerifyToken(token, tokenTypeAccess); domain.CodeOf(err) != domain.CodeInvalidCredentials {
		t.Errorf("forged token accepted, err = %v", err)
	}
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	svc := NewTokenService("test-secret", 0, 0)
	svc.accessTTL = -time.Minute

	token, err := svc.CreateAccessToken("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	if _, err := svc.VerifyToken(token, tokenTypeAccess); domain.CodeOf(err) != domain.CodeInvalidCredentials {
		t.Errorf("expired token accepted, err = %v", err)
	}
}

func TestTokenServiceRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", 0, 0)

	if _, err := svc.VerifyToken("not-a-token", tokenTypeAccess); domain.CodeOf(err) != domain.CodeInvalidCredentials {
		t.Errorf("garbage token accepted, err = %v", err)
	}
}
