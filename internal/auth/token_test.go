package auth

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
)

func testIssuer(t *testing.T, expiry time.Duration) *TokenIssuer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	issuer, err := NewTokenIssuer("test-secret", expiry, logger)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	return issuer
}

func testUser() *models.User {
	return &models.User{
		ID:      "user-1",
		Email:   "admin@example.com",
		Name:    "Admin",
		Role:    models.RoleAdmin,
		Company: "Acme Corp",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := testIssuer(t, time.Hour)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.Subject)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("role = %q, want admin", claims.Role)
	}
	if claims.Company != "Acme Corp" {
		t.Errorf("company = %q", claims.Company)
	}
	if !claims.IsAdmin() {
		t.Error("IsAdmin() = false for admin claims")
	}
}

func TestTokenExpiryRejected(t *testing.T) {
	issuer := testIssuer(t, -time.Minute)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := issuer.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("got %v, want unauthorized", err)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := testIssuer(t, time.Hour)
	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	other, err := NewTokenIssuer("different-secret", time.Hour, logger)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("got %v, want unauthorized", err)
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	issuer := testIssuer(t, time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := issuer.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("Verify(%q): got %v, want unauthorized", token, err)
		}
	}
}

func TestTokenUnknownRoleRejected(t *testing.T) {
	issuer := testIssuer(t, time.Hour)

	user := testUser()
	user.Role = "superuser"
	token, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := issuer.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("got %v, want unauthorized", err)
	}
}

func TestEmptySecretRejected(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := NewTokenIssuer("", time.Hour, logger); err == nil {
		t.Error("expected error for empty secret")
	}
}
