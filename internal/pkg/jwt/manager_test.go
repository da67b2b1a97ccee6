package jwt_test

import (
	"testing"
	"time"

	"cctv-service/internal/pkg/jwt"
)

func newManager(t *testing.T, secret string, ttl time.Duration) *jwt.Manager {
	t.Helper()
	m, err := jwt.NewManager(jwt.Config{Secret: secret, Issuer: "cctv-service", TTL: ttl})
	if err != nil {
		t.Fatalf("failed to build manager: %v", err)
	}
	return m
}

func TestNewManager_RequiresSecret(t *testing.T) {
	if _, err := jwt.NewManager(jwt.Config{Issuer: "cctv-service"}); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestGenerateVerify_RoundTrip(t *testing.T) {
	m := newManager(t, "test-secret", time.Hour)

	token, jti, err := m.Generate(42, "admin")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if token == "" || jti == "" {
		t.Fatal("token and jti must be non-empty")
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.IdentityID != 42 {
		t.Errorf("identity = %d, want 42", claims.IdentityID)
	}
	if claims.Role != "admin" {
		t.Errorf("role = %q, want admin", claims.Role)
	}
	if claims.ID != jti {
		t.Errorf("jti = %q, want %q", claims.ID, jti)
	}
	if !claims.IsAdmin() {
		t.Error("IsAdmin() should be true for admin role")
	}
	if !claims.HasRole("admin") || claims.HasRole("staff") {
		t.Error("HasRole must match the single carried role exactly")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	signer := newManager(t, "secret-a", time.Hour)
	verifier := newManager(t, "secret-b", time.Hour)

	token, _, err := signer.Generate(1, "staff")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}
}

func TestVerify_WrongIssuer(t *testing.T) {
	other, err := jwt.NewManager(jwt.Config{Secret: "shared", Issuer: "someone-else", TTL: time.Hour})
	if err != nil {
		t.Fatalf("failed to build manager: %v", err)
	}
	verifier := newManager(t, "shared", time.Hour)

	token, _, err := other.Generate(1, "staff")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("token from another issuer must not verify")
	}
}

func TestVerify_Expired(t *testing.T) {
	m := newManager(t, "test-secret", time.Hour)

	token, _, err := m.Generate(1, "staff")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// A fresh token verifies; a token whose TTL elapsed does not. Signing
	// with a negative-equivalent TTL is not possible through the public
	// API, so exercise expiry with a tiny TTL.
	short := newManager(t, "test-secret", time.Millisecond)
	expired, _, err := short.Generate(1, "staff")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := m.Verify(token); err != nil {
		t.Errorf("fresh token should verify: %v", err)
	}
	if _, err := m.Verify(expired); err == nil {
		t.Error("expired token must not verify")
	}
}

func TestVerify_Garbage(t *testing.T) {
	m := newManager(t, "test-secret", time.Hour)
	for _, tok := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := m.Verify(tok); err == nil {
			t.Errorf("garbage token %q must not verify", tok)
		}
	}
}
