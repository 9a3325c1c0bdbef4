package jwt

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"
)

func testSecret(t *testing.T) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString([]byte("test-secret-key-0123456789abcdef"))
}

func newTestService(t *testing.T, ttl time.Duration) *JWTService {
	t.Helper()
	svc, err := NewJWTService(testSecret(t), ttl)
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}
	return svc
}

func TestNewJWTService_BadSecret(t *testing.T) {
	if _, err := NewJWTService("not base64!!!", time.Hour); err == nil {
		t.Fatal("expected error for non-base64 secret")
	}
	if _, err := NewJWTService("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestGenerateAndExtract(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.GenerateToken("alice@example.com", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	email, err := svc.ExtractEmail(token)
	if err != nil {
		t.Fatalf("ExtractEmail: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("ExtractEmail: got %q, want %q", email, "alice@example.com")
	}
}

func TestGenerateToken_ExtraClaimsCannotOverrideSubject(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.GenerateToken("alice@example.com", map[string]interface{}{
		"sub":  "mallory@example.com",
		"role": "user",
	})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	email, err := svc.ExtractEmail(token)
	if err != nil {
		t.Fatalf("ExtractEmail: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("subject was overridden: got %q", email)
	}
}

func TestIsTokenValid(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.GenerateToken("alice@example.com", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if !svc.IsTokenValid(token, "alice@example.com") {
		t.Error("freshly issued token should be valid for its own identity")
	}
	if svc.IsTokenValid(token, "bob@example.com") {
		t.Error("token should not be valid for a different identity")
	}
	if svc.IsTokenValid("not.a.token", "alice@example.com") {
		t.Error("malformed token should not be valid")
	}
}

func TestIsTokenValid_Expired(t *testing.T) {
	svc := newTestService(t, time.Hour)
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateToken("alice@example.com", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if !svc.IsTokenValid(token, "alice@example.com") {
		t.Error("token should be valid before the TTL elapses")
	}

	svc.now = func() time.Time { return issued.Add(time.Hour + time.Second) }
	if svc.IsTokenValid(token, "alice@example.com") {
		t.Error("token should be invalid after the TTL elapses")
	}

	// Expired is not an error: the signature still verifies
	if _, err := svc.ExtractEmail(token); err != nil {
		t.Errorf("ExtractEmail on expired token: %v", err)
	}
}

func TestExtractEmail_Tampered(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.GenerateToken("alice@example.com", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := token[:len(token)-4] + "AAAA"
	if _, err := svc.ExtractEmail(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered token, got: %v", err)
	}
}

func TestExtractEmail_WrongKey(t *testing.T) {
	svc := newTestService(t, time.Hour)

	other, err := NewJWTService(base64.StdEncoding.EncodeToString([]byte("a-totally-different-signing-key!")), time.Hour)
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}
	token, err := other.GenerateToken("alice@example.com", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := svc.ExtractEmail(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong key, got: %v", err)
	}
}
