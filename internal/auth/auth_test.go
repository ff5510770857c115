package auth

import (
	"testing"
	"time"

	"apartment-backend/internal/config"
	"apartment-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.Issuer = "apartment-backend"
	return cfg
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig())
	token, err := m.GenerateToken(&models.User{Username: "admin", FullName: "Quan Tri"})
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Username != "admin" || claims.HoTen != "Quan Tri" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager(testConfig()).GenerateToken(&models.User{Username: "admin"})
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	other := testConfig()
	other.JWT.Secret = "another-secret"
	if _, err := NewJWTManager(other).ValidateToken(token); err == nil {
		t.Errorf("expected signature mismatch to be rejected")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := testConfig()
	claims := &Claims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := NewJWTManager(cfg).ValidateToken(token); err == nil {
		t.Errorf("expected expired token to be rejected")
	}
}

func TestValidateTokenRejectsOtherSigningMethod(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Username: "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := NewJWTManager(testConfig()).ValidateToken(token); err == nil {
		t.Errorf("expected unsigned token to be rejected")
	}
}

func TestVerifyPasswordPlain(t *testing.T) {
	if !VerifyPassword("123456", "123456") {
		t.Errorf("expected plain secret to match")
	}
	if VerifyPassword("123456", "654321") {
		t.Errorf("expected plain mismatch to fail")
	}
}

func TestVerifyPasswordBcrypt(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !IsHashed(hash) {
		t.Fatalf("expected %q to be recognised as a hash", hash)
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Errorf("expected bcrypt secret to match")
	}
	if VerifyPassword(hash, "wrong") {
		t.Errorf("expected bcrypt mismatch to fail")
	}
	if VerifyPassword(hash, hash) {
		t.Errorf("hash must not verify against itself")
	}
}
