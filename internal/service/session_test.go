package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"demo-bank/internal/domain"
)

func testUser() domain.User {
	return domain.User{
		ID:        1,
		UserID:    "ext-1",
		Email:     "user@example.com",
		FirstName: "Ana",
		LastName:  "Pérez",
	}
}

func TestSessionCodec_EncodeDecode(t *testing.T) {
	codec := NewSessionCodec("secret", SessionTTL)

	token, expiresAt, err := codec.Encode(testUser())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if remaining := time.Until(expiresAt); remaining < 6*24*time.Hour {
		t.Fatalf("expected ~7 day expiry, got %v", remaining)
	}

	claims, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.UserID != 1 || claims.Email != "user@example.com" || claims.FirstName != "Ana" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestSessionCodec_TamperedTokenRejected(t *testing.T) {
	codec := NewSessionCodec("secret", SessionTTL)
	token, _, err := codec.Encode(testUser())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Altera un byte del último segmento (la firma).
	raw := []byte(token)
	last := len(raw) - 1
	if raw[last] == 'A' {
		raw[last] = 'B'
	} else {
		raw[last] = 'A'
	}

	if _, err := codec.Decode(string(raw)); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid for tampered token, got %v", err)
	}
}

func TestSessionCodec_WrongSecretRejected(t *testing.T) {
	codec := NewSessionCodec("secret", SessionTTL)
	token, _, err := codec.Encode(testUser())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	other := NewSessionCodec("rotated", SessionTTL)
	if _, err := other.Decode(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected rotated secret to invalidate token, got %v", err)
	}
}

func TestSessionCodec_ExpiredTokenRejected(t *testing.T) {
	codec := NewSessionCodec("secret", SessionTTL)

	// Token firmado con el mismo secreto pero ya vencido.
	now := time.Now().UTC()
	claims := SessionClaims{
		UserID: 1,
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "demo-bank",
			IssuedAt:  jwt.NewNumericDate(now.Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	if _, err := codec.Decode(expired); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestSessionCodec_NearExpiryStillValid(t *testing.T) {
	codec := NewSessionCodec("secret", SessionTTL)

	now := time.Now().UTC()
	claims := SessionClaims{
		UserID: 1,
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "demo-bank",
			IssuedAt:  jwt.NewNumericDate(now.Add(-7 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Second)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := codec.Decode(token); err != nil {
		t.Fatalf("expected token 1s before expiry to decode, got %v", err)
	}
}

func TestSessionCodec_EmptySecret(t *testing.T) {
	codec := NewSessionCodec("", SessionTTL)
	if _, _, err := codec.Encode(testUser()); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid on empty secret, got %v", err)
	}
	if _, err := codec.Decode("anything"); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid on empty secret decode, got %v", err)
	}
}
