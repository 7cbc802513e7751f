package utils

import (
	"fmt"
	"testing"
	"time"

	dgjwt "github.com/dgrijalva/jwt-go"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
)

func parseClaims(t *testing.T, token, key string) (*models.Claims, error) {
	t.Helper()
	claims := &models.Claims{}
	_, err := dgjwt.ParseWithClaims(token, claims, func(tok *dgjwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*dgjwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return []byte(key), nil
	})
	return claims, err
}

func TestNewAccessTokenRoundTrip(t *testing.T) {
	m, err := NewManager("test-key")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	token, err := m.NewAccessToken(models.Claims{
		UserID: 42,
		Role:   "user",
		StandardClaims: dgjwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Minute).Unix(),
		},
	})
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims, err := parseClaims(t, token, "test-key")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "user" {
		t.Errorf("claims = %+v, want UserID 42 role user", claims)
	}
}

func TestNewAccessTokenWrongKey(t *testing.T) {
	m, _ := NewManager("key-one")

	token, err := m.NewAccessToken(models.Claims{UserID: 7})
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := parseClaims(t, token, "key-two"); err == nil {
		t.Fatal("expected signature validation to fail")
	}
}

func TestNewManagerEmptyKey(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatal("expected error for empty signing key")
	}
}

func TestNewRefreshToken(t *testing.T) {
	m, _ := NewManager("test-key")

	a, err := m.NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	b, _ := m.NewRefreshToken()

	if len(a) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(a))
	}
	if a == b {
		t.Error("two refresh tokens were identical")
	}
}
