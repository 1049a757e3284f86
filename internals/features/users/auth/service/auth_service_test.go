package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	userModel "kursusku_backend/internals/features/users/user/model"
)

func testUser() *userModel.UserModel {
	fullName := "Siti Rahma"
	return &userModel.UserModel{
		ID:       uuid.New(),
		UserName: "sitirahma",
		FullName: &fullName,
		Email:    "siti@example.com",
		Role:     "user",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	user := testUser()
	now := time.Now()
	exp := now.Add(24 * time.Hour)
	secret := "test-secret"

	raw, err := signToken(buildAccessClaims(user, now, exp), secret)
	if err != nil {
		t.Fatalf("Expected sign to succeed, got %v", err)
	}

	parsed, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("Expected parse to succeed, got %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		t.Fatalf("Expected valid MapClaims")
	}

	if claims["typ"] != "access" {
		t.Errorf("Expected typ to be %q, got %v", "access", claims["typ"])
	}
	if claims["id"] != user.ID.String() {
		t.Errorf("Expected id to be %q, got %v", user.ID.String(), claims["id"])
	}
	if claims["sub"] != user.ID.String() {
		t.Errorf("Expected sub to be %q, got %v", user.ID.String(), claims["sub"])
	}
	if claims["user_name"] != "sitirahma" {
		t.Errorf("Expected user_name to be %q, got %v", "sitirahma", claims["user_name"])
	}
	if claims["full_name"] != "Siti Rahma" {
		t.Errorf("Expected full_name to be %q, got %v", "Siti Rahma", claims["full_name"])
	}
	if claims["role"] != "user" {
		t.Errorf("Expected role to be %q, got %v", "user", claims["role"])
	}
	if int64(claims["exp"].(float64)) != exp.Unix() {
		t.Errorf("Expected exp %d, got %v", exp.Unix(), claims["exp"])
	}
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	user := testUser()
	now := time.Now()

	raw, err := signToken(buildAccessClaims(user, now, now.Add(time.Hour)), "secret-a")
	if err != nil {
		t.Fatalf("Expected sign to succeed, got %v", err)
	}

	_, err = jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	if err == nil {
		t.Errorf("Expected parse with wrong secret to fail")
	}
}

func TestRefreshClaimsAreLean(t *testing.T) {
	user := testUser()
	now := time.Now()
	claims := buildRefreshClaims(user, now, now.Add(7*24*time.Hour))

	if claims["typ"] != "refresh" {
		t.Errorf("Expected typ to be %q, got %v", "refresh", claims["typ"])
	}
	// refresh token tidak boleh membawa profil
	if _, ok := claims["user_name"]; ok {
		t.Errorf("Expected no user_name in refresh claims")
	}
	if _, ok := claims["role"]; ok {
		t.Errorf("Expected no role in refresh claims")
	}
}

func TestResolveBlacklistTTL(t *testing.T) {
	user := testUser()
	now := time.Now()
	exp := now.Add(3 * time.Hour)

	raw, err := signToken(buildAccessClaims(user, now, exp), "whatever")
	if err != nil {
		t.Fatalf("Expected sign to succeed, got %v", err)
	}

	fallback := now.Add(time.Minute)
	got := resolveBlacklistTTL(raw, fallback)
	if got.Unix() != exp.Unix() {
		t.Errorf("Expected ttl from token exp %d, got %d", exp.Unix(), got.Unix())
	}

	// token rusak → fallback
	got = resolveBlacklistTTL("bukan.token.jwt", fallback)
	if !got.Equal(fallback) {
		t.Errorf("Expected fallback %v, got %v", fallback, got)
	}
}

func TestTTLDefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "")
	t.Setenv("JWT_REFRESH_TTL_DAYS", "")

	if got := accessTTL(); got != accessTTLDefault {
		t.Errorf("Expected access ttl default %v, got %v", accessTTLDefault, got)
	}
	if got := refreshTTL(); got != refreshTTLDefault {
		t.Errorf("Expected refresh ttl default %v, got %v", refreshTTLDefault, got)
	}

	t.Setenv("JWT_ACCESS_TTL_MINUTES", "15")
	if got := accessTTL(); got != 15*time.Minute {
		t.Errorf("Expected access ttl 15m, got %v", got)
	}

	t.Setenv("JWT_REFRESH_TTL_DAYS", "30")
	if got := refreshTTL(); got != 30*24*time.Hour {
		t.Errorf("Expected refresh ttl 720h, got %v", got)
	}

	// nilai rusak kembali ke default
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "abc")
	if got := accessTTL(); got != accessTTLDefault {
		t.Errorf("Expected access ttl default on bad value, got %v", got)
	}
}

func TestHmacSHA256Deterministic(t *testing.T) {
	a := hmacSHA256("raw-token", "secret")
	b := hmacSHA256("raw-token", "secret")
	if !bytes.Equal(a, b) {
		t.Errorf("Expected equal digests for same input")
	}

	c := hmacSHA256("raw-token", "other-secret")
	if bytes.Equal(a, c) {
		t.Errorf("Expected different digests for different secrets")
	}
}
