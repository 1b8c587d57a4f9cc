package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/config"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T, issuer string) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          testSecret,
		Issuer:          issuer,
		ExpirationHours: 24,
	})
}

func signClaims(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := setupTestJWTService(t, "")
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "authenticated", claims.Role)
}

func TestJWTService_ValidateToken_Failures(t *testing.T) {
	service := setupTestJWTService(t, "")
	userID := uuid.New()
	now := time.Now()

	valid := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	expired := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	}
	notUUID := jwt.RegisteredClaims{
		Subject:   "service-role",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	tests := []struct {
		name    string
		token   string
		wantErr string
	}{
		{name: "empty", token: "", wantErr: "token string is empty"},
		{name: "malformed", token: "not.a.jwt", wantErr: "malformed token"},
		{name: "wrong secret", token: signClaims(t, jwt.SigningMethodHS256, []byte("other-secret"), valid), wantErr: "invalid token signature"},
		{name: "expired", token: signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), expired), wantErr: "token expired"},
		{name: "other HMAC alg", token: signClaims(t, jwt.SigningMethodHS512, []byte(testSecret), valid), wantErr: "invalid token signature"},
		{name: "subject not a UUID", token: signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), notUUID), wantErr: "not a user ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestJWTService_Issuer(t *testing.T) {
	service := setupTestJWTService(t, "https://auth.example.com")
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	require.NoError(t, err)
	_, err = service.ValidateToken(token)
	require.NoError(t, err)

	otherIssuer := signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    "https://elsewhere.example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	_, err = service.ValidateToken(otherIssuer)
	assert.Error(t, err)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, "")
	userID := uuid.New()
	token, err := service.GenerateToken(userID)
	require.NoError(t, err)

	getter, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, getter.GetUserID())

	_, err = service.AsTokenValidator().ValidateToken("bad")
	assert.Error(t, err)
}
