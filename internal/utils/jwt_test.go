package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestGenerateAndValidateJWT(t *testing.T) {
	SetJWTSecret(testSecret)

	token, err := GenerateJWT("64b0c5f2a1d2e3f4a5b6c7d8", "eventMgmtVendor")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "64b0c5f2a1d2e3f4a5b6c7d8", claims.UserID)
	assert.Equal(t, "eventMgmtVendor", claims.Role)

	// Expiry should sit about one hour out.
	expiry := claims.ExpiresAt.Time
	assert.WithinDuration(t, time.Now().Add(TokenTTL), expiry, time.Minute)
}

func TestValidateJWTExpired(t *testing.T) {
	SetJWTSecret(testSecret)

	claims := &Claims{
		UserID: "64b0c5f2a1d2e3f4a5b6c7d8",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateJWT(signed)
	assert.Error(t, err)
}

func TestValidateJWTWrongSecret(t *testing.T) {
	SetJWTSecret(testSecret)
	token, err := GenerateJWT("64b0c5f2a1d2e3f4a5b6c7d8", "user")
	require.NoError(t, err)

	SetJWTSecret("another-secret")
	defer SetJWTSecret(testSecret)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestGenerateJWTWithoutSecret(t *testing.T) {
	SetJWTSecret("")
	defer SetJWTSecret(testSecret)

	_, err := GenerateJWT("64b0c5f2a1d2e3f4a5b6c7d8", "user")
	assert.Error(t, err)
}
