package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseWith(secret string) jwt.Keyfunc {
	return func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}
}

func TestServiceTokenClaims(t *testing.T) {
	token, err := NewJWTServiceWithSecret("secret").GenerateServiceToken("recipe-admin")
	require.NoError(t, err)

	claims := &jwtServiceClaim{}
	parsed, err := jwt.ParseWithClaims(token, claims, parseWith("secret"),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "recipe-admin", claims.Subject)
	assert.Equal(t, "RECIPE-ADMIN", claims.Issuer)
	assert.Equal(t, serviceScope, claims.Scope)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestServiceTokenSignedWithConfiguredSecret(t *testing.T) {
	token, err := NewJWTServiceWithSecret("secret").GenerateServiceToken("recipe-admin")
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(token, &jwtServiceClaim{}, parseWith("other"))
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestServiceTokenExpiresAfterTTL(t *testing.T) {
	svc := &jwtService{secretKey: "secret", issuer: "RECIPE-ADMIN", ttl: -time.Minute}

	token, err := svc.GenerateServiceToken("recipe-admin")
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(token, &jwtServiceClaim{}, parseWith("secret"))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
