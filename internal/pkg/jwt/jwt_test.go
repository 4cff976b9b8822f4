package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateServiceToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-signing-key")

	token, err := svc.GenerateServiceToken("ops-cli", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ops-cli", claims["sub"])
	assert.Equal(t, "service", claims["type"])
}

func TestGenerateServiceToken_ExpiredIsRejected(t *testing.T) {
	svc := NewJWTService("test-signing-key")

	// Expired beyond the 30s acceptable skew.
	token, err := svc.GenerateServiceToken("ops-cli", -2*time.Minute)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(svc.JWTAuth(), token)
	assert.Error(t, err)
}

func TestGenerateServiceToken_WrongKeyIsRejected(t *testing.T) {
	issuer := NewJWTService("key-one")
	verifier := NewJWTService("key-two")

	token, err := issuer.GenerateServiceToken("ops-cli", time.Minute)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(verifier.JWTAuth(), token)
	assert.Error(t, err)
}
