package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateToken("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret", time.Hour)
	verifier := NewJWTService("other-secret", time.Hour)

	token, err := issuer.GenerateToken("admin")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("secret", -time.Minute)

	token, err := svc.GenerateToken("admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
