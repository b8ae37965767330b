package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	other := NewTokenIssuer("other-secret")

	token, err := issuer.GenerateToken(42)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	_, err := issuer.ValidateToken("not-a-token")
	assert.Error(t, err)
}
