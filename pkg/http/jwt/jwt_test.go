package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenAndParseToken(t *testing.T) {
	secret := "test-secret"

	aToken, rToken, err := GenToken("identity-1", []byte(secret), 30, 60)
	require.NoError(t, err)
	require.NotEmpty(t, aToken)
	require.NotEmpty(t, rToken)

	claims, err := ParseToken(aToken, secret)
	require.NoError(t, err)
	assert.Equal(t, "identity-1", claims.IdentityId)
}

func TestParseTokenWrongSecret(t *testing.T) {
	aToken, _, err := GenToken("identity-1", []byte("secret-a"), 30, 60)
	require.NoError(t, err)

	_, err = ParseToken(aToken, "secret-b")
	assert.Error(t, err)
}
