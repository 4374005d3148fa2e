package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := MakeToken("user1", "Jane Responder", "responder", "secret")
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)

	assert.Equal(t, "user1", claims.Subject)
	assert.Equal(t, "Jane Responder", claims.Name)
	assert.Equal(t, "responder", claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := MakeToken("user1", "Jane", "responder", "secret")
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", "secret")
	assert.Error(t, err)
}
