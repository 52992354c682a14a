package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthTokenRoundTrip(t *testing.T) {
	tok, err := NewAuthToken("secret", 42, true, 60)
	require.NoError(t, err)

	id, err := ParseAuthToken("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id.UserID)
	assert.True(t, id.IsAdmin)
}

func TestAuthTokenNonAdmin(t *testing.T) {
	tok, err := NewAuthToken("secret", 7, false, 60)
	require.NoError(t, err)

	id, err := ParseAuthToken("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id.UserID)
	assert.False(t, id.IsAdmin)
}

func TestParseAuthToken_WrongSecret(t *testing.T) {
	tok, err := NewAuthToken("secret", 42, false, 60)
	require.NoError(t, err)

	_, err = ParseAuthToken("other", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAuthToken_Garbage(t *testing.T) {
	_, err := ParseAuthToken("secret", "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAuthToken_Expired(t *testing.T) {
	tok, err := NewAuthToken("secret", 42, false, -1)
	require.NoError(t, err)

	_, err = ParseAuthToken("secret", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
