package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("secret", "65f1c0ffee0000000000abcd", "alice@example.com", "teacher")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	require.Equal(t, "65f1c0ffee0000000000abcd", claims.Subject)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "teacher", claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("secret", "id", "a@b.c", "student")
	require.NoError(t, err)

	_, err = ParseToken("other", token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("secret", "not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	require.True(t, CheckPassword(hash, "hunter22"))
	require.False(t, CheckPassword(hash, "hunter23"))
}
