package utils

import (
	"testing"

	"perkpay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	claims := &models.UserClaims{
		UserID:       42,
		Email:        "ada@example.com",
		Role:         "user",
		TokenVersion: 3,
	}

	access, refresh, err := GenerateTokens(claims)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	for _, token := range []string{access, refresh} {
		_, parsed, err := ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), parsed.UserID)
		assert.Equal(t, "ada@example.com", parsed.Email)
		assert.Equal(t, "user", parsed.Role)
		assert.Equal(t, 3, parsed.TokenVersion)
		assert.Equal(t, "perkpay-api", parsed.Issuer)
	}
}

func TestGenerateTokens_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, _, err := GenerateTokens(&models.UserClaims{UserID: 1})
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	access, _, err := GenerateTokens(&models.UserClaims{UserID: 1})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, _, err = ParseToken(access)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, _, err := ParseToken("not.a.token")
	assert.Error(t, err)
}
