package utils

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	_ = os.Setenv("JWT_SECRET", "clinic_test_jwt_secret_key_1234567890")
	os.Exit(m.Run())
}

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)
}

func TestGenerateTokenRejectsNilUser(t *testing.T) {
	_, err := GenerateToken(uuid.Nil)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("")
	assert.Error(t, err)

	_, err = ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Secret123")
	require.NoError(t, err)
	require.NotEqual(t, "Secret123", hash)

	assert.True(t, CheckPasswordHash("Secret123", hash))
	assert.False(t, CheckPasswordHash("WrongPassword", hash))
}
