package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	_, err := NewJWTManager("", time.Hour)
	require.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	m, err := NewJWTManager("unit-test-secret", time.Hour)
	require.NoError(t, err)

	token, err := m.GenerateToken("user-42", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m1, err := NewJWTManager("secret-one", time.Hour)
	require.NoError(t, err)
	m2, err := NewJWTManager("secret-two", time.Hour)
	require.NoError(t, err)

	token, err := m1.GenerateToken("user-42", "user")
	require.NoError(t, err)

	_, err = m2.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	m, err := NewJWTManager("unit-test-secret", time.Millisecond)
	require.NoError(t, err)

	token, err := m.GenerateToken("user-42", "user")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = m.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	m, err := NewJWTManager("unit-test-secret", time.Hour)
	require.NoError(t, err)

	_, err = m.ValidateToken("not-a-token")
	require.Error(t, err)
}
