package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	token, err := manager.CreateAccessToken(42, "admin", "admin@kollapso.com.br")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ParseValidate(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "admin@kollapso.com.br", claims.Email)
}

func TestExpiredTokenRejected(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	token, err := manager.CreateAccessToken(1, "user", "user@example.com")
	require.NoError(t, err)

	_, err = manager.ParseValidate(token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	token, err := manager.CreateAccessToken(1, "user", "user@example.com")
	require.NoError(t, err)

	_, err = other.ParseValidate(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	_, err := manager.ParseValidate("not-a-token")
	assert.Error(t, err)
}
