package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "test-access-secret-key-for-testing-purposes"
	testRefreshSecret = "test-refresh-secret-key-for-testing-purposes"
)

func TestNewService(t *testing.T) {
	service := NewService(
		testAccessSecret,
		testRefreshSecret,
		time.Hour,
		24*time.Hour,
	)

	assert.NotNil(t, service)
	assert.Equal(t, testAccessSecret, service.accessSecret)
	assert.Equal(t, testRefreshSecret, service.refreshSecret)
	assert.Equal(t, time.Hour, service.accessTokenExpiry)
	assert.Equal(t, 24*time.Hour, service.refreshTokenExpiry)
}

func TestGenerateAccessToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	userID := uuid.New().String()

	token, err := service.GenerateAccessToken(userID, "owner@example.com", "store_owner")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Validate the generated token
	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, "store_owner", claims.Role)
	assert.Equal(t, AccessToken, claims.TokenType)
}

func TestGenerateRefreshToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	userID := uuid.New().String()

	token, err := service.GenerateRefreshToken(userID, "user@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateAccessToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	userID := uuid.New().String()

	t.Run("Rejects refresh token as access token", func(t *testing.T) {
		token, err := service.GenerateRefreshToken(userID, "user@example.com")
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("Rejects token signed with wrong secret", func(t *testing.T) {
		other := NewService("some-other-secret", testRefreshSecret, time.Hour, 24*time.Hour)
		token, err := other.GenerateAccessToken(userID, "user@example.com", "customer")
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("Rejects garbage", func(t *testing.T) {
		_, err := service.ValidateAccessToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestIsTokenExpired(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, -time.Hour, 24*time.Hour)
	userID := uuid.New().String()

	token, err := service.GenerateAccessToken(userID, "user@example.com", "customer")
	require.NoError(t, err)
	assert.True(t, service.IsTokenExpired(token))

	fresh := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	token, err = fresh.GenerateAccessToken(userID, "user@example.com", "customer")
	require.NoError(t, err)
	assert.False(t, fresh.IsTokenExpired(token))
	assert.True(t, fresh.IsTokenExpired("garbage"))
}
