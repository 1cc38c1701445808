package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	pair, err := m.GenerateTokenPair(userID, RoleHost)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := m.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, RoleHost, claims.Role)
	assert.Equal(t, "service-rentals", claims.Issuer)
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	m := NewJWTManager("secret-a", 15*time.Minute, 24*time.Hour)
	other := NewJWTManager("secret-b", 15*time.Minute, 24*time.Hour)

	pair, err := m.GenerateTokenPair(uuid.New(), RoleRenter)
	require.NoError(t, err)

	_, err = other.ValidateToken(pair.AccessToken)
	require.Error(t, err)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	pair, err := m.GenerateTokenPair(uuid.New(), RoleRenter)
	require.NoError(t, err)

	_, err = m.ValidateToken(pair.AccessToken)
	require.Error(t, err)
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)

	_, err := m.ValidateToken("not.a.token")
	require.Error(t, err)
}
