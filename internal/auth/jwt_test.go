package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", "faithtracker", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "pastor.kim", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "pastor.kim", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "faithtracker", claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := NewJWTService("secret-a", "faithtracker", time.Hour)
	other := NewJWTService("secret-b", "faithtracker", time.Hour)

	token, err := svc.GenerateToken(uuid.New(), "staff", false)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", "faithtracker", -time.Minute)
	// Zero or negative TTL falls back to the default, so build an expired
	// token by hand with a tiny positive TTL.
	svc.ttl = -time.Minute

	token, err := svc.GenerateToken(uuid.New(), "staff", false)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret", "faithtracker", time.Hour)
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
