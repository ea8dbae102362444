package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilshetty5/superhireX/internal/config"
	"github.com/nikhilshetty5/superhireX/internal/db"
)

func newTestJWTService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 1})
}

func TestJWT_RoundTrip(t *testing.T) {
	svc := newTestJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, db.RoleSeeker)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, db.RoleSeeker, claims.GetRole())
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := newTestJWTService("secret-a").GenerateToken(uuid.New(), db.RoleRecruiter)
	require.NoError(t, err)

	_, err = newTestJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_EmptyToken(t *testing.T) {
	_, err := newTestJWTService("test-secret").ValidateToken("")
	assert.Error(t, err)
}

func TestJWT_GarbageToken(t *testing.T) {
	_, err := newTestJWTService("test-secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}
