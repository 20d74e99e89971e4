package service_test

import (
	"testing"

	"github.com/partydeck/monikers-server/internal/config"
	"github.com/partydeck/monikers-server/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthService(secret string) *service.AuthService {
	return service.NewAuthService(&config.Config{
		JWTSecret:          secret,
		JWTExpirationHours: 1,
	})
}

func TestAuthService_CreateGuestSession(t *testing.T) {
	svc := testAuthService("test-secret")

	session, err := svc.CreateGuestSession("Alice", "")
	require.NoError(t, err)
	assert.NotEmpty(t, session.PlayerID)
	assert.Equal(t, "Alice", session.Name)
	assert.NotEmpty(t, session.Token)

	claims, err := svc.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.PlayerID, (*claims)["sub"])
	assert.Equal(t, "Alice", (*claims)["name"])
}

func TestAuthService_KeepsSuppliedPlayerID(t *testing.T) {
	svc := testAuthService("test-secret")

	session, err := svc.CreateGuestSession("Alice", "stable-id")
	require.NoError(t, err)
	assert.Equal(t, "stable-id", session.PlayerID)

	playerID, err := svc.PlayerIDFromToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "stable-id", playerID)
}

func TestAuthService_RejectsBlankName(t *testing.T) {
	svc := testAuthService("test-secret")

	_, err := svc.CreateGuestSession("   ", "")
	assert.ErrorIs(t, err, service.ErrInvalidName)
}

func TestAuthService_RejectsForeignToken(t *testing.T) {
	svc := testAuthService("test-secret")
	other := testAuthService("other-secret")

	session, err := other.CreateGuestSession("Mallory", "")
	require.NoError(t, err)

	_, err = svc.ValidateToken(session.Token)
	assert.Error(t, err)

	_, err = svc.PlayerIDFromToken(session.Token)
	assert.Error(t, err)
}

func TestAuthService_RejectsGarbageToken(t *testing.T) {
	svc := testAuthService("test-secret")

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
