package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() *AuthService {
	return NewAuthService(access.NewGate(nil), &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 12})
}

func TestAuthService_Login(t *testing.T) {
	service := newAuthService()

	result, err := service.Login(context.Background(), access.RoleFinance, "3333")
	require.NoError(t, err)
	assert.Equal(t, access.RoleFinance, result.Role)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, access.RoleFinance, claims["role"])
	assert.NotEmpty(t, claims["jti"])
}

func TestAuthService_Login_WrongPin(t *testing.T) {
	service := newAuthService()

	result, err := service.Login(context.Background(), access.RoleFinance, "0000")
	assert.Nil(t, result)
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Incorrect PIN", err.Error())
}

func TestAuthService_Login_UnknownRole(t *testing.T) {
	service := newAuthService()

	_, err := service.Login(context.Background(), "Treasurer", "1111")
	assert.EqualError(t, err, "Unknown role")
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	service := newAuthService()

	_, err := service.Login(context.Background(), "", "")
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestAuthService_Logout(t *testing.T) {
	service := newAuthService()
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	service.Logout("session-1", now.Add(time.Hour))
	service.Logout("stale", now.Add(-time.Minute))
	service.Logout("", now.Add(time.Hour))

	assert.True(t, service.Revoked("session-1"))
	assert.False(t, service.Revoked("stale"))
	assert.False(t, service.Revoked("session-2"))

	// expired entries are pruned on the next logout
	now = now.Add(2 * time.Hour)
	service.Logout("session-2", now.Add(time.Hour))
	assert.False(t, service.Revoked("session-1"))
	assert.True(t, service.Revoked("session-2"))
}
