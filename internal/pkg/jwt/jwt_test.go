package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAccessToken_RoundTrip(t *testing.T) {
	// Arrange
	svc := NewJWTService("test-secret", "1h")
	session := user.Session{UserID: "m1", EmployeeID: "m1", Name: "Meera", Email: "meera@example.com", Role: user.RoleManager}

	// Act
	token, expiresAt, err := svc.GenerateAccessToken(session)
	require.NoError(t, err)
	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	got, err := SessionFromClaims(claims)

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)
	assert.Equal(t, session, got)
}

func TestJWTService_GenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")

	_, _, err := svc.GenerateAccessToken(user.Session{UserID: "u1"})

	assert.Error(t, err)
}

func TestSessionFromClaims_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]interface{}
	}{
		{"refresh token", map[string]interface{}{"type": "refresh", "user_id": "u1"}},
		{"missing user", map[string]interface{}{"type": "access"}},
		{"no type", map[string]interface{}{"user_id": "u1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SessionFromClaims(tt.claims)
			assert.ErrorIs(t, err, user.ErrInvalidToken)
		})
	}
}

func TestSessionFromClaims_UnknownRoleIsEmployee(t *testing.T) {
	session, err := SessionFromClaims(map[string]interface{}{"type": "access", "user_id": "u1", "role": "owner"})

	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, session.Role)
}
