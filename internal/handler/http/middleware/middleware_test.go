package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoSession(t *testing.T, got *user.Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := user.SessionFromContext(r.Context())
		require.True(t, ok)
		*got = s
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthRequired_PlacesSession(t *testing.T) {
	// Arrange
	svc := jwt.NewJWTService("secret", "1h")
	token, _, err := svc.GenerateAccessToken(user.Session{UserID: "m1", Role: user.RoleManager})
	require.NoError(t, err)

	var got user.Session
	handler := jwtauth.Verifier(svc.JWTAuth())(AuthRequired(svc.JWTAuth())(echoSession(t, &got)))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "m1", got.UserID)
	assert.Equal(t, user.RoleManager, got.Role)
}

func TestAuthRequired_MissingToken(t *testing.T) {
	svc := jwt.NewJWTService("secret", "1h")
	handler := jwtauth.Verifier(svc.JWTAuth())(AuthRequired(svc.JWTAuth())(http.NotFoundHandler()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type fakeVerifier struct {
	token *auth.Token
	err   error
}

func (f fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	return f.token, f.err
}

func TestFirebaseAuthRequired(t *testing.T) {
	var got user.Session
	verifier := fakeVerifier{token: &auth.Token{UID: "uid-1", Claims: map[string]interface{}{"role": "manager", "name": "Meera"}}}
	handler := FirebaseAuthRequired(verifier)(echoSession(t, &got))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer id-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "uid-1", got.UserID)
	assert.Equal(t, "uid-1", got.EmployeeID)
	assert.Equal(t, user.RoleManager, got.Role)

	rec = httptest.NewRecorder()
	FirebaseAuthRequired(fakeVerifier{err: errors.New("expired")})(http.NotFoundHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireManager(t *testing.T) {
	handler := RequireManager(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		role user.Role
		want int
	}{
		{user.RoleManager, http.StatusNoContent},
		{user.RoleAdmin, http.StatusNoContent},
		{user.RoleEmployee, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(user.WithSession(req.Context(), user.Session{UserID: "u", Role: tt.role}))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequirePermission(t *testing.T) {
	handler := RequirePermission(user.PermissionPayslipGenerate)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(user.WithSession(req.Context(), user.Session{UserID: "e1", Role: user.RoleEmployee}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "payslip.generate")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
