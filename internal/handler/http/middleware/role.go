package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/handler/http/response"
)

// RequireManager requires manager or admin role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := user.SessionFromContext(r.Context())
		if !ok {
			response.HandleError(w, user.ErrSessionMissing)
			return
		}

		if !session.IsManager() {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := user.SessionFromContext(r.Context())
			if !ok {
				response.HandleError(w, user.ErrSessionMissing)
				return
			}

			if !user.HasPermission(session.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, session.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
