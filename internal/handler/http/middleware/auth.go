package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired turns the token verified by jwtauth.Verifier into a session.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			session, err := jwt.SessionFromClaims(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(user.WithSession(r.Context(), session)))
		}
		return http.HandlerFunc(hfn)
	}
}

// IDTokenVerifier is satisfied by *auth.Client.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuthRequired verifies a Firebase ID token from the Authorization
// header. The role and employee id come from custom claims.
func FirebaseAuthRequired(verifier IDTokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idToken := jwtauth.TokenFromHeader(r)
			if idToken == "" {
				response.HandleError(w, user.ErrSessionMissing)
				return
			}

			token, err := verifier.VerifyIDToken(r.Context(), idToken)
			if err != nil {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(user.WithSession(r.Context(), sessionFromIDToken(token))))
		})
	}
}

func sessionFromIDToken(token *auth.Token) user.Session {
	claim := func(key string) string {
		v, _ := token.Claims[key].(string)
		return strings.TrimSpace(v)
	}

	session := user.Session{
		UserID:     token.UID,
		EmployeeID: claim("employee_id"),
		Name:       claim("name"),
		Email:      claim("email"),
		Role:       user.ParseRole(claim("role")),
	}
	if session.EmployeeID == "" {
		session.EmployeeID = token.UID
	}
	return session
}

// JWT chains token verification and session extraction.
func JWT(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return jwtauth.Verifier(ja)(AuthRequired(ja)(next))
	}
}
