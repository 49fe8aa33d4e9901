package user

import "context"

type Role string

const (
	RoleAdmin    Role = "admin"    // HR admin - full access
	RoleManager  Role = "manager"  // Sees and approves their roster
	RoleEmployee Role = "employee" // Regular employee
)

// Session identifies the caller of a request. It is created by the auth
// middleware and passed explicitly into every service call.
type Session struct {
	UserID     string
	EmployeeID string
	Name       string
	Email      string
	Role       Role
}

// IsManager checks if the session belongs to a manager or admin
func (s Session) IsManager() bool {
	return s.Role == RoleManager || s.Role == RoleAdmin
}

// SubjectID returns the employee id when present, otherwise the user id.
func (s Session) SubjectID() string {
	if s.EmployeeID != "" {
		return s.EmployeeID
	}
	return s.UserID
}

type sessionKey struct{}

// WithSession stores the session on the request context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session placed by the auth middleware.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

// ParseRole returns the matching role or RoleEmployee for unknown values.
func ParseRole(v string) Role {
	switch Role(v) {
	case RoleAdmin, RoleManager:
		return Role(v)
	default:
		return RoleEmployee
	}
}
