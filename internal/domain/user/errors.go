package user

import "errors"

var (
	ErrSessionMissing          = errors.New("no authenticated session")
	ErrInvalidToken            = errors.New("invalid token")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
