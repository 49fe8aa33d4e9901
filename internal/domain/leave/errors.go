package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidLeaveStatus   = errors.New("status must be one of: Pending, Approved, Not Approved")
)
