package leave

import "context"

// LeaveRepository stores each employee's leave list as one ordered sequence.
type LeaveRepository interface {
	// Get returns the list of an employee, empty when none exists
	Get(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	// Append adds one request to the end of the list
	Append(ctx context.Context, employeeID string, req LeaveRequest) error

	// Replace overwrites the whole list
	Replace(ctx context.Context, employeeID string, reqs []LeaveRequest) error
}
