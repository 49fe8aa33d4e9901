package leave

import (
	"context"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
)

type LeaveService interface {
	// Apply appends a Pending request for the caller
	Apply(ctx context.Context, session user.Session, req ApplyLeaveRequest) (LeaveResponse, error)

	// ListMine returns the caller's own requests
	ListMine(ctx context.Context, session user.Session) ([]LeaveResponse, error)

	// List returns one roster employee's requests
	List(ctx context.Context, session user.Session, employeeID string) ([]LeaveResponse, error)

	// Pending returns pending requests across the caller's roster
	Pending(ctx context.Context, session user.Session) ([]EmployeeLeaveResponse, error)

	// UpdateStatus sets the status of the entry at index
	UpdateStatus(ctx context.Context, session user.Session, employeeID string, index int, req UpdateLeaveStatusRequest) (LeaveResponse, error)

	// Delete removes the entry at index
	Delete(ctx context.Context, session user.Session, employeeID string, index int) error

	// Approved returns approved requests overlapping the month, used for LOP
	Approved(ctx context.Context, employeeID string, year int, month int) ([]LeaveRequest, error)
}
