package employee

import (
	"context"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
)

type EmployeeService interface {
	// ListEmployees returns the caller's roster filtered and paginated
	ListEmployees(ctx context.Context, session user.Session, filter EmployeeFilter) (ListEmployeeResponse, error)

	// GetEmployee returns one employee of the caller's roster
	GetEmployee(ctx context.Context, session user.Session, id string) (EmployeeResponse, error)

	// Roster returns the caller's full roster filtered by role
	Roster(ctx context.Context, session user.Session, role string) ([]Employee, error)

	// Authorize checks that employeeID belongs to the caller's roster
	Authorize(ctx context.Context, session user.Session, employeeID string) (Employee, error)
}
