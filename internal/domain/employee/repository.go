package employee

import "context"

type EmployeeRepository interface {
	// GetByID returns ErrEmployeeNotFound when the document is missing
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListByManager returns the roster of a manager ordered by name
	ListByManager(ctx context.Context, managerID string) ([]Employee, error)
}
