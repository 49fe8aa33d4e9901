package payslip

import "context"

type PayslipRepository interface {
	// Get returns ErrPayslipNotFound when absent
	Get(ctx context.Context, employeeID string, month string) (Payslip, error)

	// List returns an employee's payslips, newest month first
	List(ctx context.Context, employeeID string) ([]Payslip, error)

	Exists(ctx context.Context, employeeID string, month string) (bool, error)

	// Create is write-once: a second write for the same (employee, month)
	// returns ErrPayslipAlreadyExists and leaves the first one intact.
	Create(ctx context.Context, p Payslip) error
}
