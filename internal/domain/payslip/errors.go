package payslip

import "errors"

var (
	ErrPayslipAlreadyExists    = errors.New("payslip already generated for this month")
	ErrPayslipNotFound         = errors.New("payslip not found")
	ErrEmployeeHasNoBaseSalary = errors.New("employee has no base salary configured")
	ErrNegativeNetPay          = errors.New("deductions exceed gross pay")
	ErrFutureMonth             = errors.New("cannot generate a payslip for a future month")
)
