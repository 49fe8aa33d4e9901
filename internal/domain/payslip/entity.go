package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthLayout is the YYYY-MM key a payslip is stored under.
const MonthLayout = "2006-01"

// ComponentType enum
type ComponentType string

const (
	ComponentTypeAllowance ComponentType = "allowance"
	ComponentTypeDeduction ComponentType = "deduction"
)

// Component is one named allowance or statutory deduction line.
type Component struct {
	Name   string
	Type   ComponentType
	Amount decimal.Decimal
}

// Payslip is write-once per (employee, month).
type Payslip struct {
	EmployeeID      string
	EmployeeName    string
	EmployeeRole    string
	Month           string // YYYY-MM
	BasicSalary     decimal.Decimal
	Allowances      []Component
	TotalAllowances decimal.Decimal
	Deductions      []Component
	TotalDeductions decimal.Decimal
	DaysInMonth     int
	LOPDays         int
	LOPAmount       decimal.Decimal
	GrossPay        decimal.Decimal
	NetPay          decimal.Decimal
	DocumentPath    string
	DocumentURL     string
	GeneratedAt     time.Time
	GeneratedBy     string
}

// SumComponents totals component amounts.
func SumComponents(components []Component) decimal.Decimal {
	total := decimal.Zero
	for _, c := range components {
		total = total.Add(c.Amount)
	}
	return total
}
