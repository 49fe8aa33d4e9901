package payslip

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ComponentInput struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type GeneratePayslipRequest struct {
	Month       string           `json:"month"`                  // YYYY-MM
	BasicSalary *decimal.Decimal `json:"basic_salary,omitempty"` // defaults to the employee's base salary
	Allowances  []ComponentInput `json:"allowances"`
	Deductions  []ComponentInput `json:"deductions"`
	LOPDays     *int             `json:"lop_days,omitempty"` // derived from the attendance matrix when omitted
}

func (r *GeneratePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidMonth(r.Month); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if r.BasicSalary != nil && r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "basic_salary",
			Message: "basic_salary must not be negative",
		})
	}

	errs = append(errs, validateComponents("allowances", r.Allowances)...)
	errs = append(errs, validateComponents("deductions", r.Deductions)...)

	if r.LOPDays != nil && (*r.LOPDays < 0 || *r.LOPDays > 31) {
		errs = append(errs, validator.ValidationError{
			Field:   "lop_days",
			Message: "lop_days must be between 0 and 31",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateComponents(field string, items []ComponentInput) validator.ValidationErrors {
	var errs validator.ValidationErrors
	seen := make(map[string]bool, len(items))
	for i := range items {
		items[i].Name = strings.TrimSpace(items[i].Name)
		key := fmt.Sprintf("%s[%d]", field, i)
		if validator.IsEmpty(items[i].Name) {
			errs = append(errs, validator.ValidationError{Field: key + ".name", Message: "name is required"})
		} else if seen[strings.ToLower(items[i].Name)] {
			errs = append(errs, validator.ValidationError{Field: key + ".name", Message: "duplicate component name"})
		}
		seen[strings.ToLower(items[i].Name)] = true
		if items[i].Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: key + ".amount", Message: "amount must not be negative"})
		}
	}
	return errs
}

// ToComponents converts request lines into typed components.
func ToComponents(items []ComponentInput, t ComponentType) []Component {
	out := make([]Component, 0, len(items))
	for _, it := range items {
		out = append(out, Component{Name: it.Name, Type: t, Amount: it.Amount})
	}
	return out
}

type ComponentResponse struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type PayslipResponse struct {
	EmployeeID      string              `json:"employee_id"`
	EmployeeName    string              `json:"employee_name"`
	Month           string              `json:"month"`
	BasicSalary     string              `json:"basic_salary"`
	Allowances      []ComponentResponse `json:"allowances"`
	TotalAllowances string              `json:"total_allowances"`
	Deductions      []ComponentResponse `json:"deductions"`
	TotalDeductions string              `json:"total_deductions"`
	DaysInMonth     int                 `json:"days_in_month"`
	LOPDays         int                 `json:"lop_days"`
	LOPAmount       string              `json:"lop_amount"`
	GrossPay        string              `json:"gross_pay"`
	NetPay          string              `json:"net_pay"`
	DocumentURL     string              `json:"document_url"`
	GeneratedAt     time.Time           `json:"generated_at"`
	GeneratedBy     string              `json:"generated_by"`
}

func ToResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		EmployeeID:      p.EmployeeID,
		EmployeeName:    p.EmployeeName,
		Month:           p.Month,
		BasicSalary:     p.BasicSalary.StringFixed(2),
		Allowances:      toComponentResponses(p.Allowances),
		TotalAllowances: p.TotalAllowances.StringFixed(2),
		Deductions:      toComponentResponses(p.Deductions),
		TotalDeductions: p.TotalDeductions.StringFixed(2),
		DaysInMonth:     p.DaysInMonth,
		LOPDays:         p.LOPDays,
		LOPAmount:       p.LOPAmount.StringFixed(2),
		GrossPay:        p.GrossPay.StringFixed(2),
		NetPay:          p.NetPay.StringFixed(2),
		DocumentURL:     p.DocumentURL,
		GeneratedAt:     p.GeneratedAt,
		GeneratedBy:     p.GeneratedBy,
	}
}

func toComponentResponses(cs []Component) []ComponentResponse {
	out := make([]ComponentResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, ComponentResponse{Name: c.Name, Amount: c.Amount.StringFixed(2)})
	}
	return out
}
