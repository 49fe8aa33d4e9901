package payslip

import (
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
)

// Earnings is the computed money part of a payslip.
type Earnings struct {
	BasicSalary     decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	GrossPay        decimal.Decimal
	LOPAmount       decimal.Decimal
	NetPay          decimal.Decimal
}

// Calculate applies
//
//	gross = basic + allowances
//	lop   = gross / daysInMonth * lopDays, rounded to 2dp
//	net   = gross - deductions - lop
//
// and rejects a negative net pay.
func Calculate(basic decimal.Decimal, allowances, deductions []payslip.Component, daysInMonth, lopDays int) (Earnings, error) {
	totalAllowances := payslip.SumComponents(allowances)
	totalDeductions := payslip.SumComponents(deductions)
	gross := basic.Add(totalAllowances)

	lop := decimal.Zero
	if daysInMonth > 0 && lopDays > 0 {
		lop = gross.Mul(decimal.NewFromInt(int64(lopDays))).
			Div(decimal.NewFromInt(int64(daysInMonth))).
			Round(2)
	}

	net := gross.Sub(totalDeductions).Sub(lop)
	if net.IsNegative() {
		return Earnings{}, payslip.ErrNegativeNetPay
	}

	return Earnings{
		BasicSalary:     basic,
		TotalAllowances: totalAllowances,
		TotalDeductions: totalDeductions,
		GrossPay:        gross,
		LOPAmount:       lop,
		NetPay:          net,
	}, nil
}
