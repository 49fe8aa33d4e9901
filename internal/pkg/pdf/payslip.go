package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/payslip"
	"github.com/jung-kurt/gofpdf"
)

const ContentType = "application/pdf"

// RenderPayslip lays out a one-page A4 payslip.
func RenderPayslip(p payslip.Payslip, companyName string) ([]byte, error) {
	month, err := time.Parse(payslip.MonthLayout, p.Month)
	if err != nil {
		return nil, fmt.Errorf("invalid payslip month %q: %w", p.Month, err)
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Payslip %s %s", p.EmployeeName, p.Month), false)
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 10, companyName, "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "", 12)
	doc.CellFormat(0, 8, "Payslip for "+month.Format("January 2006"), "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Arial", "", 11)
	infoRow(doc, "Employee", p.EmployeeName)
	infoRow(doc, "Employee ID", p.EmployeeID)
	if p.EmployeeRole != "" {
		infoRow(doc, "Role", p.EmployeeRole)
	}
	infoRow(doc, "Days in month", fmt.Sprintf("%d", p.DaysInMonth))
	infoRow(doc, "Loss of pay days", fmt.Sprintf("%d", p.LOPDays))
	doc.Ln(6)

	sectionHeader(doc, "Earnings", "Amount")
	amountRow(doc, "Basic salary", p.BasicSalary.StringFixed(2))
	for _, a := range p.Allowances {
		amountRow(doc, a.Name, a.Amount.StringFixed(2))
	}
	totalRow(doc, "Gross pay", p.GrossPay.StringFixed(2))
	doc.Ln(4)

	sectionHeader(doc, "Deductions", "Amount")
	for _, d := range p.Deductions {
		amountRow(doc, d.Name, d.Amount.StringFixed(2))
	}
	amountRow(doc, fmt.Sprintf("Loss of pay (%d days)", p.LOPDays), p.LOPAmount.StringFixed(2))
	totalRow(doc, "Total deductions", p.TotalDeductions.Add(p.LOPAmount).StringFixed(2))
	doc.Ln(6)

	doc.SetFont("Arial", "B", 13)
	doc.CellFormat(130, 10, "Net pay", "1", 0, "L", false, 0, "")
	doc.CellFormat(50, 10, p.NetPay.StringFixed(2), "1", 1, "R", false, 0, "")

	doc.Ln(10)
	doc.SetFont("Arial", "I", 9)
	doc.Cell(0, 10, fmt.Sprintf("Generated on %s", p.GeneratedAt.Format("02 January 2006 15:04:05")))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func infoRow(doc *gofpdf.Fpdf, label, value string) {
	doc.SetFont("Arial", "B", 11)
	doc.Cell(45, 7, label+":")
	doc.SetFont("Arial", "", 11)
	doc.Cell(0, 7, value)
	doc.Ln(7)
}

func sectionHeader(doc *gofpdf.Fpdf, left, right string) {
	doc.SetFont("Arial", "B", 11)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(130, 8, left, "1", 0, "L", true, 0, "")
	doc.CellFormat(50, 8, right, "1", 1, "R", true, 0, "")
	doc.SetFont("Arial", "", 11)
}

func amountRow(doc *gofpdf.Fpdf, label, amount string) {
	doc.CellFormat(130, 7, label, "LR", 0, "L", false, 0, "")
	doc.CellFormat(50, 7, amount, "LR", 1, "R", false, 0, "")
}

func totalRow(doc *gofpdf.Fpdf, label, amount string) {
	doc.SetFont("Arial", "B", 11)
	doc.CellFormat(130, 8, label, "1", 0, "L", false, 0, "")
	doc.CellFormat(50, 8, amount, "1", 1, "R", false, 0, "")
	doc.SetFont("Arial", "", 11)
}
