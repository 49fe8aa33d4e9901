package payslip

import (
	"context"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
)

type PayslipService interface {
	// Generate computes, renders, uploads and stores a payslip
	Generate(ctx context.Context, session user.Session, employeeID string, req GeneratePayslipRequest) (PayslipResponse, error)

	Get(ctx context.Context, session user.Session, employeeID string, month string) (PayslipResponse, error)
	List(ctx context.Context, session user.Session, employeeID string) ([]PayslipResponse, error)
}
