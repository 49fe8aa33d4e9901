package payslip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/pdf"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/service/file"
	"github.com/shopspring/decimal"
)

type PayslipServiceImpl struct {
	employeeService   employee.EmployeeService
	attendanceService attendance.AttendanceService
	leaveService      leave.LeaveService
	payslipRepo       payslip.PayslipRepository
	fileService       file.FileService
	companyName       string
	loc               *time.Location
	now               func() time.Time
}

func NewPayslipService(
	employeeService employee.EmployeeService,
	attendanceService attendance.AttendanceService,
	leaveService leave.LeaveService,
	payslipRepo payslip.PayslipRepository,
	fileService file.FileService,
	companyName string,
	loc *time.Location,
) payslip.PayslipService {
	if loc == nil {
		loc = time.UTC
	}
	return &PayslipServiceImpl{
		employeeService:   employeeService,
		attendanceService: attendanceService,
		leaveService:      leaveService,
		payslipRepo:       payslipRepo,
		fileService:       fileService,
		companyName:       companyName,
		loc:               loc,
		now:               time.Now,
	}
}

// Generate implements payslip.PayslipService.
func (s *PayslipServiceImpl) Generate(ctx context.Context, session user.Session, employeeID string, req payslip.GeneratePayslipRequest) (payslip.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.PayslipResponse{}, err
	}

	emp, err := s.employeeService.Authorize(ctx, session, employeeID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	// Duplicate check comes before any computation or upload.
	exists, err := s.payslipRepo.Exists(ctx, emp.ID, req.Month)
	if err != nil {
		return payslip.PayslipResponse{}, fmt.Errorf("failed to check existing payslip: %w", err)
	}
	if exists {
		return payslip.PayslipResponse{}, payslip.ErrPayslipAlreadyExists
	}

	period, _ := validator.IsValidMonth(req.Month)
	year, month := period.Year(), period.Month()
	today := s.now().In(s.loc)
	if year > today.Year() || (year == today.Year() && month > today.Month()) {
		return payslip.PayslipResponse{}, payslip.ErrFutureMonth
	}

	basic := decimal.Zero
	switch {
	case req.BasicSalary != nil:
		basic = *req.BasicSalary
	case emp.BaseSalary != nil:
		basic = *emp.BaseSalary
	default:
		return payslip.PayslipResponse{}, payslip.ErrEmployeeHasNoBaseSalary
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	lopDays := 0
	if req.LOPDays != nil {
		lopDays = *req.LOPDays
	} else {
		lopDays, err = s.lossOfPayDays(ctx, emp.ID, year, month)
		if err != nil {
			return payslip.PayslipResponse{}, err
		}
	}

	allowances := payslip.ToComponents(req.Allowances, payslip.ComponentTypeAllowance)
	deductions := payslip.ToComponents(req.Deductions, payslip.ComponentTypeDeduction)

	earnings, err := Calculate(basic, allowances, deductions, daysInMonth, lopDays)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	p := payslip.Payslip{
		EmployeeID:      emp.ID,
		EmployeeName:    emp.Name,
		EmployeeRole:    emp.Role,
		Month:           req.Month,
		BasicSalary:     earnings.BasicSalary,
		Allowances:      allowances,
		TotalAllowances: earnings.TotalAllowances,
		Deductions:      deductions,
		TotalDeductions: earnings.TotalDeductions,
		DaysInMonth:     daysInMonth,
		LOPDays:         lopDays,
		LOPAmount:       earnings.LOPAmount,
		GrossPay:        earnings.GrossPay,
		NetPay:          earnings.NetPay,
		GeneratedAt:     s.now().UTC(),
		GeneratedBy:     session.UserID,
	}

	document, err := pdf.RenderPayslip(p, s.companyName)
	if err != nil {
		return payslip.PayslipResponse{}, fmt.Errorf("failed to render payslip: %w", err)
	}

	p.DocumentPath, p.DocumentURL, err = s.fileService.UploadPayslip(ctx, emp.ID, req.Month, document)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	if err := s.payslipRepo.Create(ctx, p); err != nil {
		if delErr := s.fileService.DeleteFile(ctx, p.DocumentPath); delErr != nil {
			slog.Warn("Failed to remove orphaned payslip document", "path", p.DocumentPath, "error", delErr)
		}
		if errors.Is(err, payslip.ErrPayslipAlreadyExists) {
			return payslip.PayslipResponse{}, err
		}
		return payslip.PayslipResponse{}, fmt.Errorf("failed to store payslip: %w", err)
	}

	slog.Info("Payslip generated", "employee_id", emp.ID, "month", req.Month, "net_pay", p.NetPay.StringFixed(2))
	return payslip.ToResponse(p), nil
}

// lossOfPayDays counts absent days of the month not covered by an approved leave.
func (s *PayslipServiceImpl) lossOfPayDays(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	row, err := s.attendanceService.MonthRow(ctx, employeeID, year, int(month))
	if err != nil {
		return 0, fmt.Errorf("failed to build attendance row: %w", err)
	}
	approved, err := s.leaveService.Approved(ctx, employeeID, year, int(month))
	if err != nil {
		return 0, err
	}

	days := 0
	for i, code := range row.Codes {
		if code != attendance.CodeAbsent {
			continue
		}
		day := time.Date(year, month, i+1, 0, 0, 0, 0, s.loc)
		covered := false
		for _, l := range approved {
			if l.Covers(day) {
				covered = true
				break
			}
		}
		if !covered {
			days++
		}
	}
	return days, nil
}

// Get implements payslip.PayslipService.
func (s *PayslipServiceImpl) Get(ctx context.Context, session user.Session, employeeID string, month string) (payslip.PayslipResponse, error) {
	if err := s.authorizeView(ctx, session, employeeID); err != nil {
		return payslip.PayslipResponse{}, err
	}
	if _, ok := validator.IsValidMonth(month); !ok {
		return payslip.PayslipResponse{}, validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		}}
	}

	p, err := s.payslipRepo.Get(ctx, employeeID, month)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	return payslip.ToResponse(p), nil
}

// List implements payslip.PayslipService.
func (s *PayslipServiceImpl) List(ctx context.Context, session user.Session, employeeID string) ([]payslip.PayslipResponse, error) {
	if err := s.authorizeView(ctx, session, employeeID); err != nil {
		return nil, err
	}

	list, err := s.payslipRepo.List(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	responses := make([]payslip.PayslipResponse, 0, len(list))
	for _, p := range list {
		responses = append(responses, payslip.ToResponse(p))
	}
	return responses, nil
}

func (s *PayslipServiceImpl) authorizeView(ctx context.Context, session user.Session, employeeID string) error {
	if session.SubjectID() == employeeID {
		return nil
	}
	_, err := s.employeeService.Authorize(ctx, session, employeeID)
	return err
}
