package payslip

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/codec"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingFiles struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
}

func (f *recordingFiles) UploadPayslip(ctx context.Context, employeeID, month string, content []byte) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := "payslips/" + employeeID + "/" + month + ".pdf"
	f.uploaded = append(f.uploaded, path)
	return path, "https://files.example.com/" + path, nil
}

func (f *recordingFiles) DeleteFile(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *recordingFiles) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "https://files.example.com/" + path, nil
}

// racingRepository reports no payslip on Exists and a duplicate on Create,
// as when two managers generate the same payslip at once.
type racingRepository struct {
	*memory.PayslipRepository
}

func (r racingRepository) Exists(ctx context.Context, employeeID, month string) (bool, error) {
	return false, nil
}

func (r racingRepository) Create(ctx context.Context, p payslip.Payslip) error {
	return payslip.ErrPayslipAlreadyExists
}

var managerSession = user.Session{UserID: "m1", Role: user.RoleManager}

type payslipFixture struct {
	svc      *PayslipServiceImpl
	files    *recordingFiles
	payslips *memory.PayslipRepository
	leaves   leave.LeaveService
}

func newPayslipFixture(t *testing.T) *payslipFixture {
	t.Helper()
	today := time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	salary := decimal.NewFromInt(31000)

	employees := memory.NewEmployeeRepository(
		employee.Employee{ID: "e1", Name: "Asha", Role: "Developer", ManagerID: "m1", BaseSalary: &salary},
		employee.Employee{ID: "e2", Name: "Bala", Role: "Designer", ManagerID: "m1"},
		employee.Employee{ID: "x1", Name: "Other", ManagerID: "m2", BaseSalary: &salary},
	)
	holidays := memory.NewHolidayRepository(holiday.Holiday{Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Label: "Holi"})

	// Present on every March working day except the 10th, 11th and 12th.
	att := memory.NewAttendanceRepository()
	for d := 1; d <= 31; d++ {
		day := time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
		if day.Weekday() == time.Sunday || d == 10 || d == 11 || d == 12 || d == 14 {
			continue
		}
		att.SeedDay("e1", attendance.DateKey(day), map[string]any{attendance.FieldStatus: attendance.StatusPresent})
	}

	emps := employeeService.NewEmployeeService(employees)
	attendances := attendanceService.NewAttendanceService(emps, employees, att, holidays, time.UTC, func() time.Time { return today })
	leaves := leaveService.NewLeaveService(emps, memory.NewLeaveRepository(), time.UTC)
	files := &recordingFiles{}
	payslips := memory.NewPayslipRepository()

	svc := NewPayslipService(emps, attendances, leaves, payslips, files, "Acme Pvt Ltd", time.UTC).(*PayslipServiceImpl)
	svc.now = func() time.Time { return today }

	return &payslipFixture{svc: svc, files: files, payslips: payslips, leaves: leaves}
}

func generateRequest() payslip.GeneratePayslipRequest {
	return payslip.GeneratePayslipRequest{
		Month:      "2025-03",
		Allowances: []payslip.ComponentInput{{Name: "HRA", Amount: decimal.NewFromInt(2000)}},
		Deductions: []payslip.ComponentInput{{Name: "PF", Amount: decimal.NewFromInt(1500)}},
	}
}

func TestPayslipService_Generate_LossOfPayFromAttendance(t *testing.T) {
	// Arrange
	f := newPayslipFixture(t)
	employeeSession := user.Session{UserID: "u1", EmployeeID: "e1", Role: user.RoleEmployee}
	_, err := f.leaves.Apply(context.Background(), employeeSession, leave.ApplyLeaveRequest{LeaveType: "Sick", FromDate: "2025-03-11", ToDate: "2025-03-12"})
	require.NoError(t, err)
	_, err = f.leaves.UpdateStatus(context.Background(), managerSession, "e1", 0, leave.UpdateLeaveStatusRequest{Status: "Approved"})
	require.NoError(t, err)

	// Act
	resp, err := f.svc.Generate(context.Background(), managerSession, "e1", generateRequest())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 31, resp.DaysInMonth)
	assert.Equal(t, 1, resp.LOPDays)
	assert.Equal(t, "31000.00", resp.BasicSalary)
	assert.Equal(t, "33000.00", resp.GrossPay)
	assert.Equal(t, "1064.52", resp.LOPAmount)
	assert.Equal(t, "30435.48", resp.NetPay)
	assert.Equal(t, "https://files.example.com/payslips/e1/2025-03.pdf", resp.DocumentURL)
	assert.Equal(t, "m1", resp.GeneratedBy)
	assert.Len(t, f.files.uploaded, 1)

	stored, err := f.svc.Get(context.Background(), employeeSession, "e1", "2025-03")
	require.NoError(t, err)
	assert.Equal(t, resp.NetPay, stored.NetPay)
}

func TestPayslipService_Generate_DuplicateRejectedBeforeUpload(t *testing.T) {
	f := newPayslipFixture(t)

	_, err := f.svc.Generate(context.Background(), managerSession, "e1", generateRequest())
	require.NoError(t, err)

	req := generateRequest()
	req.BasicSalary = ptr(decimal.NewFromInt(99999))
	_, err = f.svc.Generate(context.Background(), managerSession, "e1", req)

	assert.ErrorIs(t, err, payslip.ErrPayslipAlreadyExists)
	assert.Equal(t, "payslip already generated for this month", err.Error())
	assert.Len(t, f.files.uploaded, 1)

	stored, err := f.payslips.Get(context.Background(), "e1", "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "31000.00", stored.BasicSalary.StringFixed(2))
}

func TestPayslipService_Generate_ConcurrentDuplicateRemovesUpload(t *testing.T) {
	f := newPayslipFixture(t)
	f.svc.payslipRepo = racingRepository{memory.NewPayslipRepository()}

	_, err := f.svc.Generate(context.Background(), managerSession, "e1", generateRequest())

	assert.ErrorIs(t, err, payslip.ErrPayslipAlreadyExists)
	assert.Equal(t, f.files.uploaded, f.files.deleted)
}

func TestPayslipService_Generate_Rejections(t *testing.T) {
	f := newPayslipFixture(t)

	_, err := f.svc.Generate(context.Background(), managerSession, "e2", generateRequest())
	assert.ErrorIs(t, err, payslip.ErrEmployeeHasNoBaseSalary)

	_, err = f.svc.Generate(context.Background(), managerSession, "x1", generateRequest())
	assert.ErrorIs(t, err, employee.ErrUnauthorized)

	req := generateRequest()
	req.Month = "2025-05"
	_, err = f.svc.Generate(context.Background(), managerSession, "e1", req)
	assert.ErrorIs(t, err, payslip.ErrFutureMonth)

	req = generateRequest()
	req.Deductions = []payslip.ComponentInput{{Name: "Advance", Amount: decimal.NewFromInt(50000)}}
	_, err = f.svc.Generate(context.Background(), managerSession, "e1", req)
	assert.ErrorIs(t, err, payslip.ErrNegativeNetPay)

	assert.Empty(t, f.files.uploaded)
}

func TestPayslipService_Generate_ExplicitValues(t *testing.T) {
	f := newPayslipFixture(t)
	req := generateRequest()
	req.BasicSalary = ptr(decimal.NewFromInt(40000))
	req.LOPDays = ptr(0)

	resp, err := f.svc.Generate(context.Background(), managerSession, "e2", req)

	require.NoError(t, err)
	assert.Equal(t, 0, resp.LOPDays)
	assert.Equal(t, "40500.00", resp.NetPay)
}

func TestPayslipService_List(t *testing.T) {
	f := newPayslipFixture(t)
	for _, month := range []string{"2025-01", "2025-03", "2025-02"} {
		req := generateRequest()
		req.Month = month
		req.LOPDays = ptr(0)
		_, err := f.svc.Generate(context.Background(), managerSession, "e1", req)
		require.NoError(t, err)
	}

	list, err := f.svc.List(context.Background(), managerSession, "e1")

	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2025-03", list[0].Month)
	assert.Equal(t, "2025-01", list[2].Month)

	_, err = f.svc.Get(context.Background(), managerSession, "e1", "2024-12")
	assert.ErrorIs(t, err, payslip.ErrPayslipNotFound)
}

// utcLeaves round-trips leave dates through the stored layout with the
// timestamps in UTC, as Firestore and MongoDB return them.
type utcLeaves struct {
	*memory.LeaveRepository
	loc *time.Location
}

func (r utcLeaves) Get(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	list, err := r.LeaveRepository.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	stored := codec.LeavesToSlice(list)
	for _, item := range stored {
		m := item.(map[string]any)
		m["fromDate"] = m["fromDate"].(time.Time).UTC()
		m["toDate"] = m["toDate"].(time.Time).UTC()
	}
	return codec.LeavesFromAny(stored, r.loc), nil
}

func TestPayslipService_Generate_LeaveDatesInBusinessTimezone(t *testing.T) {
	// Arrange
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	today := time.Date(2025, 4, 5, 10, 0, 0, 0, ist)
	nowFn := func() time.Time { return today }
	salary := decimal.NewFromInt(31000)

	employees := memory.NewEmployeeRepository(
		employee.Employee{ID: "e1", Name: "Asha", Role: "Developer", ManagerID: "m1", BaseSalary: &salary},
	)
	holidays := memory.NewHolidayRepository(holiday.Holiday{Date: time.Date(2025, 3, 14, 0, 0, 0, 0, ist), Label: "Holi"})

	// Absent on the 10th and 11th only, both covered by approved leave.
	att := memory.NewAttendanceRepository()
	for d := 1; d <= 31; d++ {
		day := time.Date(2025, 3, d, 0, 0, 0, 0, ist)
		if day.Weekday() == time.Sunday || d == 10 || d == 11 || d == 14 {
			continue
		}
		att.SeedDay("e1", attendance.DateKey(day), map[string]any{attendance.FieldStatus: attendance.StatusPresent})
	}

	emps := employeeService.NewEmployeeService(employees)
	attendances := attendanceService.NewAttendanceService(emps, employees, att, holidays, ist, nowFn)
	leaves := leaveService.NewLeaveService(emps, utcLeaves{memory.NewLeaveRepository(), ist}, ist)
	svc := NewPayslipService(emps, attendances, leaves, memory.NewPayslipRepository(), &recordingFiles{}, "Acme Pvt Ltd", ist).(*PayslipServiceImpl)
	svc.now = nowFn

	employeeSession := user.Session{UserID: "u1", EmployeeID: "e1", Role: user.RoleEmployee}
	_, err = leaves.Apply(context.Background(), employeeSession, leave.ApplyLeaveRequest{LeaveType: "Sick", FromDate: "2025-03-10", ToDate: "2025-03-11"})
	require.NoError(t, err)
	_, err = leaves.UpdateStatus(context.Background(), managerSession, "e1", 0, leave.UpdateLeaveStatusRequest{Status: "Approved"})
	require.NoError(t, err)

	// Act
	resp, err := svc.Generate(context.Background(), managerSession, "e1", generateRequest())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, resp.LOPDays)
	assert.Equal(t, "0.00", resp.LOPAmount)

	list, err := leaves.List(context.Background(), managerSession, "e1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2025-03-10", list[0].FromDate)
	assert.Equal(t, "2025-03-11", list[0].ToDate)
}

func ptr[T any](v T) *T {
	return &v
}
