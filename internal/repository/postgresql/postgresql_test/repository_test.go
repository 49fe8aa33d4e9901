package postgresqltest

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDatabase skips the test when no database is configured
func setupTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	ctx := context.Background()

	setup, err := NewTestDatabase(ctx)
	require.NoError(t, err)
	if setup == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)
	return setup
}

func TestEmployeeRepository_ListByManager(t *testing.T) {
	// Arrange
	setup := setupTestDatabase(t)
	ctx := context.Background()
	_, err := setup.DB.Exec(ctx, `
		INSERT INTO employees (id, name, email, role, manager_id, latitude, longitude, base_salary)
		VALUES
			('e2', 'Bala', 'bala@example.com', 'Designer', 'm1', NULL, NULL, NULL),
			('e1', 'Asha', 'asha@example.com', 'Developer', 'm1', 12.9, 77.59, 31000),
			('x1', 'Other', 'other@example.com', 'Developer', 'm2', NULL, NULL, NULL)
	`)
	require.NoError(t, err)
	repo := postgresql.NewEmployeeRepository(setup.DB)

	// Act
	roster, err := repo.ListByManager(ctx, "m1")

	// Assert
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "Asha", roster[0].Name)
	require.NotNil(t, roster[0].Location)
	assert.Equal(t, 77.59, roster[0].Location.Longitude)
	require.NotNil(t, roster[0].BaseSalary)
	assert.True(t, roster[0].BaseSalary.Equal(decimal.NewFromInt(31000)))
	assert.Nil(t, roster[1].Location)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceRepository_MergeAndUpdateDay(t *testing.T) {
	setup := setupTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)
	checkIn := time.Date(2025, 3, 3, 9, 15, 0, 0, time.UTC)

	err := repo.UpdateDay(ctx, "e1", "03-03-2025", map[string]any{attendance.FieldStatus: attendance.StatusPresent})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	require.NoError(t, repo.MergeDay(ctx, "e1", "02-03-2025", map[string]any{attendance.FieldStatus: attendance.StatusPresent}))
	require.NoError(t, repo.MergeDay(ctx, "e1", "03-03-2025", map[string]any{
		attendance.FieldCheckIn: checkIn,
		attendance.FieldStatus:  attendance.StatusPresent,
	}))
	require.NoError(t, repo.UpdateDay(ctx, "e1", "03-03-2025", map[string]any{
		attendance.FieldCheckOut: checkIn.Add(8 * time.Hour),
		attendance.FieldDuration: int64(8 * time.Hour / time.Millisecond),
	}))

	docs, err := repo.GetDocuments(ctx, []string{"e1", "e2"})
	require.NoError(t, err)
	assert.Empty(t, docs["e2"])
	require.Len(t, docs["e1"], 2)

	day := docs["e1"]["03-03-2025"]
	require.NotNil(t, day.CheckIn)
	assert.True(t, day.CheckIn.Equal(checkIn))
	require.NotNil(t, day.DurationMs)
	assert.Equal(t, int64(28800000), *day.DurationMs)
	assert.True(t, docs["e1"]["02-03-2025"].IsPresent())
}

func TestHolidayRepository_CreateAndDelete(t *testing.T) {
	setup := setupTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewHolidayRepository(setup.DB, time.UTC)
	h := holiday.Holiday{Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Label: "Holi"}

	require.NoError(t, repo.Create(ctx, h))
	assert.ErrorIs(t, repo.Create(ctx, h), holiday.ErrHolidayExists)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "14-03-2025", list[0].Key())

	require.NoError(t, repo.Delete(ctx, "14-03-2025"))
	assert.ErrorIs(t, repo.Delete(ctx, "14-03-2025"), holiday.ErrHolidayNotFound)
}

func TestLeaveRepository_AppendAndReplace(t *testing.T) {
	setup := setupTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRepository(setup.DB, time.UTC)
	first := leave.LeaveRequest{
		ID:        "l1",
		LeaveType: "Sick",
		FromDate:  time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		ToDate:    time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Status:    leave.LeaveRequestStatusPending,
	}
	second := first
	second.ID = "l2"

	require.NoError(t, repo.Append(ctx, "e1", first))
	require.NoError(t, repo.Append(ctx, "e1", second))

	list, err := repo.Get(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "l2", list[1].ID)

	list[0].Status = leave.LeaveRequestStatusApproved
	require.NoError(t, repo.Replace(ctx, "e1", list[:1]))

	list, err = repo.Get(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, leave.LeaveRequestStatusApproved, list[0].Status)

	empty, err := repo.Get(ctx, "e2")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPayslipRepository_CreateIsWriteOnce(t *testing.T) {
	setup := setupTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPayslipRepository(setup.DB)
	p := payslip.Payslip{EmployeeID: "e1", Month: "2025-03", BasicSalary: decimal.NewFromInt(31000), NetPay: decimal.NewFromInt(30000)}

	require.NoError(t, repo.Create(ctx, p))

	second := p
	second.NetPay = decimal.NewFromInt(1)
	assert.ErrorIs(t, repo.Create(ctx, second), payslip.ErrPayslipAlreadyExists)

	stored, err := repo.Get(ctx, "e1", "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "30000", stored.NetPay.String())

	exists, err := repo.Exists(ctx, "e1", "2025-02")
	require.NoError(t, err)
	assert.False(t, exists)
}
