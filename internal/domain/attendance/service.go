package attendance

import (
	"context"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
)

// AttendanceService serves the manager's attendance views
type AttendanceService interface {
	// Daily lists one row per roster employee for a single date
	Daily(ctx context.Context, session user.Session, filter DailyFilter) (ListDailyResponse, error)

	// Weekly returns seven status codes per employee starting at week_start
	Weekly(ctx context.Context, session user.Session, req WeeklyRequest) (WeeklyResponse, error)

	// Monthly builds the monthly attendance matrix
	Monthly(ctx context.Context, session user.Session, req MonthlyRequest) (MonthlyResponse, error)

	// ExportMonthly renders the monthly matrix as a spreadsheet.
	// Returns ErrNoAttendanceData when the matrix is empty.
	ExportMonthly(ctx context.Context, session user.Session, req MonthlyRequest) (ExportFile, error)

	// History returns one employee's stored records in a date range
	History(ctx context.Context, session user.Session, employeeID string, filter HistoryFilter) (HistoryResponse, error)

	// MonthRow builds a single employee's row for a month
	MonthRow(ctx context.Context, employeeID string, year int, month int) (MonthlyRow, error)
}

// GateService runs the geofenced check-in/out state machine
type GateService interface {
	// Today returns the caller's own record and gate state
	Today(ctx context.Context, session user.Session) (TodayResponse, error)

	// Evaluate reports which gate actions are currently enabled
	Evaluate(ctx context.Context, session user.Session, req GateRequest) (GateResponse, error)

	CheckIn(ctx context.Context, session user.Session, req GateRequest) (RecordResponse, error)
	CheckOut(ctx context.Context, session user.Session, req GateRequest) (RecordResponse, error)
}
