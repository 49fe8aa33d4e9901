package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Session errors
	case errors.Is(err, user.ErrSessionMissing), errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrManagerAccessRequired), errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Gate errors keep the wrapped message, it carries the distance
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		Fail(w, http.StatusBadRequest, "OUTSIDE_ALLOWED_RADIUS", err.Error())
	case errors.Is(err, attendance.ErrAddressUnavailable):
		Fail(w, http.StatusBadRequest, "ADDRESS_UNAVAILABLE", err.Error())
	case errors.Is(err, attendance.ErrLocationNotAssigned):
		Fail(w, http.StatusBadRequest, "LOCATION_NOT_ASSIGNED", err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Fail(w, http.StatusBadRequest, "NOT_CHECKED_IN", err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Fail(w, http.StatusConflict, "ALREADY_CHECKED_IN", err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Fail(w, http.StatusConflict, "ALREADY_CHECKED_OUT", err.Error())
	case errors.Is(err, attendance.ErrRequestInFlight):
		Fail(w, http.StatusConflict, "REQUEST_IN_FLIGHT", err.Error())

	// Attendance view errors
	case errors.Is(err, attendance.ErrNoAttendanceData):
		Fail(w, http.StatusNotFound, "NO_ATTENDANCE_DATA", "No data available")
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidLeaveStatus):
		BadRequest(w, err.Error(), nil)

	// Payslip domain errors
	case errors.Is(err, payslip.ErrPayslipAlreadyExists):
		Fail(w, http.StatusConflict, "PAYSLIP_ALREADY_EXISTS", "Payslip already generated for this month")
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrEmployeeHasNoBaseSalary),
		errors.Is(err, payslip.ErrNegativeNetPay),
		errors.Is(err, payslip.ErrFutureMonth):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
