package attendance

import "errors"

// Attendance domain errors
var (
	// Gate errors
	ErrAlreadyCheckedIn     = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut    = errors.New("you have already checked out today")
	ErrNotCheckedIn         = errors.New("please check in first")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed radius")
	ErrAddressUnavailable   = errors.New("unable to resolve your current address")
	ErrLocationNotAssigned  = errors.New("no check-in location assigned to this employee")
	ErrRequestInFlight      = errors.New("an attendance request is already in progress")

	// View errors
	ErrNoAttendanceData   = errors.New("no attendance data available for this month")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
