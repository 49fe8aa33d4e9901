// Package firebase implements the repositories on Cloud Firestore. Each
// employee owns one attendance document keyed by DD-MM-YYYY day maps and one
// leave document holding an ordered applications array.
package firebase

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionEmployees  = "employees"
	collectionAttendance = "attendance"
	collectionHolidays   = "holidays"
	collectionLeaves     = "leaves"
	collectionPayslips   = "payslips"

	fieldApplications = "applications"
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}
