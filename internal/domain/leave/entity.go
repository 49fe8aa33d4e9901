package leave

import "time"

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending     LeaveRequestStatus = "Pending"
	LeaveRequestStatusApproved    LeaveRequestStatus = "Approved"
	LeaveRequestStatusNotApproved LeaveRequestStatus = "Not Approved"
)

func (s LeaveRequestStatus) IsValid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusNotApproved:
		return true
	}
	return false
}

// LeaveRequest is one entry of an employee's ordered leave list. Entries
// are addressed by their position in that list.
type LeaveRequest struct {
	ID          string
	LeaveType   string
	FromDate    time.Time
	ToDate      time.Time
	Description string
	Status      LeaveRequestStatus
	SubmittedAt time.Time
}

// TotalDays counts calendar days inclusive of both ends.
func (l LeaveRequest) TotalDays() int {
	return int(l.ToDate.Sub(l.FromDate).Hours()/24) + 1
}

// Covers reports whether day falls inside the leave, by calendar date.
func (l LeaveRequest) Covers(day time.Time) bool {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	from := time.Date(l.FromDate.Year(), l.FromDate.Month(), l.FromDate.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(l.ToDate.Year(), l.ToDate.Month(), l.ToDate.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(from) && !d.After(to)
}
