package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
)

var validLeaveTypes = []string{"Casual", "Sick", "Earned", "Maternity", "Paternity", "Unpaid", "Other"}

type ApplyLeaveRequest struct {
	LeaveType   string `json:"type"`
	FromDate    string `json:"from_date"` // YYYY-MM-DD
	ToDate      string `json:"to_date"`   // YYYY-MM-DD
	Description string `json:"description"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	r.LeaveType = strings.TrimSpace(r.LeaveType)
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	} else if !validator.IsInSlice(r.LeaveType, validLeaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(validLeaveTypes, ", "),
		})
	}

	from, fromOK := validator.IsValidDate(r.FromDate)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must be in YYYY-MM-DD format",
		})
	}
	to, toOK := validator.IsValidDate(r.ToDate)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must be in YYYY-MM-DD format",
		})
	}
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must not be before from_date",
		})
	}

	r.Description = strings.TrimSpace(r.Description)
	if len(r.Description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must be at most 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateLeaveStatusRequest) Validate() error {
	if !LeaveRequestStatus(r.Status).IsValid() {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: ErrInvalidLeaveStatus.Error(),
		}}
	}
	return nil
}

type LeaveResponse struct {
	Index       int       `json:"index"`
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	FromDate    string    `json:"from_date"`
	ToDate      string    `json:"to_date"`
	TotalDays   int       `json:"total_days"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type EmployeeLeaveResponse struct {
	EmployeeID   string        `json:"employee_id"`
	EmployeeName string        `json:"employee_name"`
	Leave        LeaveResponse `json:"leave"`
}

func ToResponse(index int, l LeaveRequest) LeaveResponse {
	return LeaveResponse{
		Index:       index,
		ID:          l.ID,
		Type:        l.LeaveType,
		FromDate:    l.FromDate.Format(validator.DateLayout),
		ToDate:      l.ToDate.Format(validator.DateLayout),
		TotalDays:   l.TotalDays(),
		Description: l.Description,
		Status:      string(l.Status),
		SubmittedAt: l.SubmittedAt,
	}
}
