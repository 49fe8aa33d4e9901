package holiday

import (
	"strings"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Label string `json:"label"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	r.Label = strings.TrimSpace(r.Label)
	if validator.IsEmpty(r.Label) {
		errs = append(errs, validator.ValidationError{
			Field:   "label",
			Message: "label is required",
		})
	} else if len(r.Label) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "label",
			Message: "label must be at most 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	Date    string `json:"date"`     // YYYY-MM-DD
	DateKey string `json:"date_key"` // DD-MM-YYYY
	Label   string `json:"label"`
	Weekday string `json:"weekday"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		Date:    h.Date.Format(validator.DateLayout),
		DateKey: h.Key(),
		Label:   h.Label,
		Weekday: h.Date.Weekday().String(),
	}
}
