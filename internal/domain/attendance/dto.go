package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/utils"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
)

// ========================================
// GATE DTOs
// ========================================

type GateRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

func (r *GateRequest) Validate() error {
	return validator.ValidateStruct(r)
}

type GateResponse struct {
	Date         string    `json:"date"`
	State        GateState `json:"state"`
	DistanceKm   float64   `json:"distance_km"`
	RadiusKm     float64   `json:"radius_km"`
	WithinRadius bool      `json:"within_radius"`
	Address      string    `json:"address,omitempty"`
	CanCheckIn   bool      `json:"can_check_in"`
	CanCheckOut  bool      `json:"can_check_out"`
	Message      string    `json:"message,omitempty"`
}

type RecordResponse struct {
	Date            string     `json:"date"`
	CheckIn         *time.Time `json:"check_in,omitempty"`
	CheckInAddress  string     `json:"check_in_address,omitempty"`
	CheckOut        *time.Time `json:"check_out,omitempty"`
	CheckOutAddress string     `json:"check_out_address,omitempty"`
	DurationMs      *int64     `json:"duration_ms,omitempty"`
	Duration        string     `json:"duration,omitempty"`
	Status          string     `json:"status,omitempty"`
}

type TodayResponse struct {
	Date        string          `json:"date"`
	State       GateState       `json:"state"`
	HasLocation bool            `json:"has_location"`
	Record      *RecordResponse `json:"record,omitempty"`
}

// ToRecordResponse maps a stored record for the API.
func ToRecordResponse(dateKey string, r Record) RecordResponse {
	resp := RecordResponse{
		Date:            dateKey,
		CheckIn:         r.CheckIn,
		CheckInAddress:  r.CheckInAddress,
		CheckOut:        r.CheckOut,
		CheckOutAddress: r.CheckOutAddress,
		DurationMs:      r.DurationMs,
		Status:          r.Status,
	}
	if r.DurationMs != nil {
		resp.Duration = FormatDuration(*r.DurationMs)
	}
	return resp
}

// FormatDuration renders milliseconds as "8h 5m".
func FormatDuration(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}

// ========================================
// DAILY VIEW
// ========================================

type DailyFilter struct {
	Date   string `json:"date"` // YYYY-MM-DD, defaults to today
	Role   string `json:"role"`
	Search string `json:"search"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

func (f *DailyFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit > utils.MaxPageLimit {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}
	if f.Date != "" {
		if _, valid := validator.IsValidDate(f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	f.Search = strings.TrimSpace(f.Search)
	f.Page, f.Limit = utils.NormalizePage(f.Page, f.Limit)
	return nil
}

type DailyRowResponse struct {
	EmployeeID string          `json:"employee_id"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	Code       StatusCode      `json:"code"`
	Record     *RecordResponse `json:"record,omitempty"`
}

type ListDailyResponse struct {
	Date         string             `json:"date"`
	PresentCount int                `json:"present_count"`
	AbsentCount  int                `json:"absent_count"`
	TotalCount   int64              `json:"total_count"`
	Page         int                `json:"page"`
	Limit        int                `json:"limit"`
	TotalPages   int                `json:"total_pages"`
	Showing      string             `json:"showing"`
	Rows         []DailyRowResponse `json:"rows"`
}

// ========================================
// WEEKLY VIEW
// ========================================

type WeeklyRequest struct {
	WeekStart string `json:"week_start"` // YYYY-MM-DD, defaults to this week's Monday
	Role      string `json:"role"`
}

func (r *WeeklyRequest) Validate() error {
	if r.WeekStart == "" {
		return nil
	}
	if _, valid := validator.IsValidDate(r.WeekStart); !valid {
		return validator.ValidationErrors{{
			Field:   "week_start",
			Message: "week_start must be in YYYY-MM-DD format",
		}}
	}
	return nil
}

type WeeklyRowResponse struct {
	EmployeeID      string       `json:"employee_id"`
	Name            string       `json:"name"`
	Role            string       `json:"role"`
	Codes           []StatusCode `json:"codes"`
	TotalPresent    int          `json:"total_present"`
	TotalDurationMs int64        `json:"total_duration_ms"`
	TotalDuration   string       `json:"total_duration"`
}

type WeeklyResponse struct {
	WeekStart string              `json:"week_start"`
	Days      []string            `json:"days"`
	Rows      []WeeklyRowResponse `json:"rows"`
}

// ========================================
// MONTHLY VIEW
// ========================================

type MonthlyRequest struct {
	Month string `json:"month"` // YYYY-MM, defaults to the current month
	Role  string `json:"role"`
}

func (r *MonthlyRequest) Validate() error {
	if r.Month == "" {
		return nil
	}
	if _, valid := validator.IsValidMonth(r.Month); !valid {
		return validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		}}
	}
	return nil
}

type MonthlyRowResponse struct {
	EmployeeID   string       `json:"employee_id"`
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	Codes        []StatusCode `json:"codes"`
	TotalPresent int          `json:"total_present"`
}

type MonthlyResponse struct {
	Month       string               `json:"month"`
	DaysInMonth int                  `json:"days_in_month"`
	HasData     bool                 `json:"has_data"`
	Message     string               `json:"message,omitempty"`
	Rows        []MonthlyRowResponse `json:"rows"`
}

// ExportFile is a generated spreadsheet ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ========================================
// HISTORY
// ========================================

type HistoryFilter struct {
	From string `json:"from"` // YYYY-MM-DD
	To   string `json:"to"`   // YYYY-MM-DD
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDate(f.From)
	if f.From != "" && !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}
	to, toOK := validator.IsValidDate(f.To)
	if f.To != "" && !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}
	if fromOK && toOK {
		if to.Before(from) {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must not be before from",
			})
		} else if to.Sub(from) > 366*24*time.Hour {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "range must not exceed one year",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HistoryResponse struct {
	EmployeeID string           `json:"employee_id"`
	From       string           `json:"from"`
	To         string           `json:"to"`
	Records    []RecordResponse `json:"records"`
}
