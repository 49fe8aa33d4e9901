package employee

import (
	"strings"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/utils"
)

type EmployeeFilter struct {
	Search string `json:"search"`
	Role   string `json:"role"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

func (f *EmployeeFilter) Normalize() {
	f.Search = strings.TrimSpace(f.Search)
	f.Page, f.Limit = utils.NormalizePage(f.Page, f.Limit)
}

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type EmployeeResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email,omitempty"`
	Role       string            `json:"role"`
	ManagerID  string            `json:"manager_id"`
	Location   *LocationResponse `json:"location,omitempty"`
	BaseSalary *string           `json:"base_salary,omitempty"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Role:      e.Role,
		ManagerID: e.ManagerID,
	}
	if e.Location != nil {
		resp.Location = &LocationResponse{Latitude: e.Location.Latitude, Longitude: e.Location.Longitude}
	}
	if e.BaseSalary != nil {
		s := e.BaseSalary.StringFixed(2)
		resp.BaseSalary = &s
	}
	return resp
}
