package employee

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         string
	Name       string
	Email      string
	Role       string // job role shown on the dashboard, used by the role filter
	ManagerID  string
	Location   *Location
	BaseSalary *decimal.Decimal
}

// Location is the assigned check-in point of an employee.
type Location struct {
	Latitude  float64
	Longitude float64
}

// HasLocation reports whether the employee can use the geofenced gate.
func (e Employee) HasLocation() bool {
	return e.Location != nil
}

// MatchesRole is a case-insensitive role comparison. An empty filter matches all.
func (e Employee) MatchesRole(role string) bool {
	role = strings.TrimSpace(role)
	if role == "" || strings.EqualFold(role, "all") {
		return true
	}
	return strings.EqualFold(e.Role, role)
}

// FilterByRole keeps the employees whose role matches.
func FilterByRole(employees []Employee, role string) []Employee {
	out := make([]Employee, 0, len(employees))
	for _, e := range employees {
		if e.MatchesRole(role) {
			out = append(out, e)
		}
	}
	return out
}
