package employee

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/utils"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, session user.Session, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	filter.Normalize()

	roster, err := s.Roster(ctx, session, filter.Role)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		matched := roster[:0]
		for _, e := range roster {
			if strings.Contains(strings.ToLower(e.Name), needle) || strings.Contains(strings.ToLower(e.Email), needle) {
				matched = append(matched, e)
			}
		}
		roster = matched
	}

	total := int64(len(roster))
	start, end := utils.PageBounds(filter.Page, filter.Limit, len(roster))

	responses := make([]employee.EmployeeResponse, 0, end-start)
	for _, e := range roster[start:end] {
		responses = append(responses, employee.ToResponse(e))
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: utils.TotalPages(total, filter.Limit),
		Showing:    utils.Showing(filter.Page, filter.Limit, total),
		Employees:  responses,
	}, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, session user.Session, id string) (employee.EmployeeResponse, error) {
	e, err := s.Authorize(ctx, session, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// Roster implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Roster(ctx context.Context, session user.Session, role string) ([]employee.Employee, error) {
	if !session.IsManager() {
		return nil, user.ErrManagerAccessRequired
	}
	list, err := s.employeeRepo.ListByManager(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employee.FilterByRole(list, role), nil
}

// Authorize implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Authorize(ctx context.Context, session user.Session, employeeID string) (employee.Employee, error) {
	e, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, err
	}
	if session.Role == user.RoleAdmin || e.ManagerID == session.UserID {
		return e, nil
	}
	return employee.Employee{}, employee.ErrUnauthorized
}
