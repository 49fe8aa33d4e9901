package employee

import (
	"context"
	"fmt"
	"testing"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managerSession = user.Session{UserID: "m1", Role: user.RoleManager}

func newTestService(t *testing.T) employee.EmployeeService {
	repo := memory.NewEmployeeRepository()
	for i := 1; i <= 25; i++ {
		role := "Developer"
		if i%5 == 0 {
			role = "Designer"
		}
		repo.Put(employee.Employee{
			ID:        fmt.Sprintf("e%02d", i),
			Name:      fmt.Sprintf("Employee %02d", i),
			Role:      role,
			ManagerID: "m1",
		})
	}
	repo.Put(employee.Employee{ID: "x1", Name: "Outsider", ManagerID: "m2"})
	return NewEmployeeService(repo)
}

func TestEmployeeService_ListEmployees_Pagination(t *testing.T) {
	// Arrange
	svc := newTestService(t)

	// Act
	resp, err := svc.ListEmployees(context.Background(), managerSession, employee.EmployeeFilter{Page: 2, Limit: 10})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(25), resp.TotalCount)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, "11-20 of 25", resp.Showing)
	assert.Len(t, resp.Employees, 10)
	assert.Equal(t, "Employee 11", resp.Employees[0].Name)
}

func TestEmployeeService_ListEmployees_RoleAndSearch(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.ListEmployees(context.Background(), managerSession, employee.EmployeeFilter{Role: "designer"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.TotalCount)

	resp, err = svc.ListEmployees(context.Background(), managerSession, employee.EmployeeFilter{Search: "employee 2"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), resp.TotalCount) // Employee 20 through 25
}

func TestEmployeeService_ListEmployees_EmployeeRoleRejected(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ListEmployees(context.Background(), user.Session{UserID: "e01", Role: user.RoleEmployee}, employee.EmployeeFilter{})
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)
}

func TestEmployeeService_GetEmployee_OutsideRoster(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetEmployee(context.Background(), managerSession, "x1")
	assert.ErrorIs(t, err, employee.ErrUnauthorized)

	_, err = svc.GetEmployee(context.Background(), managerSession, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	got, err := svc.GetEmployee(context.Background(), user.Session{UserID: "admin", Role: user.RoleAdmin}, "x1")
	require.NoError(t, err)
	assert.Equal(t, "Outsider", got.Name)
}
