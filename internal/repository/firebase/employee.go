package firebase

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/codec"
	"google.golang.org/api/iterator"
)

type employeeRepositoryImpl struct {
	client *firestore.Client
}

func NewEmployeeRepository(client *firestore.Client) employee.EmployeeRepository {
	return &employeeRepositoryImpl{client: client}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	snap, err := r.client.Collection(collectionEmployees).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return codec.EmployeeFromMap(snap.Ref.ID, snap.Data()), nil
}

// ListByManager implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByManager(ctx context.Context, managerID string) ([]employee.Employee, error) {
	iter := r.client.Collection(collectionEmployees).Where("managerId", "==", managerID).Documents(ctx)
	defer iter.Stop()

	var employees []employee.Employee
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list employees of manager %s: %w", managerID, err)
		}
		employees = append(employees, codec.EmployeeFromMap(snap.Ref.ID, snap.Data()))
	}

	// ordered here to avoid a composite index on (managerId, name)
	sort.Slice(employees, func(i, j int) bool { return employees[i].Name < employees[j].Name })
	return employees, nil
}
