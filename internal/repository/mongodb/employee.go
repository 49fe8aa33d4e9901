package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/codec"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type employeeRepositoryImpl struct {
	collection *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) employee.EmployeeRepository {
	return &employeeRepositoryImpl{collection: db.Collection(collectionEmployees)}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	var doc bson.M
	if err := r.collection.FindOne(ctx, byID(id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return codec.EmployeeFromMap(id, normalizeMap(doc)), nil
}

// ListByManager implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByManager(ctx context.Context, managerID string) ([]employee.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"managerId": managerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees of %s: %w", managerID, err)
	}
	defer cursor.Close(ctx)

	var employees []employee.Employee
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode employee: %w", err)
		}
		id, _ := doc["_id"].(string)
		employees = append(employees, codec.EmployeeFromMap(id, normalizeMap(doc)))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}
