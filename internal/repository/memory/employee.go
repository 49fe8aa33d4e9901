// Package memory holds in-process repositories used by the memory store
// driver and by service tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
)

var _ employee.EmployeeRepository = (*EmployeeRepository)(nil)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository(seed ...employee.Employee) *EmployeeRepository {
	r := &EmployeeRepository{employees: make(map[string]employee.Employee)}
	for _, e := range seed {
		r.employees[e.ID] = e
	}
	return r
}

// Put inserts or replaces an employee.
func (r *EmployeeRepository) Put(e employee.Employee) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[e.ID] = e
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepository) ListByManager(ctx context.Context, managerID string) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]employee.Employee, 0)
	for _, e := range r.employees {
		if e.ManagerID == managerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
