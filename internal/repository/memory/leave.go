package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/leave"
)

var _ leave.LeaveRepository = (*LeaveRepository)(nil)

type LeaveRepository struct {
	mu     sync.RWMutex
	leaves map[string][]leave.LeaveRequest
}

func NewLeaveRepository() *LeaveRepository {
	return &LeaveRepository{leaves: make(map[string][]leave.LeaveRequest)}
}

func (r *LeaveRepository) Get(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]leave.LeaveRequest(nil), r.leaves[employeeID]...), nil
}

func (r *LeaveRepository) Append(ctx context.Context, employeeID string, req leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaves[employeeID] = append(r.leaves[employeeID], req)
	return nil
}

func (r *LeaveRepository) Replace(ctx context.Context, employeeID string, reqs []leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaves[employeeID] = append([]leave.LeaveRequest(nil), reqs...)
	return nil
}
