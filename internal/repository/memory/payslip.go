package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/payslip"
)

var _ payslip.PayslipRepository = (*PayslipRepository)(nil)

type PayslipRepository struct {
	mu       sync.RWMutex
	payslips map[string]map[string]payslip.Payslip // employee -> month -> payslip
}

func NewPayslipRepository() *PayslipRepository {
	return &PayslipRepository{payslips: make(map[string]map[string]payslip.Payslip)}
}

func (r *PayslipRepository) Get(ctx context.Context, employeeID string, month string) (payslip.Payslip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payslips[employeeID][month]
	if !ok {
		return payslip.Payslip{}, payslip.ErrPayslipNotFound
	}
	return p, nil
}

func (r *PayslipRepository) List(ctx context.Context, employeeID string) ([]payslip.Payslip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]payslip.Payslip, 0, len(r.payslips[employeeID]))
	for _, p := range r.payslips[employeeID] {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out, nil
}

func (r *PayslipRepository) Exists(ctx context.Context, employeeID string, month string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.payslips[employeeID][month]
	return ok, nil
}

func (r *PayslipRepository) Create(ctx context.Context, p payslip.Payslip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.payslips[p.EmployeeID] == nil {
		r.payslips[p.EmployeeID] = make(map[string]payslip.Payslip)
	}
	if _, ok := r.payslips[p.EmployeeID][p.Month]; ok {
		return payslip.ErrPayslipAlreadyExists
	}
	r.payslips[p.EmployeeID][p.Month] = p
	return nil
}
