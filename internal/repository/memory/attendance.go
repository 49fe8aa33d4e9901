package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
)

var _ attendance.AttendanceRepository = (*AttendanceRepository)(nil)

type AttendanceRepository struct {
	mu   sync.RWMutex
	docs map[string]map[string]map[string]any // employee -> date key -> fields
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{docs: make(map[string]map[string]map[string]any)}
}

// SeedDay stores raw fields for a day, bypassing merge semantics.
func (r *AttendanceRepository) SeedDay(employeeID, dateKey string, fields map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.docs[employeeID] == nil {
		r.docs[employeeID] = make(map[string]map[string]any)
	}
	r.docs[employeeID][dateKey] = copyFields(fields)
}

func (r *AttendanceRepository) GetDocument(ctx context.Context, employeeID string) (attendance.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.decode(employeeID), nil
}

func (r *AttendanceRepository) GetDocuments(ctx context.Context, employeeIDs []string) (map[string]attendance.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]attendance.Document, len(employeeIDs))
	for _, id := range employeeIDs {
		out[id] = r.decode(id)
	}
	return out, nil
}

func (r *AttendanceRepository) MergeDay(ctx context.Context, employeeID string, dateKey string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.docs[employeeID] == nil {
		r.docs[employeeID] = make(map[string]map[string]any)
	}
	day := r.docs[employeeID][dateKey]
	if day == nil {
		day = make(map[string]any)
	}
	for k, v := range fields {
		day[k] = v
	}
	r.docs[employeeID][dateKey] = day
	return nil
}

func (r *AttendanceRepository) UpdateDay(ctx context.Context, employeeID string, dateKey string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[employeeID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	day := doc[dateKey]
	if day == nil {
		day = make(map[string]any)
	}
	for k, v := range fields {
		day[k] = v
	}
	doc[dateKey] = day
	return nil
}

func (r *AttendanceRepository) decode(employeeID string) attendance.Document {
	doc := make(attendance.Document, len(r.docs[employeeID]))
	for key, fields := range r.docs[employeeID] {
		doc[key] = attendance.RecordFromMap(fields)
	}
	return doc
}

func copyFields(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
