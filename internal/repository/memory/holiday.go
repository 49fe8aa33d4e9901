package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
)

var _ holiday.HolidayRepository = (*HolidayRepository)(nil)

type HolidayRepository struct {
	mu       sync.RWMutex
	holidays map[string]holiday.Holiday
}

func NewHolidayRepository(seed ...holiday.Holiday) *HolidayRepository {
	r := &HolidayRepository{holidays: make(map[string]holiday.Holiday)}
	for _, h := range seed {
		r.holidays[h.Key()] = h
	}
	return r
}

func (r *HolidayRepository) List(ctx context.Context) ([]holiday.Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]holiday.Holiday, 0, len(r.holidays))
	for _, h := range r.holidays {
		out = append(out, h)
	}
	return out, nil
}

func (r *HolidayRepository) Create(ctx context.Context, h holiday.Holiday) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.holidays[h.Key()]; ok {
		return holiday.ErrHolidayExists
	}
	r.holidays[h.Key()] = h
	return nil
}

func (r *HolidayRepository) Delete(ctx context.Context, dateKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.holidays[dateKey]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(r.holidays, dateKey)
	return nil
}
