package holiday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
)

type HolidayServiceImpl struct {
	holidayRepo holiday.HolidayRepository
	loc         *time.Location
}

func NewHolidayService(holidayRepo holiday.HolidayRepository, loc *time.Location) holiday.HolidayService {
	if loc == nil {
		loc = time.UTC
	}
	return &HolidayServiceImpl{
		holidayRepo: holidayRepo,
		loc:         loc,
	}
}

// List implements holiday.HolidayService.
func (s *HolidayServiceImpl) List(ctx context.Context) ([]holiday.HolidayResponse, error) {
	list, err := s.holidayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })

	responses := make([]holiday.HolidayResponse, 0, len(list))
	for _, h := range list {
		responses = append(responses, holiday.ToResponse(h))
	}
	return responses, nil
}

// Set implements holiday.HolidayService.
func (s *HolidayServiceImpl) Set(ctx context.Context) (holiday.Set, error) {
	list, err := s.holidayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return holiday.NewSet(list), nil
}

// Create implements holiday.HolidayService.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := time.ParseInLocation(validator.DateLayout, req.Date, s.loc)
	h := holiday.Holiday{Date: date, Label: req.Label}

	if err := s.holidayRepo.Create(ctx, h); err != nil {
		if errors.Is(err, holiday.ErrHolidayExists) {
			return holiday.HolidayResponse{}, err
		}
		return holiday.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	slog.Info("Holiday declared", "date", h.Key(), "label", h.Label)
	return holiday.ToResponse(h), nil
}

// Delete implements holiday.HolidayService. date is YYYY-MM-DD.
func (s *HolidayServiceImpl) Delete(ctx context.Context, date string) error {
	d, ok := validator.IsValidDate(date)
	if !ok {
		return validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return s.holidayRepo.Delete(ctx, d.Format(holiday.DateKeyLayout))
}
