package firebase

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/codec"
	"google.golang.org/api/iterator"
)

type holidayRepositoryImpl struct {
	client *firestore.Client
	loc    *time.Location
}

func NewHolidayRepository(client *firestore.Client, loc *time.Location) holiday.HolidayRepository {
	return &holidayRepositoryImpl{client: client, loc: loc}
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]holiday.Holiday, error) {
	iter := r.client.Collection(collectionHolidays).Documents(ctx)
	defer iter.Stop()

	var holidays []holiday.Holiday
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list holidays: %w", err)
		}
		holidays = append(holidays, codec.HolidayFromMap(snap.Ref.ID, snap.Data(), r.loc))
	}
	return holidays, nil
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) error {
	if _, err := r.client.Collection(collectionHolidays).Doc(h.Key()).Create(ctx, codec.HolidayToMap(h)); err != nil {
		if isAlreadyExists(err) {
			return holiday.ErrHolidayExists
		}
		return fmt.Errorf("failed to create holiday %s: %w", h.Key(), err)
	}
	return nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, dateKey string) error {
	if _, err := r.client.Collection(collectionHolidays).Doc(dateKey).Delete(ctx, firestore.Exists); err != nil {
		if isNotFound(err) {
			return holiday.ErrHolidayNotFound
		}
		return fmt.Errorf("failed to delete holiday %s: %w", dateKey, err)
	}
	return nil
}
