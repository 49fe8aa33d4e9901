package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/codec"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type holidayRepositoryImpl struct {
	collection *mongo.Collection
	loc        *time.Location
}

func NewHolidayRepository(db *mongo.Database, loc *time.Location) holiday.HolidayRepository {
	return &holidayRepositoryImpl{collection: db.Collection(collectionHolidays), loc: loc}
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]holiday.Holiday, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer cursor.Close(ctx)

	var holidays []holiday.Holiday
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode holiday: %w", err)
		}
		key, _ := doc["_id"].(string)
		holidays = append(holidays, codec.HolidayFromMap(key, normalizeMap(doc), r.loc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}
	return holidays, nil
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) error {
	doc := bson.M{"_id": h.Key()}
	for k, v := range codec.HolidayToMap(h) {
		doc[k] = v
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return holiday.ErrHolidayExists
		}
		return fmt.Errorf("failed to create holiday %s: %w", h.Key(), err)
	}
	return nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, dateKey string) error {
	result, err := r.collection.DeleteOne(ctx, byID(dateKey))
	if err != nil {
		return fmt.Errorf("failed to delete holiday %s: %w", dateKey, err)
	}
	if result.DeletedCount == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
