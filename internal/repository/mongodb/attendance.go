package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type attendanceRepositoryImpl struct {
	collection *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{collection: db.Collection(collectionAttendance)}
}

// GetDocument implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetDocument(ctx context.Context, employeeID string) (attendance.Document, error) {
	var doc bson.M
	if err := r.collection.FindOne(ctx, byID(employeeID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return attendance.Document{}, nil
		}
		return nil, fmt.Errorf("failed to get attendance of %s: %w", employeeID, err)
	}
	return attendance.DocumentFromMap(normalizeMap(doc)), nil
}

// GetDocuments implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetDocuments(ctx context.Context, employeeIDs []string) (map[string]attendance.Document, error) {
	docs := make(map[string]attendance.Document, len(employeeIDs))
	for _, id := range employeeIDs {
		docs[id] = attendance.Document{}
	}
	if len(employeeIDs) == 0 {
		return docs, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": employeeIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance documents: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode attendance document: %w", err)
		}
		id, _ := doc["_id"].(string)
		docs[id] = attendance.DocumentFromMap(normalizeMap(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance documents: %w", err)
	}
	return docs, nil
}

// dayUpdate builds a $set on the nested fields of one date key.
func dayUpdate(dateKey string, fields map[string]any) bson.M {
	set := bson.M{}
	for k, v := range fields {
		set[dateKey+"."+k] = v
	}
	return bson.M{"$set": set}
}

// MergeDay implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) MergeDay(ctx context.Context, employeeID string, dateKey string, fields map[string]any) error {
	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, byID(employeeID), dayUpdate(dateKey, fields), opts); err != nil {
		return fmt.Errorf("failed to merge attendance day %s of %s: %w", dateKey, employeeID, err)
	}
	return nil
}

// UpdateDay implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateDay(ctx context.Context, employeeID string, dateKey string, fields map[string]any) error {
	result, err := r.collection.UpdateOne(ctx, byID(employeeID), dayUpdate(dateKey, fields))
	if err != nil {
		return fmt.Errorf("failed to update attendance day %s of %s: %w", dateKey, employeeID, err)
	}
	if result.MatchedCount == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
