package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/codec"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type leaveRepositoryImpl struct {
	collection *mongo.Collection
	loc        *time.Location
}

func NewLeaveRepository(db *mongo.Database, loc *time.Location) leave.LeaveRepository {
	return &leaveRepositoryImpl{collection: db.Collection(collectionLeaves), loc: loc}
}

// Get implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Get(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	var doc bson.M
	if err := r.collection.FindOne(ctx, byID(employeeID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []leave.LeaveRequest{}, nil
		}
		return nil, fmt.Errorf("failed to get leaves of %s: %w", employeeID, err)
	}
	return codec.LeavesFromAny(normalize(doc[fieldApplications]), r.loc), nil
}

// Append implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Append(ctx context.Context, employeeID string, req leave.LeaveRequest) error {
	update := bson.M{"$push": bson.M{fieldApplications: codec.LeaveToMap(req)}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, byID(employeeID), update, opts); err != nil {
		return fmt.Errorf("failed to append leave of %s: %w", employeeID, err)
	}
	return nil
}

// Replace implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Replace(ctx context.Context, employeeID string, reqs []leave.LeaveRequest) error {
	update := bson.M{"$set": bson.M{fieldApplications: codec.LeavesToSlice(reqs)}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, byID(employeeID), update, opts); err != nil {
		return fmt.Errorf("failed to replace leaves of %s: %w", employeeID, err)
	}
	return nil
}
