package firebase

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/codec"
)

type leaveRepositoryImpl struct {
	client *firestore.Client
	loc    *time.Location
}

func NewLeaveRepository(client *firestore.Client, loc *time.Location) leave.LeaveRepository {
	return &leaveRepositoryImpl{client: client, loc: loc}
}

// Get implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Get(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	snap, err := r.client.Collection(collectionLeaves).Doc(employeeID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return []leave.LeaveRequest{}, nil
		}
		return nil, fmt.Errorf("failed to get leaves of %s: %w", employeeID, err)
	}
	return codec.LeavesFromAny(snap.Data()[fieldApplications], r.loc), nil
}

// Append implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Append(ctx context.Context, employeeID string, req leave.LeaveRequest) error {
	data := map[string]any{fieldApplications: firestore.ArrayUnion(codec.LeaveToMap(req))}
	if _, err := r.client.Collection(collectionLeaves).Doc(employeeID).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to append leave of %s: %w", employeeID, err)
	}
	return nil
}

// Replace implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Replace(ctx context.Context, employeeID string, reqs []leave.LeaveRequest) error {
	data := map[string]any{fieldApplications: codec.LeavesToSlice(reqs)}
	if _, err := r.client.Collection(collectionLeaves).Doc(employeeID).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to replace leaves of %s: %w", employeeID, err)
	}
	return nil
}
