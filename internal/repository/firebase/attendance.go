package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
)

type attendanceRepositoryImpl struct {
	client *firestore.Client
}

func NewAttendanceRepository(client *firestore.Client) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{client: client}
}

// GetDocument implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetDocument(ctx context.Context, employeeID string) (attendance.Document, error) {
	snap, err := r.client.Collection(collectionAttendance).Doc(employeeID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return attendance.Document{}, nil
		}
		return nil, fmt.Errorf("failed to get attendance of %s: %w", employeeID, err)
	}
	return attendance.DocumentFromMap(snap.Data()), nil
}

// GetDocuments implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetDocuments(ctx context.Context, employeeIDs []string) (map[string]attendance.Document, error) {
	docs := make(map[string]attendance.Document, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return docs, nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		refs = append(refs, r.client.Collection(collectionAttendance).Doc(id))
	}

	snaps, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance documents: %w", err)
	}
	for i, snap := range snaps {
		if !snap.Exists() {
			docs[employeeIDs[i]] = attendance.Document{}
			continue
		}
		docs[employeeIDs[i]] = attendance.DocumentFromMap(snap.Data())
	}
	return docs, nil
}

// MergeDay implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) MergeDay(ctx context.Context, employeeID string, dateKey string, fields map[string]any) error {
	data := map[string]any{dateKey: fields}
	if _, err := r.client.Collection(collectionAttendance).Doc(employeeID).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to merge attendance day %s of %s: %w", dateKey, employeeID, err)
	}
	return nil
}

// UpdateDay implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateDay(ctx context.Context, employeeID string, dateKey string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for field, value := range fields {
		// FieldPath keeps the hyphenated date key as one segment
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{dateKey, field}, Value: value})
	}

	if _, err := r.client.Collection(collectionAttendance).Doc(employeeID).Update(ctx, updates); err != nil {
		if isNotFound(err) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance day %s of %s: %w", dateKey, employeeID, err)
	}
	return nil
}
