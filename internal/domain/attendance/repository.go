package attendance

import "context"

// AttendanceRepository reads and writes per-employee attendance documents.
// A missing document is an empty Document, not an error.
type AttendanceRepository interface {
	// GetDocument returns every stored day of one employee
	GetDocument(ctx context.Context, employeeID string) (Document, error)

	// GetDocuments returns the documents of several employees keyed by id
	GetDocuments(ctx context.Context, employeeIDs []string) (map[string]Document, error)

	// MergeDay merges fields into the day at dateKey, creating the document
	// when needed. Other days are left untouched.
	MergeDay(ctx context.Context, employeeID string, dateKey string, fields map[string]any) error

	// UpdateDay applies a partial update to an existing document.
	// Returns ErrAttendanceNotFound when the document does not exist.
	UpdateDay(ctx context.Context, employeeID string, dateKey string, fields map[string]any) error
}
