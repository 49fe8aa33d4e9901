package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func decodeDays(raw []byte) (attendance.Document, error) {
	var days map[string]any
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, err
	}
	return attendance.DocumentFromMap(days), nil
}

// GetDocument implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetDocument(ctx context.Context, employeeID string) (attendance.Document, error) {
	q := GetQuerier(ctx, r.db)

	var raw []byte
	err := q.QueryRow(ctx, `SELECT days FROM attendance_documents WHERE employee_id = $1`, employeeID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Document{}, nil
		}
		return nil, fmt.Errorf("failed to get attendance of %s: %w", employeeID, err)
	}

	doc, err := decodeDays(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode attendance of %s: %w", employeeID, err)
	}
	return doc, nil
}

// GetDocuments implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetDocuments(ctx context.Context, employeeIDs []string) (map[string]attendance.Document, error) {
	q := GetQuerier(ctx, r.db)

	docs := make(map[string]attendance.Document, len(employeeIDs))
	for _, id := range employeeIDs {
		docs[id] = attendance.Document{}
	}
	if len(employeeIDs) == 0 {
		return docs, nil
	}

	rows, err := q.Query(ctx, `SELECT employee_id, days FROM attendance_documents WHERE employee_id = ANY($1)`, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan attendance document: %w", err)
		}
		doc, err := decodeDays(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode attendance of %s: %w", id, err)
		}
		docs[id] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance documents: %w", err)
	}
	return docs, nil
}

// MergeDay implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) MergeDay(ctx context.Context, employeeID string, dateKey string, fields map[string]any) error {
	q := GetQuerier(ctx, r.db)

	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode attendance fields: %w", err)
	}

	query := `
		INSERT INTO attendance_documents (employee_id, days, updated_at)
		VALUES ($1, jsonb_build_object($2::text, $3::jsonb), NOW())
		ON CONFLICT (employee_id) DO UPDATE SET
			days = attendance_documents.days || jsonb_build_object(
				$2::text,
				COALESCE(attendance_documents.days -> $2::text, '{}'::jsonb) || $3::jsonb
			),
			updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, employeeID, dateKey, payload); err != nil {
		return fmt.Errorf("failed to merge attendance day %s of %s: %w", dateKey, employeeID, err)
	}
	return nil
}

// UpdateDay implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateDay(ctx context.Context, employeeID string, dateKey string, fields map[string]any) error {
	q := GetQuerier(ctx, r.db)

	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode attendance fields: %w", err)
	}

	query := `
		UPDATE attendance_documents
		SET days = jsonb_set(days, ARRAY[$2::text], COALESCE(days -> $2::text, '{}'::jsonb) || $3::jsonb, true),
			updated_at = NOW()
		WHERE employee_id = $1
	`
	tag, err := q.Exec(ctx, query, employeeID, dateKey, payload)
	if err != nil {
		return fmt.Errorf("failed to update attendance day %s of %s: %w", dateKey, employeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
