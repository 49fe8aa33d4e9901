package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/codec"
	"github.com/jackc/pgx/v5"
)

type leaveRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewLeaveRepository(db *database.DB, loc *time.Location) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db, loc: loc}
}

// Get implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Get(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	var raw []byte
	err := q.QueryRow(ctx, `SELECT applications FROM leave_documents WHERE employee_id = $1`, employeeID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []leave.LeaveRequest{}, nil
		}
		return nil, fmt.Errorf("failed to get leaves of %s: %w", employeeID, err)
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode leaves of %s: %w", employeeID, err)
	}
	return codec.LeavesFromAny(items, r.loc), nil
}

// Append implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Append(ctx context.Context, employeeID string, req leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	payload, err := json.Marshal(codec.LeaveToMap(req))
	if err != nil {
		return fmt.Errorf("failed to encode leave request: %w", err)
	}

	query := `
		INSERT INTO leave_documents (employee_id, applications)
		VALUES ($1, jsonb_build_array($2::jsonb))
		ON CONFLICT (employee_id) DO UPDATE SET
			applications = leave_documents.applications || jsonb_build_array($2::jsonb)
	`
	if _, err := q.Exec(ctx, query, employeeID, payload); err != nil {
		return fmt.Errorf("failed to append leave of %s: %w", employeeID, err)
	}
	return nil
}

// Replace implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Replace(ctx context.Context, employeeID string, reqs []leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	payload, err := json.Marshal(codec.LeavesToSlice(reqs))
	if err != nil {
		return fmt.Errorf("failed to encode leave requests: %w", err)
	}

	query := `
		INSERT INTO leave_documents (employee_id, applications)
		VALUES ($1, $2::jsonb)
		ON CONFLICT (employee_id) DO UPDATE SET applications = EXCLUDED.applications
	`
	if _, err := q.Exec(ctx, query, employeeID, payload); err != nil {
		return fmt.Errorf("failed to replace leaves of %s: %w", employeeID, err)
	}
	return nil
}
