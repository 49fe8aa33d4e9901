package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/codec"
	"github.com/jackc/pgx/v5"
)

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

func decodePayslip(raw []byte) (payslip.Payslip, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return payslip.Payslip{}, err
	}
	return codec.PayslipFromMap(m), nil
}

// Get implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) Get(ctx context.Context, employeeID string, month string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	var raw []byte
	err := q.QueryRow(ctx, `SELECT data FROM payslips WHERE employee_id = $1 AND month = $2`, employeeID, month).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip %s/%s: %w", employeeID, month, err)
	}

	p, err := decodePayslip(raw)
	if err != nil {
		return payslip.Payslip{}, fmt.Errorf("failed to decode payslip %s/%s: %w", employeeID, month, err)
	}
	return p, nil
}

// List implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) List(ctx context.Context, employeeID string) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT data FROM payslips WHERE employee_id = $1 ORDER BY month DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips of %s: %w", employeeID, err)
	}
	defer rows.Close()

	var payslips []payslip.Payslip
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		p, err := decodePayslip(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payslips: %w", err)
	}
	return payslips, nil
}

// Exists implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) Exists(ctx context.Context, employeeID string, month string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM payslips WHERE employee_id = $1 AND month = $2)`
	if err := q.QueryRow(ctx, query, employeeID, month).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payslip %s/%s: %w", employeeID, month, err)
	}
	return exists, nil
}

// Create implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) Create(ctx context.Context, p payslip.Payslip) error {
	q := GetQuerier(ctx, r.db)

	payload, err := json.Marshal(codec.PayslipToMap(p))
	if err != nil {
		return fmt.Errorf("failed to encode payslip: %w", err)
	}

	query := `
		INSERT INTO payslips (employee_id, month, data)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (employee_id, month) DO NOTHING
	`
	tag, err := q.Exec(ctx, query, p.EmployeeID, p.Month, payload)
	if err != nil {
		return fmt.Errorf("failed to create payslip %s/%s: %w", p.EmployeeID, p.Month, err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipAlreadyExists
	}
	return nil
}
