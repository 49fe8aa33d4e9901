package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
)

// CreateSchema creates every table the repositories use.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(ctx context.Context) error {
		if _, err := GetQuerier(ctx, db).Exec(ctx, schema); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		return nil
	})
}

const schema = `
-- Employees
CREATE TABLE IF NOT EXISTS employees (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL DEFAULT '',
    role TEXT NOT NULL DEFAULT '',
    manager_id TEXT NOT NULL DEFAULT '',
    latitude DOUBLE PRECISION,
    longitude DOUBLE PRECISION,
    base_salary NUMERIC(15, 2)
);

CREATE INDEX IF NOT EXISTS idx_employees_manager_id ON employees(manager_id);

-- Attendance: one row per employee, days keyed by DD-MM-YYYY
CREATE TABLE IF NOT EXISTS attendance_documents (
    employee_id TEXT PRIMARY KEY,
    days JSONB NOT NULL DEFAULT '{}'::jsonb,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Holidays
CREATE TABLE IF NOT EXISTS holidays (
    date_key TEXT PRIMARY KEY,
    date DATE NOT NULL,
    label TEXT NOT NULL
);

-- Leave applications, kept as an ordered array per employee
CREATE TABLE IF NOT EXISTS leave_documents (
    employee_id TEXT PRIMARY KEY,
    applications JSONB NOT NULL DEFAULT '[]'::jsonb
);

-- Payslips, write-once per (employee, month)
CREATE TABLE IF NOT EXISTS payslips (
    employee_id TEXT NOT NULL,
    month TEXT NOT NULL,
    data JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (employee_id, month)
);
`
