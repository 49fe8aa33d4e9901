package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewHolidayRepository(db *database.DB, loc *time.Location) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db, loc: loc}
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT date, label FROM holidays ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var (
			date  time.Time
			label string
		)
		if err := rows.Scan(&date, &label); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, holiday.Holiday{
			Date:  time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, r.loc),
			Label: label,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}
	return holidays, nil
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (date_key, date, label)
		VALUES ($1, $2, $3)
		ON CONFLICT (date_key) DO NOTHING
	`
	tag, err := q.Exec(ctx, query, h.Key(), h.Date, h.Label)
	if err != nil {
		return fmt.Errorf("failed to create holiday %s: %w", h.Key(), err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayExists
	}
	return nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, dateKey string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE date_key = $1`, dateKey)
	if err != nil {
		return fmt.Errorf("failed to delete holiday %s: %w", dateKey, err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
