package holiday

import "context"

type HolidayRepository interface {
	// List returns all declared holidays. Order is not guaranteed.
	List(ctx context.Context) ([]Holiday, error)

	// Create returns ErrHolidayExists when the date is taken
	Create(ctx context.Context, h Holiday) error

	// Delete returns ErrHolidayNotFound when no holiday is declared on the date
	Delete(ctx context.Context, dateKey string) error
}
