package holiday

import "context"

type HolidayService interface {
	List(ctx context.Context) ([]HolidayResponse, error)
	Set(ctx context.Context) (Set, error)
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, date string) error
}
