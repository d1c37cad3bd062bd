package get_remaining_seats

import (
	"fmt"
	"time"

	"github.com/m04kA/ParkBookingService/pkg/types"
)

// validateRequest валидирует входные данные и возвращает дату в часовом поясе парка
func validateRequest(req *Request, loc *time.Location) (time.Time, error) {
	if req.ScheduleID <= 0 {
		return time.Time{}, fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := types.ParseDate(req.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	return date, nil
}
