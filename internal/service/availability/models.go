package availability

import (
	"time"

	"github.com/m04kA/ParkBookingService/internal/domain"
)

// Result результат расчета свободных мест расписания на дату
type Result struct {
	Schedule     *domain.ActivitySchedule
	Date         time.Time
	Window       domain.Interval
	DaySpanning  bool
	Adjustment   *domain.SeatsAdjustment // nil, если действует базовая вместимость
	Availability domain.Availability
}
