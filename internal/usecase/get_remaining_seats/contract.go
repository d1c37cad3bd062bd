package get_remaining_seats

import (
	"context"
	"time"

	"github.com/m04kA/ParkBookingService/internal/service/availability"
)

// AvailabilityCalculator калькулятор свободных мест
type AvailabilityCalculator interface {
	RemainingSeats(ctx context.Context, scheduleID int64, date time.Time) (*availability.Result, error)
	Location() *time.Location
}

// MetricsRecorder учет исходов расчета
type MetricsRecorder interface {
	RecordAvailability(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
