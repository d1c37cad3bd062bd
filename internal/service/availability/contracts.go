package availability

import (
	"context"
	"time"

	"github.com/m04kA/ParkBookingService/internal/domain"
)

// ScheduleRepository реестр расписаний
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ActivitySchedule, error)
}

// AdjustmentRepository журнал корректировок мест
type AdjustmentRepository interface {
	ListActive(ctx context.Context, scheduleID int64, date time.Time) ([]domain.SeatsAdjustment, error)
}

// BookingRepository источник подтвержденного спроса
type BookingRepository interface {
	ListCommittedDemand(ctx context.Context, filter domain.DemandFilter) ([]domain.BookingActivity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
