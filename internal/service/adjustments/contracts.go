package adjustments

import (
	"context"

	"github.com/m04kA/ParkBookingService/internal/domain"
)

// AdjustmentRepository интерфейс журнала корректировок мест
type AdjustmentRepository interface {
	Create(ctx context.Context, adj *domain.SeatsAdjustment) (*domain.SeatsAdjustment, error)
	GetByID(ctx context.Context, id int64) (*domain.SeatsAdjustment, error)
	Update(ctx context.Context, adj *domain.SeatsAdjustment) (*domain.SeatsAdjustment, error)
	List(ctx context.Context, filter domain.AdjustmentsFilter) ([]domain.SeatsAdjustment, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ActivitySchedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
