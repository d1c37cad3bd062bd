package schedules

import (
	"context"

	"github.com/m04kA/ParkBookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.ActivitySchedule) (*domain.ActivitySchedule, error)
	GetByID(ctx context.Context, id int64) (*domain.ActivitySchedule, error)
	ListByActivity(ctx context.Context, activityID int64) ([]*domain.ActivitySchedule, error)
	Update(ctx context.Context, schedule *domain.ActivitySchedule) (*domain.ActivitySchedule, error)
	Delete(ctx context.Context, id int64) error
}

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
