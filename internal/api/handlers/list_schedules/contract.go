package list_schedules

import (
	"context"

	"github.com/m04kA/ParkBookingService/internal/service/schedules/models"
)

type ScheduleService interface {
	ListByActivity(ctx context.Context, activityID int64) (*models.ScheduleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
