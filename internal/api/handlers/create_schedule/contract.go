package create_schedule

import (
	"context"

	"github.com/m04kA/ParkBookingService/internal/service/schedules/models"
)

type ScheduleService interface {
	Create(ctx context.Context, activityID int64, req *models.ScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
