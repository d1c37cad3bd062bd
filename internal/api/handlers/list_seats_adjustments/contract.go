package list_seats_adjustments

import (
	"context"

	"github.com/m04kA/ParkBookingService/internal/service/adjustments/models"
)

type AdjustmentService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.AdjustmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
