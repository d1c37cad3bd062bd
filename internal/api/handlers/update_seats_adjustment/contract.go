package update_seats_adjustment

import (
	"context"

	"github.com/m04kA/ParkBookingService/internal/service/adjustments/models"
)

type AdjustmentService interface {
	Update(ctx context.Context, id int64, userID int64, req *models.AdjustmentRequest) (*models.AdjustmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
