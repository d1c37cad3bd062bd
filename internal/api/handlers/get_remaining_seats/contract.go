package get_remaining_seats

import (
	"context"

	getRemainingSeats "github.com/m04kA/ParkBookingService/internal/usecase/get_remaining_seats"
)

type GetRemainingSeatsUseCase interface {
	Execute(ctx context.Context, req *getRemainingSeats.Request) (*getRemainingSeats.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
