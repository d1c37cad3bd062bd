package get_remaining_seats

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ParkBookingService/internal/domain"
	"github.com/m04kA/ParkBookingService/internal/service/availability"
	"github.com/m04kA/ParkBookingService/pkg/metrics"
)

// UseCase use case для расчета свободных мест расписания на дату
type UseCase struct {
	calculator AvailabilityCalculator
	metrics    MetricsRecorder
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, если метрики отключены
func NewUseCase(calculator AvailabilityCalculator, metrics MetricsRecorder, logger Logger) *UseCase {
	return &UseCase{
		calculator: calculator,
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute выполняет расчет свободных мест
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetRemainingSeats: schedule=%d, date=%s", req.ScheduleID, req.Date)

	// 1. Валидация входных данных
	date, err := validateRequest(req, uc.calculator.Location())
	if err != nil {
		uc.logger.Warn("GetRemainingSeats: validation failed: %v", err)
		return nil, err
	}

	// 2. Расчет
	result, err := uc.calculator.RemainingSeats(ctx, req.ScheduleID, date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrScheduleNotFound):
			return nil, ErrScheduleNotFound
		case errors.Is(err, availability.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("GetRemainingSeats: calculation failed for schedule=%d: %v", req.ScheduleID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	// 3. Учитываем исход в метриках
	outcome := outcomeOf(result.Availability)
	if uc.metrics != nil {
		uc.metrics.RecordAvailability(outcome)
	}

	uc.logger.Info("GetRemainingSeats: schedule=%d, date=%s, outcome=%s, booked=%d",
		req.ScheduleID, req.Date, outcome, result.Availability.BookedSeats)

	return toResponse(result), nil
}

func outcomeOf(a domain.Availability) string {
	switch {
	case a.IsUnlimited():
		return metrics.OutcomeUnlimited
	case a.IsOverbooked():
		return metrics.OutcomeOverbooked
	case a.IsFull():
		return metrics.OutcomeFull
	default:
		return metrics.OutcomeAvailable
	}
}

func toResponse(result *availability.Result) *Response {
	a := result.Availability

	resp := &Response{
		ScheduleID:     result.Schedule.ID,
		ActivityID:     result.Schedule.ActivityID,
		Date:           domain.FormatDate(result.Date),
		WindowStart:    result.Window.Start,
		WindowEnd:      result.Window.End,
		Unlimited:      a.IsUnlimited(),
		CapacitySource: string(a.CapacitySource),
		AdjustmentID:   a.AdjustmentID,
		BookedSeats:    a.BookedSeats,
		Overbooked:     a.IsOverbooked(),
	}

	if seats, limited := a.Capacity.Seats(); limited {
		available, _ := a.AvailableSeats()
		resp.Capacity = &seats
		resp.RemainingSeats = &a.Remaining
		resp.AvailableSeats = &available
	}

	return resp
}
