package adjustments

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/ParkBookingService/internal/domain"
	"github.com/m04kA/ParkBookingService/internal/service/adjustments/models"
	"github.com/m04kA/ParkBookingService/pkg/types"
)

// parseAdjustment валидирует запрос и собирает корректировку
func parseAdjustment(req *models.AdjustmentRequest, loc *time.Location) (*domain.SeatsAdjustment, error) {
	if req.AdjustedSeats < 0 || req.AdjustedSeats > domain.MaxSeatsPerSchedule {
		return nil, fmt.Errorf("%w: adjustedSeats must be between 0 and %d", ErrInvalidInput, domain.MaxSeatsPerSchedule)
	}

	startDate, err := types.ParseDate(req.StartDate, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startDate: %v", ErrInvalidInput, err)
	}

	endDate, err := types.ParseDate(req.EndDate, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endDate: %v", ErrInvalidInput, err)
	}

	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	// Диапазон включительный: не больше MaxAdjustmentRangeDays календарных дней
	if !endDate.Before(startDate.AddDate(0, 0, domain.MaxAdjustmentRangeDays)) {
		return nil, fmt.Errorf("%w: adjustment range must not exceed %d days", ErrInvalidInput, domain.MaxAdjustmentRangeDays)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len([]rune(reason)) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return &domain.SeatsAdjustment{
		AdjustedSeats: req.AdjustedSeats,
		StartDate:     startDate,
		EndDate:       endDate,
		Reason:        reason,
	}, nil
}

// parseFilter разбирает опциональные границы периода
func parseFilter(req *models.ListRequest, loc *time.Location) (domain.AdjustmentsFilter, error) {
	filter := domain.AdjustmentsFilter{ActivityScheduleID: req.ScheduleID}

	if req.From != "" {
		from, err := types.ParseDate(req.From, loc)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid from: %v", ErrInvalidInput, err)
		}
		filter.From = &from
	}

	if req.To != "" {
		to, err := types.ParseDate(req.To, loc)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid to: %v", ErrInvalidInput, err)
		}
		filter.To = &to
	}

	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	return filter, nil
}
