package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ParkBookingService/internal/domain"
	scheduleRepo "github.com/m04kA/ParkBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/ParkBookingService/pkg/types"
)

// Calculator считает свободные места расписания на календарную дату.
// Состояния не хранит: каждый расчет перечитывает расписание, корректировки и бронирования.
// Внутри транзакции (ctx из txmanager) расчет видит и блокирует строку расписания.
type Calculator struct {
	scheduleRepo   ScheduleRepository
	adjustmentRepo AdjustmentRepository
	bookingRepo    BookingRepository
	daySpanning    domain.DaySpanningPolicy
	location       *time.Location
	logger         Logger
}

// NewCalculator создает калькулятор свободных мест
// location часовой пояс парка, в котором дата и время расписания складываются в моменты времени
func NewCalculator(
	scheduleRepo ScheduleRepository,
	adjustmentRepo AdjustmentRepository,
	bookingRepo BookingRepository,
	daySpanning domain.DaySpanningPolicy,
	location *time.Location,
	logger Logger,
) *Calculator {
	if location == nil {
		location = time.UTC
	}
	return &Calculator{
		scheduleRepo:   scheduleRepo,
		adjustmentRepo: adjustmentRepo,
		bookingRepo:    bookingRepo,
		daySpanning:    daySpanning,
		location:       location,
		logger:         logger,
	}
}

// Location часовой пояс парка
func (c *Calculator) Location() *time.Location {
	return c.location
}

// RemainingSeats считает свободные места расписания scheduleID на дату date
func (c *Calculator) RemainingSeats(ctx context.Context, scheduleID int64, date time.Time) (*Result, error) {
	return c.remainingSeats(ctx, scheduleID, date, nil)
}

// RemainingSeatsExcluding считает свободные места без учета позиций бронирования bookingID
func (c *Calculator) RemainingSeatsExcluding(ctx context.Context, scheduleID int64, date time.Time, bookingID int64) (*Result, error) {
	return c.remainingSeats(ctx, scheduleID, date, &bookingID)
}

func (c *Calculator) remainingSeats(ctx context.Context, scheduleID int64, date time.Time, excludeBookingID *int64) (*Result, error) {
	if scheduleID <= 0 {
		return nil, fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 1. Получаем расписание
	schedule, err := c.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			c.logger.Warn("RemainingSeats: schedule id=%d not found", scheduleID)
			return nil, ErrScheduleNotFound
		}
		c.logger.Error("RemainingSeats: failed to get schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	if schedule.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: schedule id=%d has no start time", ErrInvalidInput, scheduleID)
	}

	// 2. Окно сравнения в часовом поясе парка
	day := types.InLocation(date, c.location)
	daySpanning := c.daySpanning.IsDaySpanning(schedule.ActivitySlug)
	window := schedule.WindowOn(day, daySpanning)

	// 3. Подтвержденный спрос с пересечением окна
	demand, err := c.bookingRepo.ListCommittedDemand(ctx, domain.DemandFilter{
		ActivityID:       schedule.ActivityID,
		Statuses:         domain.SeatConsumingStatuses,
		Window:           window,
		ExcludeBookingID: excludeBookingID,
	})
	if err != nil {
		c.logger.Error("RemainingSeats: failed to get demand for activity=%d: %v", schedule.ActivityID, err)
		return nil, fmt.Errorf("%w: failed to get committed demand: %v", ErrInternal, err)
	}

	// 4. Суммируем места
	booked := domain.TotalSeats(demand)

	// 5. Действующая вместимость: корректировка на дату или базовая
	adjustments, err := c.adjustmentRepo.ListActive(ctx, scheduleID, day)
	if err != nil {
		c.logger.Error("RemainingSeats: failed to get adjustments for schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: failed to get seats adjustments: %v", ErrInternal, err)
	}

	capacity := schedule.BaseCapacity()
	source := domain.CapacitySourceBase
	var adjustmentID *int64

	active := domain.PickActive(adjustments, day)
	if active != nil {
		capacity = active.Capacity()
		source = domain.CapacitySourceAdjustment
		adjustmentID = &active.ID
	}

	// 6. Остаток (может быть отрицательным при перебронировании)
	result := &Result{
		Schedule:     schedule,
		Date:         day,
		Window:       window,
		DaySpanning:  daySpanning,
		Adjustment:   active,
		Availability: domain.NewAvailability(capacity, source, adjustmentID, booked),
	}

	if result.Availability.IsOverbooked() {
		c.logger.Warn("RemainingSeats: schedule id=%d is overbooked on %s: capacity=%s, booked=%d",
			scheduleID, domain.FormatDate(day), capacity, booked)
	}

	return result, nil
}
