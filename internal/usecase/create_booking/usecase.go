package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ParkBookingService/internal/domain"
	"github.com/m04kA/ParkBookingService/internal/service/availability"
	"github.com/m04kA/ParkBookingService/pkg/txmanager"
)

// operationName метка операции в метриках отказов
const operationName = "create_booking"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	calculator   AvailabilityCalculator
	txManager    TransactionManager
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, если метрики отключены
func NewUseCase(
	bookingRepo BookingRepository,
	calculator AvailabilityCalculator,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		calculator:   calculator,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка свободных мест и сохранение выполняются в одной сериализуемой транзакции,
// строки расписаний блокируются, поэтому параллельные бронирования не превышают вместимость
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, status=%s, items=%d", req.UserID, req.Status, len(req.Items))

	// 1. Валидация входных данных
	status, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Разбираем позиции в часовом поясе парка
	items, err := parseItems(req.Items, uc.calculator.Location(), uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("CreateBooking: item validation failed: %v", err)
		return nil, err
	}

	keys := groupSlots(items)

	var result *domain.Booking

	// 3. Выполняем проверку и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slots := make(map[slotKey]*availability.Result, len(keys))

		// 3.1. Считаем свободные места для каждой пары расписание/дата
		for _, key := range keys {
			date := firstDate(items, key)

			res, err := uc.calculator.RemainingSeats(txCtx, key.scheduleID, date)
			if err != nil {
				return uc.mapCalculatorError(key, err)
			}

			slots[key] = res
		}

		// 3.2. Собираем бронирование
		booking := &domain.Booking{
			UserID:     req.UserID,
			Status:     status,
			Notes:      req.Notes,
			Activities: make([]domain.BookingActivity, 0, len(items)),
		}

		for _, item := range items {
			slot := slots[item.key]
			scheduleID := slot.Schedule.ID

			booking.Activities = append(booking.Activities, domain.BookingActivity{
				ActivityID:         slot.Schedule.ActivityID,
				ActivityScheduleID: &scheduleID,
				StartTime:          slot.Window.Start,
				EndTime:            slot.Window.End,
				NumberOfSeats:      item.NumberOfSeats,
				NumberOfAdults:     item.NumberOfAdults,
				NumberOfChildren:   item.NumberOfChildren,
			})
		}

		// 3.3. Черновик места не занимает, проверка только для подтвержденных
		// Позиции запроса той же активности с пересекающимся окном занимают места друг у друга
		if status.ConsumesSeats() {
			for _, key := range keys {
				res := slots[key]
				requested := domain.OverlappingSeats(booking.Activities, res.Schedule.ActivityID, res.Window)

				if !res.Availability.CanAccommodate(requested) {
					available, _ := res.Availability.AvailableSeats()
					uc.logger.Warn("CreateBooking: schedule=%d, date=%s: requested %d seats, available %d",
						key.scheduleID, key.day, requested, available)
					uc.recordRejection()
					return fmt.Errorf("%w: schedule %d on %s has %d seats available, requested %d",
						ErrNotEnoughSeats, key.scheduleID, key.day, available, requested)
				}
			}
		}

		// 3.4. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serialization conflict for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		if isDomainError(err) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s", result.ID, result.Status)

	return toResponse(result), nil
}

func (uc *UseCase) mapCalculatorError(key slotKey, err error) error {
	switch {
	case errors.Is(err, availability.ErrScheduleNotFound):
		uc.logger.Warn("CreateBooking: schedule id=%d not found", key.scheduleID)
		return fmt.Errorf("%w: id=%d", ErrScheduleNotFound, key.scheduleID)
	case errors.Is(err, availability.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateBooking: failed to calculate seats for schedule=%d: %v", key.scheduleID, err)
		return fmt.Errorf("%w: failed to calculate remaining seats: %v", ErrInternal, err)
	}
}

func (uc *UseCase) recordRejection() {
	if uc.metrics != nil {
		uc.metrics.RecordCapacityRejection(operationName)
	}
}

func isDomainError(err error) bool {
	return errors.Is(err, ErrScheduleNotFound) ||
		errors.Is(err, ErrNotEnoughSeats) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInternal)
}

func firstDate(items []parsedItem, key slotKey) time.Time {
	for _, item := range items {
		if item.key == key {
			return item.date
		}
	}
	return time.Time{}
}

func toResponse(b *domain.Booking) *Response {
	resp := &Response{
		ID:        b.ID,
		UserID:    b.UserID,
		Status:    string(b.Status),
		Notes:     b.Notes,
		Items:     make([]ItemResponse, 0, len(b.Activities)),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	for i := range b.Activities {
		item := &b.Activities[i]
		resp.Items = append(resp.Items, ItemResponse{
			ID:               item.ID,
			ActivityID:       item.ActivityID,
			ScheduleID:       item.ActivityScheduleID,
			StartTime:        item.StartTime,
			EndTime:          item.EndTime,
			NumberOfSeats:    item.NumberOfSeats,
			NumberOfAdults:   item.NumberOfAdults,
			NumberOfChildren: item.NumberOfChildren,
			Seats:            item.SeatCount(),
		})
	}

	return resp
}
