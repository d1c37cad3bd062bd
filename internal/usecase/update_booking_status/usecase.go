package update_booking_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ParkBookingService/internal/domain"
	bookingRepo "github.com/m04kA/ParkBookingService/internal/infra/storage/booking"
	"github.com/m04kA/ParkBookingService/internal/service/availability"
	"github.com/m04kA/ParkBookingService/pkg/txmanager"
)

// operationName метка операции в метриках отказов
const operationName = "update_booking_status"

// UseCase use case для смены статуса бронирования
type UseCase struct {
	bookingRepo BookingRepository
	calculator  AvailabilityCalculator
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
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
		bookingRepo: bookingRepo,
		calculator:  calculator,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute меняет статус бронирования
// Переход в статус, занимающий места, из статуса, их не занимающего, повторно проверяет
// вместимость всех позиций в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%d, user=%d, admin=%t, status=%s",
		req.BookingID, req.UserID, req.IsAdmin, req.Status)

	// 1. Валидация входных данных
	next, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	var previous domain.BookingStatus

	// 2. Проверка и смена статуса в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBookingStatus: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		previous = booking.Status

		// 2.2. Права доступа
		if err := checkAccess(booking, req, next); err != nil {
			uc.logger.Warn("UpdateBookingStatus: user=%d cannot set status=%s on booking id=%d",
				req.UserID, next, req.BookingID)
			return err
		}

		// 2.3. Допустимость перехода
		if !booking.Status.CanTransitionTo(next) {
			uc.logger.Warn("UpdateBookingStatus: transition %s -> %s is not allowed for booking id=%d",
				booking.Status, next, req.BookingID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
		}

		// 2.4. Повторная проверка мест при переходе в занимающий места статус
		if !booking.ConsumesSeats() && next.ConsumesSeats() {
			if err := uc.checkCapacity(txCtx, booking); err != nil {
				return err
			}
		}

		// 2.5. Сохраняем статус
		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, next); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("UpdateBookingStatus: serialization conflict for booking id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		if isDomainError(err) {
			return nil, err
		}
		uc.logger.Error("UpdateBookingStatus: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateBookingStatus: booking id=%d moved %s -> %s", req.BookingID, previous, next)

	return &Response{
		ID:             req.BookingID,
		PreviousStatus: string(previous),
		Status:         string(next),
	}, nil
}

// checkCapacity проверяет, что позиции бронирования помещаются в свободные места
func (uc *UseCase) checkCapacity(ctx context.Context, booking *domain.Booking) error {
	for _, demand := range groupDemand(booking.Activities, uc.calculator.Location()) {
		res, err := uc.calculator.RemainingSeatsExcluding(ctx, demand.scheduleID, demand.date, booking.ID)
		if err != nil {
			if errors.Is(err, availability.ErrScheduleNotFound) {
				// Расписание удалено после создания позиции, проверять нечего
				uc.logger.Warn("UpdateBookingStatus: schedule id=%d of booking id=%d no longer exists",
					demand.scheduleID, booking.ID)
				continue
			}
			uc.logger.Error("UpdateBookingStatus: failed to calculate seats for schedule=%d: %v", demand.scheduleID, err)
			return fmt.Errorf("%w: failed to calculate remaining seats: %v", ErrInternal, err)
		}

		// Позиции бронирования той же активности с пересекающимся окном занимают места друг у друга
		requested := domain.OverlappingSeats(booking.Activities, res.Schedule.ActivityID, res.Window)

		if !res.Availability.CanAccommodate(requested) {
			available, _ := res.Availability.AvailableSeats()
			uc.logger.Warn("UpdateBookingStatus: booking id=%d needs %d seats on schedule=%d, available %d",
				booking.ID, requested, demand.scheduleID, available)
			if uc.metrics != nil {
				uc.metrics.RecordCapacityRejection(operationName)
			}
			return fmt.Errorf("%w: schedule %d on %s has %d seats available, requested %d",
				ErrNotEnoughSeats, demand.scheduleID, domain.FormatDate(demand.date), available, requested)
		}
	}

	return nil
}

func isDomainError(err error) bool {
	return errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrNotEnoughSeats) ||
		errors.Is(err, ErrInternal)
}
