package schedules

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ParkBookingService/internal/domain"
	activityRepo "github.com/m04kA/ParkBookingService/internal/infra/storage/activity"
	scheduleRepo "github.com/m04kA/ParkBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/ParkBookingService/internal/service/schedules/models"
)

// Service сервис реестра расписаний
// Права администратора проверяются на уровне HTTP (middleware)
type Service struct {
	scheduleRepo ScheduleRepository
	activityRepo ActivityRepository
	daySpanning  domain.DaySpanningPolicy
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	activityRepo ActivityRepository,
	daySpanning domain.DaySpanningPolicy,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		activityRepo: activityRepo,
		daySpanning:  daySpanning,
		logger:       logger,
	}
}

// Create создает расписание активности
func (s *Service) Create(ctx context.Context, activityID int64, req *models.ScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Create: creating schedule for activity=%d, start=%s", activityID, req.StartTime)

	// 1. Проверяем активность
	activity, err := s.getActivity(ctx, "Create", activityID)
	if err != nil {
		return nil, err
	}

	// 2. Валидируем расписание
	schedule := &domain.ActivitySchedule{ActivityID: activity.ID, ActivitySlug: activity.Slug}
	req.ApplyTo(schedule)

	if err := validateSchedule(schedule, s.daySpanning.IsDaySpanning(activity.Slug)); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	created, err := s.scheduleRepo.Create(ctx, schedule)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created schedule id=%d", created.ID)
	return models.FromDomainSchedule(created), nil
}

// GetByID получает расписание по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ScheduleResponse, error) {
	schedule, err := s.getSchedule(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSchedule(schedule), nil
}

// ListByActivity получает расписания активности
func (s *Service) ListByActivity(ctx context.Context, activityID int64) (*models.ScheduleListResponse, error) {
	s.logger.Info("ListByActivity: fetching schedules for activity=%d", activityID)

	if _, err := s.getActivity(ctx, "ListByActivity", activityID); err != nil {
		return nil, err
	}

	schedules, err := s.scheduleRepo.ListByActivity(ctx, activityID)
	if err != nil {
		s.logger.Error("ListByActivity: repository error for activity=%d: %v", activityID, err)
		return nil, fmt.Errorf("%w: ListByActivity - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByActivity: fetched %d schedules for activity=%d", len(schedules), activityID)
	return models.FromDomainScheduleList(schedules), nil
}

// Update заменяет окно и вместимость расписания
func (s *Service) Update(ctx context.Context, id int64, req *models.ScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating schedule id=%d", id)

	// 1. Получаем существующее расписание
	schedule, err := s.getSchedule(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	// 2. Применяем и валидируем изменения
	req.ApplyTo(schedule)
	if err := validateSchedule(schedule, s.daySpanning.IsDaySpanning(schedule.ActivitySlug)); err != nil {
		s.logger.Warn("Update: validation failed for schedule id=%d: %v", id, err)
		return nil, err
	}

	// 3. Сохраняем
	updated, err := s.scheduleRepo.Update(ctx, schedule)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Update: schedule id=%d not found during update", id)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Update: repository error for schedule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated schedule id=%d", id)
	return models.FromDomainSchedule(updated), nil
}

// Delete удаляет расписание вместе с корректировками мест
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting schedule id=%d", id)

	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Delete: schedule id=%d not found", id)
			return ErrScheduleNotFound
		}
		s.logger.Error("Delete: repository error for schedule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted schedule id=%d", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getSchedule(ctx context.Context, op string, id int64) (*domain.ActivitySchedule, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("%s: schedule id=%d not found", op, id)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("%s: repository error for schedule id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return schedule, nil
}

func (s *Service) getActivity(ctx context.Context, op string, id int64) (*domain.Activity, error) {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			s.logger.Warn("%s: activity id=%d not found", op, id)
			return nil, ErrActivityNotFound
		}
		s.logger.Error("%s: failed to get activity id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: failed to get activity: %v", ErrInternal, err)
	}
	return activity, nil
}

// validateSchedule проверяет окно и границы вместимости
// Для активностей "на весь день" конец окна может быть раньше начала (ночевка)
func validateSchedule(schedule *domain.ActivitySchedule, daySpanning bool) error {
	if err := schedule.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if !schedule.IsOpenEnded() {
		if err := schedule.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}
		if !daySpanning && !schedule.EndTime.IsAfter(schedule.StartTime) {
			return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
		}
	}

	if err := validateSeats("numberOfSeats", schedule.NumberOfSeats); err != nil {
		return err
	}
	if err := validateSeats("minNumberOfSeats", schedule.MinNumberOfSeats); err != nil {
		return err
	}
	if err := validateSeats("maxNumberOfSeats", schedule.MaxNumberOfSeats); err != nil {
		return err
	}

	if schedule.MinNumberOfSeats != nil && schedule.MaxNumberOfSeats != nil &&
		*schedule.MinNumberOfSeats > *schedule.MaxNumberOfSeats {
		return fmt.Errorf("%w: minNumberOfSeats must not exceed maxNumberOfSeats", ErrInvalidInput)
	}

	return nil
}

func validateSeats(field string, seats *int) error {
	if seats == nil {
		return nil
	}
	if *seats < 0 || *seats > domain.MaxSeatsPerSchedule {
		return fmt.Errorf("%w: %s must be between 0 and %d", ErrInvalidInput, field, domain.MaxSeatsPerSchedule)
	}
	return nil
}
