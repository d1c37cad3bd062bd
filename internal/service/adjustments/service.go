package adjustments

import (
	"context"
	"errors"
	"fmt"
	"time"

	adjustmentRepo "github.com/m04kA/ParkBookingService/internal/infra/storage/adjustment"
	scheduleRepo "github.com/m04kA/ParkBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/ParkBookingService/internal/service/adjustments/models"
)

// Service сервис журнала корректировок мест
// Удаление корректировок не поддерживается
type Service struct {
	adjustmentRepo AdjustmentRepository
	scheduleRepo   ScheduleRepository
	location       *time.Location
	logger         Logger
}

// NewService создает новый экземпляр сервиса корректировок
func NewService(
	adjustmentRepo AdjustmentRepository,
	scheduleRepo ScheduleRepository,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		adjustmentRepo: adjustmentRepo,
		scheduleRepo:   scheduleRepo,
		location:       location,
		logger:         logger,
	}
}

// Create добавляет корректировку вместимости расписания
func (s *Service) Create(ctx context.Context, scheduleID int64, userID int64, req *models.AdjustmentRequest) (*models.AdjustmentResponse, error) {
	s.logger.Info("Create: adding adjustment for schedule=%d, seats=%d, period=%s..%s, user=%d",
		scheduleID, req.AdjustedSeats, req.StartDate, req.EndDate, userID)

	// 1. Валидируем запрос
	adj, err := parseAdjustment(req, s.location)
	if err != nil {
		s.logger.Warn("Create: validation failed for schedule=%d: %v", scheduleID, err)
		return nil, err
	}
	adj.ActivityScheduleID = scheduleID
	adj.UserID = userID

	// 2. Проверяем расписание
	if _, err := s.scheduleRepo.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Create: schedule id=%d not found", scheduleID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Create: failed to get schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 3. Сохраняем (расписание могли удалить между проверкой и вставкой)
	created, err := s.adjustmentRepo.Create(ctx, adj)
	if err != nil {
		if errors.Is(err, adjustmentRepo.ErrScheduleNotFound) {
			s.logger.Warn("Create: schedule id=%d disappeared before insert", scheduleID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created adjustment id=%d for schedule=%d", created.ID, scheduleID)
	return models.FromDomainAdjustment(created), nil
}

// Update изменяет корректировку; новое updated_at делает её приоритетной среди пересекающихся
func (s *Service) Update(ctx context.Context, id int64, userID int64, req *models.AdjustmentRequest) (*models.AdjustmentResponse, error) {
	s.logger.Info("Update: updating adjustment id=%d by user=%d", id, userID)

	// 1. Валидируем запрос
	parsed, err := parseAdjustment(req, s.location)
	if err != nil {
		s.logger.Warn("Update: validation failed for adjustment id=%d: %v", id, err)
		return nil, err
	}

	// 2. Получаем существующую корректировку
	existing, err := s.adjustmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, adjustmentRepo.ErrAdjustmentNotFound) {
			s.logger.Warn("Update: adjustment id=%d not found", id)
			return nil, ErrAdjustmentNotFound
		}
		s.logger.Error("Update: repository error for adjustment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 3. Применяем изменения
	existing.AdjustedSeats = parsed.AdjustedSeats
	existing.StartDate = parsed.StartDate
	existing.EndDate = parsed.EndDate
	existing.Reason = parsed.Reason

	updated, err := s.adjustmentRepo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, adjustmentRepo.ErrAdjustmentNotFound) {
			s.logger.Warn("Update: adjustment id=%d not found during update", id)
			return nil, ErrAdjustmentNotFound
		}
		s.logger.Error("Update: repository error for adjustment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated adjustment id=%d", id)
	return models.FromDomainAdjustment(updated), nil
}

// List получает историю корректировок расписания
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AdjustmentListResponse, error) {
	s.logger.Info("List: fetching adjustments for schedule=%d, from=%q, to=%q", req.ScheduleID, req.From, req.To)

	filter, err := parseFilter(req, s.location)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	if _, err := s.scheduleRepo.GetByID(ctx, req.ScheduleID); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("List: schedule id=%d not found", req.ScheduleID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("List: failed to get schedule id=%d: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	adjustments, err := s.adjustmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for schedule=%d: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d adjustments for schedule=%d", len(adjustments), req.ScheduleID)
	return models.FromDomainAdjustmentList(adjustments), nil
}
