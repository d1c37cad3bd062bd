package models

import (
	"time"

	"github.com/m04kA/ParkBookingService/internal/domain"
	"github.com/m04kA/ParkBookingService/pkg/types"
)

// Request модели

// ScheduleRequest запрос на создание или замену расписания
type ScheduleRequest struct {
	StartTime        types.TimeString  `json:"startTime"`
	EndTime          *types.TimeString `json:"endTime,omitempty"`          // nil = до конца дня
	NumberOfSeats    *int              `json:"numberOfSeats,omitempty"`    // nil = без ограничения
	MinNumberOfSeats *int              `json:"minNumberOfSeats,omitempty"` // Рекомендательная граница
	MaxNumberOfSeats *int              `json:"maxNumberOfSeats,omitempty"` // Рекомендательная граница
}

// Response модели

// ScheduleResponse ответ с данными расписания
type ScheduleResponse struct {
	ID               int64             `json:"id"`
	ActivityID       int64             `json:"activityId"`
	StartTime        types.TimeString  `json:"startTime"`
	EndTime          *types.TimeString `json:"endTime,omitempty"`
	NumberOfSeats    *int              `json:"numberOfSeats"`
	MinNumberOfSeats *int              `json:"minNumberOfSeats,omitempty"`
	MaxNumberOfSeats *int              `json:"maxNumberOfSeats,omitempty"`
	Unlimited        bool              `json:"unlimited"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// ScheduleListResponse ответ со списком расписаний
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.ActivitySchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	return &ScheduleResponse{
		ID:               s.ID,
		ActivityID:       s.ActivityID,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		NumberOfSeats:    s.NumberOfSeats,
		MinNumberOfSeats: s.MinNumberOfSeats,
		MaxNumberOfSeats: s.MaxNumberOfSeats,
		Unlimited:        s.BaseCapacity().IsUnlimited(),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// FromDomainScheduleList конвертирует список domain моделей в DTO
func FromDomainScheduleList(schedules []*domain.ActivitySchedule) *ScheduleListResponse {
	resp := &ScheduleListResponse{
		Schedules: make([]ScheduleResponse, 0, len(schedules)),
	}

	for _, schedule := range schedules {
		if scheduleResp := FromDomainSchedule(schedule); scheduleResp != nil {
			resp.Schedules = append(resp.Schedules, *scheduleResp)
		}
	}

	return resp
}

// ApplyTo переносит поля запроса в domain модель
func (r *ScheduleRequest) ApplyTo(s *domain.ActivitySchedule) {
	s.StartTime = r.StartTime
	s.EndTime = r.EndTime
	if s.EndTime != nil && s.EndTime.IsZero() {
		s.EndTime = nil
	}
	s.NumberOfSeats = r.NumberOfSeats
	s.MinNumberOfSeats = r.MinNumberOfSeats
	s.MaxNumberOfSeats = r.MaxNumberOfSeats
}
