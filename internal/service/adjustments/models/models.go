package models

import (
	"time"

	"github.com/m04kA/ParkBookingService/internal/domain"
)

// Request модели

// AdjustmentRequest запрос на создание или изменение корректировки
// Даты в формате YYYY-MM-DD, включительно
type AdjustmentRequest struct {
	AdjustedSeats int    `json:"adjustedSeats"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Reason        string `json:"reason"`
}

// ListRequest фильтр истории корректировок
type ListRequest struct {
	ScheduleID int64
	From       string // YYYY-MM-DD, опционально
	To         string // YYYY-MM-DD, опционально
}

// Response модели

// AdjustmentResponse ответ с данными корректировки
type AdjustmentResponse struct {
	ID            int64     `json:"id"`
	ScheduleID    int64     `json:"scheduleId"`
	AdjustedSeats int       `json:"adjustedSeats"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	Reason        string    `json:"reason"`
	UserID        int64     `json:"userId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// AdjustmentListResponse ответ со списком корректировок
type AdjustmentListResponse struct {
	Adjustments []AdjustmentResponse `json:"adjustments"`
}

// FromDomainAdjustment конвертирует domain модель в DTO
func FromDomainAdjustment(a *domain.SeatsAdjustment) *AdjustmentResponse {
	if a == nil {
		return nil
	}

	return &AdjustmentResponse{
		ID:            a.ID,
		ScheduleID:    a.ActivityScheduleID,
		AdjustedSeats: a.AdjustedSeats,
		StartDate:     domain.FormatDate(a.StartDate),
		EndDate:       domain.FormatDate(a.EndDate),
		Reason:        a.Reason,
		UserID:        a.UserID,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// FromDomainAdjustmentList конвертирует список domain моделей в DTO
func FromDomainAdjustmentList(adjustments []domain.SeatsAdjustment) *AdjustmentListResponse {
	resp := &AdjustmentListResponse{
		Adjustments: make([]AdjustmentResponse, 0, len(adjustments)),
	}

	for i := range adjustments {
		resp.Adjustments = append(resp.Adjustments, *FromDomainAdjustment(&adjustments[i]))
	}

	return resp
}
