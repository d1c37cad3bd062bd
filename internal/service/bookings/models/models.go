package models

import (
	"errors"
	"time"

	"github.com/m04kA/ParkBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetBookingRequest запрос на получение бронирования
type GetBookingRequest struct {
	BookingID int64
	UserID    int64
	IsAdmin   bool
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64                     `json:"id"`
	UserID    int64                     `json:"userId"`
	Status    string                    `json:"status"`
	Notes     *string                   `json:"notes,omitempty"`
	Items     []BookingActivityResponse `json:"items"`
	Seats     int                       `json:"seats"` // Всего мест по всем позициям
	CreatedAt time.Time                 `json:"createdAt"`
	UpdatedAt time.Time                 `json:"updatedAt"`
}

// BookingActivityResponse позиция бронирования
type BookingActivityResponse struct {
	ID               int64     `json:"id"`
	ActivityID       int64     `json:"activityId"`
	ScheduleID       *int64    `json:"scheduleId,omitempty"` // nil, если расписание удалено
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	NumberOfSeats    *int      `json:"numberOfSeats,omitempty"`
	NumberOfAdults   int       `json:"numberOfAdults"`
	NumberOfChildren int       `json:"numberOfChildren"`
	Seats            int       `json:"seats"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	items := make([]BookingActivityResponse, 0, len(b.Activities))
	for i := range b.Activities {
		item := &b.Activities[i]
		items = append(items, BookingActivityResponse{
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

	return &BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		Status:    string(b.Status),
		Notes:     b.Notes,
		Items:     items,
		Seats:     domain.TotalSeats(b.Activities),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
