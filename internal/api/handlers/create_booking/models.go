package create_booking

import (
	createBooking "github.com/m04kA/ParkBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// userId берется из заголовка X-User-ID
type CreateBookingRequest struct {
	Status string                      `json:"status,omitempty"` // draft (по умолчанию) или confirmed
	Notes  *string                     `json:"notes,omitempty"`
	Items  []createBooking.ItemRequest `json:"items"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID: userID,
		Status: r.Status,
		Notes:  r.Notes,
		Items:  r.Items,
	}
}
