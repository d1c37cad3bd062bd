package update_booking_status

// Request модель запроса смены статуса
type Request struct {
	BookingID int64
	UserID    int64
	IsAdmin   bool
	Status    string
}

// Response модель ответа со сменой статуса
type Response struct {
	ID             int64  `json:"id"`
	PreviousStatus string `json:"previousStatus"`
	Status         string `json:"status"`
}
