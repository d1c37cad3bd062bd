package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID int64         // ID пользователя (из заголовка X-User-ID)
	Status string        // draft (по умолчанию) или confirmed
	Notes  *string       // Дополнительные заметки (опционально)
	Items  []ItemRequest // Позиции бронирования
}

// ItemRequest позиция бронирования на расписание и дату
type ItemRequest struct {
	ScheduleID       int64  `json:"scheduleId"`
	Date             string `json:"date"` // YYYY-MM-DD в часовом поясе парка
	NumberOfSeats    *int   `json:"numberOfSeats,omitempty"`
	NumberOfAdults   int    `json:"numberOfAdults"`
	NumberOfChildren int    `json:"numberOfChildren"`
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"userId"`
	Status    string         `json:"status"`
	Notes     *string        `json:"notes,omitempty"`
	Items     []ItemResponse `json:"items"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ItemResponse созданная позиция бронирования
type ItemResponse struct {
	ID               int64     `json:"id"`
	ActivityID       int64     `json:"activityId"`
	ScheduleID       *int64    `json:"scheduleId,omitempty"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	NumberOfSeats    *int      `json:"numberOfSeats,omitempty"`
	NumberOfAdults   int       `json:"numberOfAdults"`
	NumberOfChildren int       `json:"numberOfChildren"`
	Seats            int       `json:"seats"`
}
