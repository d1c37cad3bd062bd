package get_remaining_seats

import "time"

// Request модель запроса свободных мест
type Request struct {
	ScheduleID int64  // ID расписания
	Date       string // Дата в формате YYYY-MM-DD (часовой пояс парка)
}

// Response модель ответа со свободными местами
type Response struct {
	ScheduleID     int64     `json:"scheduleId"`
	ActivityID     int64     `json:"activityId"`
	Date           string    `json:"date"`
	WindowStart    time.Time `json:"windowStart"`
	WindowEnd      time.Time `json:"windowEnd"`
	Unlimited      bool      `json:"unlimited"`
	Capacity       *int      `json:"capacity"`       // nil для безлимитного расписания
	CapacitySource string    `json:"capacitySource"` // base | adjustment
	AdjustmentID   *int64    `json:"adjustmentId,omitempty"`
	BookedSeats    int       `json:"bookedSeats"`
	RemainingSeats *int      `json:"remainingSeats"` // Может быть отрицательным при перебронировании
	AvailableSeats *int      `json:"availableSeats"` // Не меньше нуля
	Overbooked     bool      `json:"overbooked"`
}
