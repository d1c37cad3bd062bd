package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusDraft           BookingStatus = "draft"
	StatusInProgress      BookingStatus = "in_progress"
	StatusConfirmed       BookingStatus = "confirmed"
	StatusPaymentReceived BookingStatus = "payment_received"
	StatusDeclined        BookingStatus = "declined"
	StatusCancelled       BookingStatus = "cancelled"
)

// IsValid returns true for known statuses
func (s BookingStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// ConsumesSeats returns true if bookings in this status count against capacity
func (s BookingStatus) ConsumesSeats() bool {
	for _, status := range SeatConsumingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanTransitionTo returns true if the lifecycle allows moving from s to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusDraft:           {StatusInProgress, StatusConfirmed, StatusCancelled},
	StatusInProgress:      {StatusConfirmed, StatusDeclined, StatusCancelled},
	StatusConfirmed:       {StatusPaymentReceived, StatusCancelled, StatusDeclined},
	StatusPaymentReceived: {StatusCancelled},
	StatusDeclined:        {},
	StatusCancelled:       {},
}

// Booking represents a guest booking with its activity line items
type Booking struct {
	ID         int64
	UserID     int64
	Status     BookingStatus
	Notes      *string
	Activities []BookingActivity
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ConsumesSeats returns true if the booking counts against capacity
func (b *Booking) ConsumesSeats() bool {
	return b.Status.ConsumesSeats()
}

// BookingActivity represents demand for seats on an activity within a date-time window
type BookingActivity struct {
	ID                 int64
	BookingID          int64
	ActivityID         int64
	ActivityScheduleID *int64 // Расписание, по которому создана позиция (может быть удалено)
	StartTime          time.Time
	EndTime            time.Time
	NumberOfSeats      *int // Явное количество мест
	NumberOfAdults     int
	NumberOfChildren   int
	CreatedAt          time.Time
}

// SeatCount returns the demand of the line item.
// An explicit non-zero seat count takes precedence over the adults+children headcount.
func (a *BookingActivity) SeatCount() int {
	if a.NumberOfSeats != nil && *a.NumberOfSeats != 0 {
		return *a.NumberOfSeats
	}
	return a.NumberOfAdults + a.NumberOfChildren
}

// Interval returns the line item time window
func (a *BookingActivity) Interval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// DemandFilter фильтр подтвержденного спроса на активность
type DemandFilter struct {
	ActivityID       int64
	Statuses         []BookingStatus // Только бронирования в этих статусах
	Window           Interval        // Включительное пересечение с окном
	ExcludeBookingID *int64          // Не учитывать бронирование (повторная проверка при смене статуса)
}

// TotalSeats sums the demand of line items
func TotalSeats(items []BookingActivity) int {
	total := 0
	for i := range items {
		total += items[i].SeatCount()
	}
	return total
}

// OverlappingSeats sums the demand of line items of the activity whose window
// overlaps the given window (inclusive), the same rule the committed demand query uses
func OverlappingSeats(items []BookingActivity, activityID int64, window Interval) int {
	total := 0
	for i := range items {
		if items[i].ActivityID == activityID && items[i].Interval().Overlaps(window) {
			total += items[i].SeatCount()
		}
	}
	return total
}
