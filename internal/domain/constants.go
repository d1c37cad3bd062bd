package domain

// Business validation constants
const (
	MaxSeatsPerSchedule    = 10000
	MaxSeatsPerItem        = 500
	MaxItemsPerBooking     = 20
	MaxReasonLength        = 500
	MaxNotesLength         = 500
	MaxAdjustmentRangeDays = 366 // 1 год
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SeatConsumingStatuses статусы бронирований, учитываемые при расчете свободных мест
var SeatConsumingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusPaymentReceived,
}
