package update_booking_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на смену статуса
	ErrAccessDenied = errors.New("update_booking_status: access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("update_booking_status: invalid status transition")

	// ErrNotEnoughSeats возвращается, когда подтверждение превысит вместимость
	ErrNotEnoughSeats = errors.New("update_booking_status: not enough seats")

	// ErrConflict возвращается при конфликте параллельных изменений; запрос можно повторить
	ErrConflict = errors.New("update_booking_status: concurrent update conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
