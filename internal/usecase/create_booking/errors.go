package create_booking

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание позиции не найдено
	ErrScheduleNotFound = errors.New("create_booking: schedule not found")

	// ErrInvalidDate возвращается, когда дата позиции в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrNotEnoughSeats возвращается, когда запрошенные места не помещаются в вместимость
	ErrNotEnoughSeats = errors.New("create_booking: not enough seats")

	// ErrConflict возвращается при конфликте параллельных бронирований; запрос можно повторить
	ErrConflict = errors.New("create_booking: concurrent booking conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
