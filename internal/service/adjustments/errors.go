package adjustments

import "errors"

var (
	// ErrAdjustmentNotFound возвращается, когда корректировка не найдена
	ErrAdjustmentNotFound = errors.New("seats adjustment not found")

	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
