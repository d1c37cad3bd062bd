package availability

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("availability: schedule not found")

	// ErrInvalidInput возвращается при некорректных идентификаторах или дате
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("availability: internal error")
)
