package adjustment

import "errors"

var (
	// ErrAdjustmentNotFound возвращается, когда корректировка не найдена
	ErrAdjustmentNotFound = errors.New("adjustment.repository: seats adjustment not found")

	// ErrScheduleNotFound возвращается при ссылке на несуществующее расписание
	ErrScheduleNotFound = errors.New("adjustment.repository: schedule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("adjustment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("adjustment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("adjustment.repository: failed to scan row")
)
