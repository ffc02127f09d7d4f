package workinghours

import "errors"

var (
	// ErrWindowNotFound возвращается, когда на день недели нет записи
	// Для вызывающего это означает "салон закрыт"
	ErrWindowNotFound = errors.New("workinghours.repository: window not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("workinghours.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("workinghours.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("workinghours.repository: failed to scan row")
)
