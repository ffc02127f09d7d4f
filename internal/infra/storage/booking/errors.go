package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	// или уже отменено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда insert отклонён exclusion constraint
	// (два пересекающихся активных бронирования одного салона)
	// Это ожидаемый проигрыш гонки, а не системная ошибка
	ErrSlotTaken = errors.New("booking.repository: overlapping booking exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
