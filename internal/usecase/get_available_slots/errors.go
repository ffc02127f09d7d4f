package get_available_slots

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("get_available_slots: salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена,
	// удалена или принадлежит другому салону
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
