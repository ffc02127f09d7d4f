package create_booking

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("create_booking: salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена,
	// удалена или принадлежит другому салону
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSalonClosed возвращается, когда слот выходит за рабочие часы
	// или салон закрыт в этот день
	ErrSalonClosed = errors.New("create_booking: salon is closed at requested time")

	// ErrSlotTaken возвращается при пересечении с существующим
	// активным бронированием
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrInvalidSlot возвращается при некорректном интервале:
	// начало не выровнено по сетке слотов или конец не позже начала
	ErrInvalidSlot = errors.New("create_booking: invalid slot")

	// ErrStartInPast возвращается, когда начало бронирования в прошлом
	ErrStartInPast = errors.New("create_booking: start time is in the past")

	// ErrAccessDenied возвращается, когда ручной блок пытается создать
	// не владелец салона
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
