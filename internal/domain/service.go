package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidServiceName возвращается при пустом или слишком длинном названии
	ErrInvalidServiceName = errors.New("invalid service name")

	// ErrInvalidDuration возвращается, когда длительность не кратна шагу
	// или выходит за допустимые границы
	ErrInvalidDuration = errors.New("invalid service duration")

	// ErrInvalidPrice возвращается при цене вне допустимых границ
	ErrInvalidPrice = errors.New("invalid service price")
)

// Service услуга салона
// Длительность и цена снапшотятся в бронирование при создании,
// поэтому услугу можно менять, не переписывая историю
type Service struct {
	ID      int64
	SalonID int64

	Name            string
	DurationMinutes int
	PriceUnits      int64 // целые единицы валюты

	Lifecycle Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет бизнес-инварианты услуги
func (s *Service) Validate() error {
	if s.Name == "" || len(s.Name) > MaxServiceNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidServiceName, MaxServiceNameLength)
	}

	if s.DurationMinutes < MinServiceDurationMinutes || s.DurationMinutes > MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidDuration, MinServiceDurationMinutes, MaxServiceDurationMinutes)
	}
	if s.DurationMinutes%ServiceDurationStep != 0 {
		return fmt.Errorf("%w: duration must be a multiple of %d minutes", ErrInvalidDuration, ServiceDurationStep)
	}

	if s.PriceUnits < MinServicePriceUnits || s.PriceUnits > MaxServicePriceUnits {
		return fmt.Errorf("%w: price must be between %d and %d",
			ErrInvalidPrice, MinServicePriceUnits, MaxServicePriceUnits)
	}

	return nil
}

// IsActive проверяет, что услуга не удалена
func (s *Service) IsActive() bool {
	return !s.Lifecycle.IsDeleted()
}

// MakeSnapshot возвращает немутабельную копию данных услуги для бронирования
func (s *Service) MakeSnapshot() ServiceSnapshot {
	return ServiceSnapshot{
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		PriceUnits:      s.PriceUnits,
	}
}
