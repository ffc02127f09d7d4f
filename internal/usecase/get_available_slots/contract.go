package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	// OccupiedIntervals возвращает интервалы активных бронирований салона,
	// пересекающие [from, to), упорядоченные по началу
	OccupiedIntervals(ctx context.Context, salonID int64, from, to time.Time) ([]domain.Interval, error)
}

// WorkingHoursRepository интерфейс календаря рабочих часов
type WorkingHoursRepository interface {
	// Window возвращает окно работы на день недели
	// ErrWindowNotFound означает "закрыто"
	Window(ctx context.Context, salonID int64, weekday time.Weekday) (domain.Window, error)
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64, activeOnly bool) (*domain.Service, error)
}

// AvailabilityCache кеш ответов с коротким TTL (опционален)
type AvailabilityCache interface {
	Get(ctx context.Context, salonID, serviceID int64, date string, dest interface{}) (bool, error)
	Set(ctx context.Context, salonID, serviceID int64, date string, value interface{}) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
