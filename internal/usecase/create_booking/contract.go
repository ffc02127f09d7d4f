package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	// Create добавляет бронирование; пересечение с активным бронированием
	// того же салона возвращает booking.ErrSlotTaken
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)

	// OccupiedIntervals возвращает интервалы активных бронирований салона,
	// пересекающие [from, to)
	OccupiedIntervals(ctx context.Context, salonID int64, from, to time.Time) ([]domain.Interval, error)
}

// WorkingHoursRepository интерфейс календаря рабочих часов
type WorkingHoursRepository interface {
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

// AvailabilityCache кеш доступных слотов; координатор его не читает,
// только сбрасывает при успешном создании
type AvailabilityCache interface {
	Invalidate(ctx context.Context, salonID int64, date string) error
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
