package bookings

import (
	"context"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByClientID(ctx context.Context, clientID int64, includeDeleted bool) ([]*domain.Booking, error)
	GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error)
	SoftDelete(ctx context.Context, id int64, actorID int64) error
}

// SalonRepository интерфейс репозитория салонов (для проверки владельца)
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

// AvailabilityCache кеш доступных слотов; сбрасывается при отмене
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
