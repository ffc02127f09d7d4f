package catalog

import (
	"context"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64, activeOnly bool) (*domain.Service, error)
	GetBySalon(ctx context.Context, salonID int64, includeDeleted bool) ([]*domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) error
	SoftDelete(ctx context.Context, id int64, actorID int64) error
	HasBookings(ctx context.Context, serviceID int64) (bool, error)
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetBySalon(ctx context.Context, salonID int64) ([]domain.WorkingHours, error)
	ReplaceForSalon(ctx context.Context, salonID int64, entries []domain.WorkingHours) error
}

// SalonRepository интерфейс репозитория салонов (для проверки владельца)
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

// AvailabilityCache кеш доступных слотов; сбрасывается при изменении
// расписания, так как слоты зависят от рабочих часов
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
