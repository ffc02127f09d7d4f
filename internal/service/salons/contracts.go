package salons

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Salon, error)
	Update(ctx context.Context, s *domain.Salon) error
	IsComplete(ctx context.Context, salonID int64) (bool, error)
	ListComplete(ctx context.Context) ([]*domain.Salon, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
