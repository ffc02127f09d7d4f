package get_my_salon

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/service/salons/models"
)

type SalonsService interface {
	GetByOwner(ctx context.Context, ownerID int64) (*models.SalonResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
