package list_salons

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/service/salons/models"
)

type SalonsService interface {
	ListComplete(ctx context.Context) (*models.SalonListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
