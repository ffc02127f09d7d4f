package update_salon

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/service/salons/models"
)

type SalonsService interface {
	Update(ctx context.Context, salonID int64, req *models.UpdateSalonRequest) (*models.SalonResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
