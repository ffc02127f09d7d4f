package list_services

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListServices(ctx context.Context, salonID int64) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
