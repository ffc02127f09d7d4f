package get_working_hours

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	GetWorkingHours(ctx context.Context, salonID int64) (*models.WeekScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
