package update_working_hours

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	UpdateWorkingHours(ctx context.Context, req *models.UpdateWorkingHoursRequest) (*models.WeekScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
