package delete_service

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

type CatalogService interface {
	DeleteService(ctx context.Context, serviceID int64, actorID int64, actorRole domain.Role) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
