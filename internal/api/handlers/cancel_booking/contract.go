package cancel_booking

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

type BookingsService interface {
	Cancel(ctx context.Context, bookingID int64, actorID int64, actorRole domain.Role) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
