package get_salon_bookings

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetSalonBookings(ctx context.Context, req *models.GetSalonBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
