package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgBookingNotFound  = "бронирование не найдено"
	msgCannotCancel     = "бронирование нельзя отменить"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	actorRole := middleware.GetUserRole(r.Context())

	if err := h.service.Cancel(r.Context(), bookingID, actorID, actorRole); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("DELETE /bookings/{id} - Cannot cancel: booking_id=%d, actor_id=%d", bookingID, actorID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("DELETE /bookings/{id} - Access denied: booking_id=%d, actor_id=%d", bookingID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking cancelled successfully: booking_id=%d, actor_id=%d", bookingID, actorID)
	w.WriteHeader(http.StatusNoContent)
}
