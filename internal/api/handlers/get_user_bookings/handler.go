package get_user_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
)

const (
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidRequest = "некорректные параметры запроса"
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

// Handle GET /api/v1/users/me/bookings
// Query params: includeCancelled (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	includeCancelled := false
	if v := r.URL.Query().Get("includeCancelled"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			h.logger.Warn("GET /users/me/bookings - Invalid includeCancelled: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)
			return
		}
		includeCancelled = parsed
	}

	req := &models.GetUserBookingsRequest{
		ClientID:       actorID,
		IncludeDeleted: includeCancelled,
	}

	result, err := h.service.GetUserBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /users/me/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /users/me/bookings - Failed to get bookings: actor_id=%d, error=%v", actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/me/bookings - Bookings retrieved successfully: actor_id=%d, count=%d",
		actorID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
