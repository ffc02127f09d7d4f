package get_salon_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidRequest = "некорректные параметры запроса"
	msgInvalidPeriod  = "некорректный формат периода, ожидается RFC3339"
	msgSalonNotFound  = "салон не найден"
	msgForbidden      = "доступ запрещен"
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

// Handle GET /api/v1/salons/{salonId}/bookings
// Query params: from, to (optional, RFC3339), type (optional), includeCancelled (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/bookings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /salons/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	actorRole := middleware.GetUserRole(r.Context())

	req := &models.GetSalonBookingsRequest{
		SalonID:   salonID,
		ActorID:   actorID,
		ActorRole: actorRole,
	}

	query := r.URL.Query()

	if v := query.Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/bookings - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.From = &from
	}

	if v := query.Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/bookings - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.To = &to
	}

	if v := query.Get("type"); v != "" {
		req.Type = &v
	}

	if v := query.Get("includeCancelled"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/bookings - Invalid includeCancelled: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)
			return
		}
		req.IncludeDeleted = parsed
	}

	result, err := h.service.GetSalonBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/bookings - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /salons/{id}/bookings - Access denied: salon_id=%d, actor_id=%d", salonID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /salons/{id}/bookings - Failed to get bookings: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/bookings - Bookings retrieved successfully: salon_id=%d, actor_id=%d, count=%d",
		salonID, actorID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
