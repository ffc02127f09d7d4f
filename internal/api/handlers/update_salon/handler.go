package update_salon

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/service/salons"
	"github.com/m04kA/Salon-BookingService/internal/service/salons/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSalonNotFound      = "салон не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service SalonsService
	logger  Logger
}

func NewHandler(service SalonsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/salons/{salonId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /salons/{id} - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /salons/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateSalonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.ActorID = actorID
	req.ActorRole = middleware.GetUserRole(r.Context())

	result, err := h.service.Update(r.Context(), salonID, &req)
	if err != nil {
		switch {
		case errors.Is(err, salons.ErrSalonNotFound):
			h.logger.Warn("PUT /salons/{id} - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, salons.ErrAccessDenied):
			h.logger.Warn("PUT /salons/{id} - Access denied: salon_id=%d, actor_id=%d", salonID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, salons.ErrInvalidInput):
			h.logger.Warn("PUT /salons/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /salons/{id} - Failed to update salon: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id} - Salon updated successfully: salon_id=%d, actor_id=%d", salonID, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
