package create_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/service/catalog"
	"github.com/m04kA/Salon-BookingService/internal/service/catalog/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSalonNotFound      = "салон не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/{salonId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /salons/{id}/services - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /salons/{id}/services - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.SalonID = salonID
	req.ActorID = actorID
	req.ActorRole = middleware.GetUserRole(r.Context())

	result, err := h.service.CreateService(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{id}/services - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /salons/{id}/services - Access denied: salon_id=%d, actor_id=%d", salonID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/services - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /salons/{id}/services - Failed to create service: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/services - Service created successfully: service_id=%d, salon_id=%d",
		result.ID, salonID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
