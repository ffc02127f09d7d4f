package update_service

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
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceImmutable   = "длительность и цена услуги с бронированиями не меняются"
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

// Handle PUT /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /services/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.ActorID = actorID
	req.ActorRole = middleware.GetUserRole(r.Context())

	result, err := h.service.UpdateService(r.Context(), serviceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("PUT /services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrSalonNotFound):
			h.logger.Warn("PUT /services/{id} - Salon not found for service: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrServiceImmutable):
			h.logger.Warn("PUT /services/{id} - Service immutable: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgServiceImmutable)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PUT /services/{id} - Access denied: service_id=%d, actor_id=%d", serviceID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /services/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /services/{id} - Failed to update service: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /services/{id} - Service updated successfully: service_id=%d, actor_id=%d", serviceID, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
