package delete_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/service/catalog"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgServiceNotFound  = "услуга не найдена"
	msgForbidden        = "доступ запрещен"
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

// Handle DELETE /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /services/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	actorRole := middleware.GetUserRole(r.Context())

	if err := h.service.DeleteService(r.Context(), serviceID, actorID, actorRole); err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("DELETE /services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrSalonNotFound):
			h.logger.Warn("DELETE /services/{id} - Salon not found for service: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("DELETE /services/{id} - Access denied: service_id=%d, actor_id=%d", serviceID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /services/{id} - Failed to delete service: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /services/{id} - Service deleted successfully: service_id=%d, actor_id=%d", serviceID, actorID)
	w.WriteHeader(http.StatusNoContent)
}
