package get_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/service/catalog"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgSalonNotFound  = "салон не найден"
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

// Handle GET /api/v1/salons/{salonId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/working-hours - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	result, err := h.service.GetWorkingHours(r.Context(), salonID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/working-hours - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		default:
			h.logger.Error("GET /salons/{id}/working-hours - Failed to get schedule: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/working-hours - Schedule retrieved successfully: salon_id=%d, entries=%d",
		salonID, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result)
}
