package get_salon

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/service/salons"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgSalonNotFound  = "салон не найден"
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

// Handle GET /api/v1/salons/{salonId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id} - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	result, err := h.service.GetByID(r.Context(), salonID)
	if err != nil {
		switch {
		case errors.Is(err, salons.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id} - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		default:
			h.logger.Error("GET /salons/{id} - Failed to get salon: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id} - Salon retrieved successfully: salon_id=%d", salonID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
