package list_salons

import (
	"net/http"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
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

// Handle GET /api/v1/salons
// Публичный каталог: только салоны с заполненным профилем
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListComplete(r.Context())
	if err != nil {
		h.logger.Error("GET /salons - Failed to list salons: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons - Salons retrieved successfully: count=%d", len(result.Salons))
	handlers.RespondJSON(w, http.StatusOK, result)
}
