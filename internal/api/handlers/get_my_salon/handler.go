package get_my_salon

import (
	"errors"
	"net/http"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/service/salons"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgSalonNotFound = "салон не найден"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/users/me/salon
// Возвращает салон текущего владельца (связь 1:1)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me/salon - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if middleware.GetUserRole(r.Context()) != domain.RoleOwner {
		h.logger.Warn("GET /users/me/salon - Actor is not an owner: actor_id=%d", actorID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.GetByOwner(r.Context(), actorID)
	if err != nil {
		switch {
		case errors.Is(err, salons.ErrSalonNotFound):
			h.logger.Warn("GET /users/me/salon - Salon not found: owner_id=%d", actorID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		default:
			h.logger.Error("GET /users/me/salon - Failed to get salon: owner_id=%d, error=%v", actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/me/salon - Salon retrieved successfully: salon_id=%d, owner_id=%d", result.ID, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
