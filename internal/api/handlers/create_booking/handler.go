package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/Salon-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotTaken          = "выбранный временной слот уже занят"
	msgSalonNotFound      = "салон не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgSalonClosed        = "салон закрыт в выбранное время"
	msgInvalidSlot        = "некорректный временной слот"
	msgStartInPast        = "время начала уже прошло"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	actorRole := middleware.GetUserRole(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actorID, actorRole)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: actor_id=%d, salon_id=%d", actorID, req.SalonID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createBooking.ErrSalonNotFound):
			h.logger.Warn("POST /bookings - Salon not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrSalonClosed):
			h.logger.Warn("POST /bookings - Salon closed: actor_id=%d, salon_id=%d", actorID, req.SalonID)
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, createBooking.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Invalid slot: actor_id=%d, salon_id=%d", actorID, req.SalonID)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createBooking.ErrStartInPast):
			h.logger.Warn("POST /bookings - Start in past: actor_id=%d, salon_id=%d", actorID, req.SalonID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings - Access denied: actor_id=%d, salon_id=%d", actorID, req.SalonID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: actor_id=%d, salon_id=%d, error=%v",
				actorID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, actor_id=%d, salon_id=%d",
		result.ID, actorID, req.SalonID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
