package create_booking

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	createBooking "github.com/m04kA/Salon-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// ONLINE: serviceId обязателен, endsAt игнорируется
// MANUAL: endsAt обязателен, serviceId отсутствует
type CreateBookingRequest struct {
	SalonID   int64   `json:"salonId"`
	ServiceID *int64  `json:"serviceId,omitempty"`
	Type      string  `json:"type"` // "ONLINE" | "MANUAL"
	StartsAt  string  `json:"startsAt"`         // RFC3339
	EndsAt    *string `json:"endsAt,omitempty"` // RFC3339, только MANUAL
	Note      *string `json:"note,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID       int64  `json:"id"`
	SalonID  int64  `json:"salonId"`
	Type     string `json:"type"`
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`

	ServiceID *int64 `json:"serviceId,omitempty"`
	ClientID  *int64 `json:"clientId,omitempty"`

	ServiceName     string `json:"serviceName,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	PriceUnits      int64  `json:"priceUnits,omitempty"`

	Note      *string `json:"note,omitempty"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actorID int64, actorRole domain.Role) (*createBooking.Request, error) {
	startsAt, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return nil, err
	}

	var endsAt *time.Time
	if r.EndsAt != nil {
		parsed, err := time.Parse(time.RFC3339, *r.EndsAt)
		if err != nil {
			return nil, err
		}
		endsAt = &parsed
	}

	return &createBooking.Request{
		SalonID:   r.SalonID,
		ServiceID: r.ServiceID,
		Type:      domain.BookingType(r.Type),
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Note:      r.Note,
		ActorID:   actorID,
		ActorRole: actorRole,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		SalonID:         resp.SalonID,
		Type:            string(resp.Type),
		StartsAt:        resp.StartsAt.Format(time.RFC3339),
		EndsAt:          resp.EndsAt.Format(time.RFC3339),
		ServiceID:       resp.ServiceID,
		ClientID:        resp.ClientID,
		ServiceName:     resp.Snapshot.Name,
		DurationMinutes: resp.Snapshot.DurationMinutes,
		PriceUnits:      resp.Snapshot.PriceUnits,
		Note:            resp.Note,
		Status:          string(resp.Status),
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
