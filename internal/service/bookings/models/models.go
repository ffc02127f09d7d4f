package models

import (
	"errors"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

var (
	// ErrInvalidType возвращается при некорректном типе бронирования
	ErrInvalidType = errors.New("invalid booking type")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований клиента
type GetUserBookingsRequest struct {
	ClientID       int64 `json:"clientId"`
	IncludeDeleted bool  `json:"includeDeleted,omitempty"`
}

// GetSalonBookingsRequest запрос на получение бронирований салона
// Доступно только владельцу салона
type GetSalonBookingsRequest struct {
	SalonID        int64      `json:"salonId"`
	From           *time.Time `json:"from,omitempty"` // Начало периода (опционально)
	To             *time.Time `json:"to,omitempty"`   // Конец периода (опционально)
	Type           *string    `json:"type,omitempty"` // Фильтр по типу (опционально)
	IncludeDeleted bool       `json:"includeDeleted,omitempty"`

	ActorID   int64       `json:"-"`
	ActorRole domain.Role `json:"-"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSalonBookingsRequest) ToDomainFilter() (domain.SalonBookingsFilter, error) {
	filter := domain.SalonBookingsFilter{
		SalonID:        r.SalonID,
		From:           r.From,
		To:             r.To,
		IncludeDeleted: r.IncludeDeleted,
	}

	if r.Type != nil {
		bookingType, err := ToDomainBookingType(*r.Type)
		if err != nil {
			return filter, err
		}
		filter.Type = &bookingType
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
// Статус вычисляется из lifecycle и времени, в хранилище его нет
type BookingResponse struct {
	ID       int64     `json:"id"`
	SalonID  int64     `json:"salonId"`
	Type     string    `json:"type"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`

	ServiceID *int64 `json:"serviceId,omitempty"`
	ClientID  *int64 `json:"clientId,omitempty"`

	// Снапшот услуги на момент бронирования
	ServiceName     string `json:"serviceName,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	PriceUnits      int64  `json:"priceUnits,omitempty"`

	Note   *string `json:"note,omitempty"`
	Status string  `json:"status"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// Статус вычисляется на момент now
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		SalonID:         b.SalonID,
		Type:            string(b.Type),
		StartsAt:        b.StartsAt,
		EndsAt:          b.EndsAt,
		ServiceID:       b.ServiceID,
		ClientID:        b.ClientID,
		ServiceName:     b.Snapshot.Name,
		DurationMinutes: b.Snapshot.DurationMinutes,
		PriceUnits:      b.Snapshot.PriceUnits,
		Note:            b.Note,
		Status:          string(b.StatusAt(now)),
		CreatedAt:       b.CreatedAt,
	}

	if b.Lifecycle.DeletedAt != nil {
		cancelledStr := b.Lifecycle.DeletedAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingType конвертирует строку в domain.BookingType с валидацией
func ToDomainBookingType(bookingType string) (domain.BookingType, error) {
	t := domain.BookingType(bookingType)

	switch t {
	case domain.TypeOnline, domain.TypeManual:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}
