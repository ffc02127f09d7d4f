package create_booking

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
//
// ONLINE: ServiceID обязателен, конец вычисляется из длительности услуги,
// клиентом становится ActorID
// MANUAL: EndsAt обязателен, услуга и клиент не привязываются,
// доступно только владельцу салона
type Request struct {
	SalonID   int64
	ServiceID *int64
	Type      domain.BookingType

	StartsAt time.Time
	EndsAt   *time.Time

	Note *string

	// Идентичность вызывающего из запроса (не хранится в usecase)
	ActorID   int64
	ActorRole domain.Role
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID       int64
	SalonID  int64
	Type     domain.BookingType
	StartsAt time.Time
	EndsAt   time.Time

	ServiceID *int64
	ClientID  *int64
	Snapshot  domain.ServiceSnapshot

	Note      *string
	Status    domain.BookingStatus
	CreatedAt time.Time
}
