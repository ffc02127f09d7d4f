package domain

import "time"

// BookingType represents how the booking was created
type BookingType string

const (
	// TypeOnline бронирование через клиентский флоу, привязано к услуге
	TypeOnline BookingType = "ONLINE"
	// TypeManual блок времени, созданный владельцем салона, без услуги и клиента
	TypeManual BookingType = "MANUAL"
)

// BookingStatus derived status of a booking, never stored
type BookingStatus string

const (
	StatusUpcoming  BookingStatus = "upcoming"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// LifecycleState состояние жизненного цикла записи
type LifecycleState string

const (
	LifecycleActive  LifecycleState = "active"
	LifecycleDeleted LifecycleState = "deleted"
)

// Lifecycle tagged soft-delete state: active or deleted with attribution
type Lifecycle struct {
	State     LifecycleState
	DeletedAt *time.Time
	DeletedBy *int64
}

// ActiveLifecycle возвращает активное состояние
func ActiveLifecycle() Lifecycle {
	return Lifecycle{State: LifecycleActive}
}

// DeletedLifecycle возвращает удалённое состояние с атрибуцией
func DeletedLifecycle(at time.Time, by int64) Lifecycle {
	return Lifecycle{State: LifecycleDeleted, DeletedAt: &at, DeletedBy: &by}
}

// IsDeleted returns true if the record has been soft-deleted
func (l Lifecycle) IsDeleted() bool {
	return l.State == LifecycleDeleted
}

// ServiceSnapshot immutable copy of service data embedded into a booking
// at creation time, so later service edits never rewrite history
type ServiceSnapshot struct {
	Name            string
	DurationMinutes int
	PriceUnits      int64
}

// Booking represents a reservation occupying a half-open interval
// [StartsAt, EndsAt) in a salon's calendar. Timestamps are absolute (UTC).
type Booking struct {
	ID        int64
	SalonID   int64
	ServiceID *int64 // nil for MANUAL blocks
	ClientID  *int64 // nil for MANUAL blocks
	Type      BookingType

	StartsAt time.Time
	EndsAt   time.Time

	Snapshot ServiceSnapshot // zero-value for MANUAL blocks
	Note     *string

	Lifecycle Lifecycle
	CreatedAt time.Time
}

// Interval возвращает занимаемый интервал [StartsAt, EndsAt)
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartsAt, End: b.EndsAt}
}

// IsActive returns true if the booking has not been cancelled
func (b *Booking) IsActive() bool {
	return !b.Lifecycle.IsDeleted()
}

// StatusAt derives the booking status from now vs the stored interval:
// cancelled if soft-deleted, upcoming while now < EndsAt, completed after
func (b *Booking) StatusAt(now time.Time) BookingStatus {
	if b.Lifecycle.IsDeleted() {
		return StatusCancelled
	}
	if now.Before(b.EndsAt) {
		return StatusUpcoming
	}
	return StatusCompleted
}

// SalonBookingsFilter фильтр выборки бронирований салона
type SalonBookingsFilter struct {
	SalonID        int64      // Обязательный параметр
	From           *time.Time // Начало периода (опционально)
	To             *time.Time // Конец периода (опционально, полуинтервал [From, To))
	Type           *BookingType
	IncludeDeleted bool // Включать ли отменённые бронирования
}
