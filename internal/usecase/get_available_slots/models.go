package get_available_slots

import (
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SalonID   int64     // ID салона
	ServiceID int64     // ID услуги (определяет длительность слота)
	Date      time.Time // Дата для расчёта слотов (без времени)
}

// Response модель ответа со списком доступных слотов
// Результат - чистая функция входов: одинаковые входы без
// промежуточных записей дают одинаковый упорядоченный список
type Response struct {
	Date      time.Time `json:"date"`
	SalonID   int64     `json:"salonId"`
	ServiceID int64     `json:"serviceId"`
	Slots     []Slot    `json:"slots"`
}

// Slot кандидат на бронирование
type Slot struct {
	StartsAt        time.Time        `json:"startsAt"`  // Абсолютное время начала (UTC)
	StartTime       types.TimeString `json:"startTime"` // Wall-clock в зоне салона
	DurationMinutes int              `json:"durationMinutes"`
}
