package get_available_slots

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/Salon-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	SalonID   int64           `json:"salonId"`
	ServiceID int64           `json:"serviceId"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartsAt        string `json:"startsAt"`  // RFC3339, UTC
	StartTime       string `json:"startTime"` // "10:00" в зоне салона
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartsAt:        slot.StartsAt.Format(time.RFC3339),
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		SalonID:   resp.SalonID,
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(salonID, serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		SalonID:   salonID,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
