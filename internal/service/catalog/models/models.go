package models

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	SalonID         int64  `json:"salonId"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	PriceUnits      int64  `json:"priceUnits"`

	ActorID   int64       `json:"-"`
	ActorRole domain.Role `json:"-"`
}

// UpdateServiceRequest запрос на обновление услуги
type UpdateServiceRequest struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	PriceUnits      int64  `json:"priceUnits"`

	ActorID   int64       `json:"-"`
	ActorRole domain.Role `json:"-"`
}

// DayScheduleEntry запись расписания на день недели
type DayScheduleEntry struct {
	Weekday   int    `json:"weekday"` // 0 (Sunday) - 6 (Saturday)
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// UpdateWorkingHoursRequest запрос на полную замену расписания недели
// Дни, отсутствующие в Entries, становятся закрытыми
type UpdateWorkingHoursRequest struct {
	SalonID int64              `json:"salonId"`
	Entries []DayScheduleEntry `json:"entries"`

	ActorID   int64       `json:"-"`
	ActorRole domain.Role `json:"-"`
}

// ToDomainEntries конвертирует записи расписания в domain модели
func (r *UpdateWorkingHoursRequest) ToDomainEntries() ([]domain.WorkingHours, error) {
	entries := make([]domain.WorkingHours, 0, len(r.Entries))
	for _, e := range r.Entries {
		open, err := types.NewTimeStringFromString(e.OpenTime)
		if err != nil {
			return nil, err
		}
		closeTime, err := types.NewTimeStringFromString(e.CloseTime)
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.WorkingHours{
			SalonID:   r.SalonID,
			Weekday:   time.Weekday(e.Weekday),
			OpenTime:  open,
			CloseTime: closeTime,
		})
	}
	return entries, nil
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	SalonID         int64     `json:"salonId"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	PriceUnits      int64     `json:"priceUnits"`
	Deleted         bool      `json:"deleted,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// WeekScheduleResponse ответ с расписанием недели
type WeekScheduleResponse struct {
	SalonID int64              `json:"salonId"`
	Entries []DayScheduleEntry `json:"entries"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		SalonID:         s.SalonID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		PriceUnits:      s.PriceUnits,
		Deleted:         s.Lifecycle.IsDeleted(),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, svc := range services {
		if dto := FromDomainService(svc); dto != nil {
			resp.Services = append(resp.Services, *dto)
		}
	}
	return resp
}

// FromDomainWeekSchedule конвертирует записи расписания в DTO
func FromDomainWeekSchedule(salonID int64, entries []domain.WorkingHours) *WeekScheduleResponse {
	resp := &WeekScheduleResponse{
		SalonID: salonID,
		Entries: make([]DayScheduleEntry, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, DayScheduleEntry{
			Weekday:   int(e.Weekday),
			OpenTime:  e.OpenTime.String(),
			CloseTime: e.CloseTime.String(),
		})
	}
	return resp
}
