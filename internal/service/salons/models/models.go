package models

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// Request модели

// UpdateSalonRequest запрос на обновление профиля салона
type UpdateSalonRequest struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Description *string `json:"description,omitempty"`
	Timezone    string  `json:"timezone"`

	ActorID   int64       `json:"-"`
	ActorRole domain.Role `json:"-"`
}

// Response модели

// SalonResponse ответ с профилем салона
// Complete вычисляется запросом, нигде не хранится
type SalonResponse struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"ownerId"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Description *string `json:"description,omitempty"`
	Timezone    string  `json:"timezone"`
	Complete    bool    `json:"complete"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SalonListResponse ответ со списком салонов публичного каталога
type SalonListResponse struct {
	Salons []SalonResponse `json:"salons"`
}

// Методы конвертации

// FromDomainSalon конвертирует domain модель в DTO
func FromDomainSalon(s *domain.Salon, complete bool) *SalonResponse {
	if s == nil {
		return nil
	}
	return &SalonResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Phone:       s.Phone,
		Address:     s.Address,
		City:        s.City,
		Description: s.Description,
		Timezone:    s.Timezone,
		Complete:    complete,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainSalonList конвертирует список domain моделей в DTO
// Список каталога уже отфильтрован по заполненности
func FromDomainSalonList(salons []*domain.Salon) *SalonListResponse {
	resp := &SalonListResponse{
		Salons: make([]SalonResponse, 0, len(salons)),
	}
	for _, s := range salons {
		if dto := FromDomainSalon(s, true); dto != nil {
			resp.Salons = append(resp.Salons, *dto)
		}
	}
	return resp
}
