package domain

import "time"

// Salon профиль салона, 1:1 с владельцем
type Salon struct {
	ID      int64
	OwnerID int64

	Name    string
	Phone   string
	Address string
	City    string

	Description *string

	// Timezone IANA-имя зоны салона; рабочие часы задаются в этой зоне,
	// бронирования хранятся в UTC
	Timezone string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location возвращает зону салона; пустая или некорректная зона - UTC
func (s *Salon) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HasProfileFields проверяет заполненность профиля (часть вычисляемого
// флага complete; наличие рабочих часов и услуг проверяется хранилищем)
func (s *Salon) HasProfileFields() bool {
	return s.Name != "" && s.Phone != "" && s.Address != ""
}
