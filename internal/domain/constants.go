package domain

// Slot generation constants
const (
	// SlotGranularityMinutes шаг генерации кандидатов слотов
	// Совпадает с шагом длительности услуг (кратность 15 минутам)
	SlotGranularityMinutes = 15
)

// Business validation constants
const (
	MinServiceDurationMinutes = 15
	MaxServiceDurationMinutes = 240
	ServiceDurationStep       = 15

	MinServicePriceUnits = 1
	MaxServicePriceUnits = 10000

	MaxServiceNameLength = 200
	MaxNoteLength        = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Role роль вызывающего, передаётся внешним auth-провайдером
// и принимается сервисом на доверии без повторной проверки
type Role string

const (
	RoleOwner Role = "OWNER"
	RoleUser  Role = "USER"
)
