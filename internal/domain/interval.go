package domain

import "time"

// Interval полуинтервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid проверяет, что Start строго раньше End
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Overlaps half-open interval overlap test: intervals that merely touch
// (one ends exactly where the other starts) do NOT overlap
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Duration возвращает длительность интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// DurationMinutes длительность интервала в целых минутах
func (i Interval) DurationMinutes() int {
	return int(i.Duration() / time.Minute)
}
