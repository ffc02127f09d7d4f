package get_available_slots

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// generateCandidates генерирует времена начала кандидатов слотов на дату
// Шаг генерации фиксированный (SlotGranularityMinutes), независимо от
// длительности услуги; кандидат допустим, пока start + duration <= close
// Некорректное окно (close <= open) даёт пустой результат, не ошибку
func generateCandidates(
	window domain.Window,
	durationMinutes int,
	date time.Time,
	loc *time.Location,
) ([]time.Time, error) {
	if !window.IsValid() || durationMinutes <= 0 {
		return []time.Time{}, nil
	}

	openMin, err := window.Open.Minutes()
	if err != nil {
		return []time.Time{}, nil
	}
	closeMin, err := window.Close.Minutes()
	if err != nil {
		return []time.Time{}, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	candidates := make([]time.Time, 0)
	for startMin := openMin; startMin+durationMinutes <= closeMin; startMin += domain.SlotGranularityMinutes {
		candidates = append(candidates, dayStart.Add(time.Duration(startMin)*time.Minute))
	}

	return candidates, nil
}

// filterOccupied отфильтровывает кандидатов, пересекающихся с занятыми
// интервалами. Пересечение полуинтервалов строгое: слот, заканчивающийся
// ровно в начале бронирования (или начинающийся ровно в его конце),
// допустим
func filterOccupied(candidates []time.Time, durationMinutes int, occupied []domain.Interval) []time.Time {
	free := make([]time.Time, 0, len(candidates))
	duration := time.Duration(durationMinutes) * time.Minute

	for _, start := range candidates {
		slot := domain.Interval{Start: start, End: start.Add(duration)}

		conflict := false
		for _, occ := range occupied {
			if slot.Overlaps(occ) {
				conflict = true
				break
			}
		}

		if !conflict {
			free = append(free, start)
		}
	}

	return free
}

// filterPast исключает кандидатов, начинающихся в прошлом
// Применяется только когда запрошенная дата - сегодня
func filterPast(candidates []time.Time, now time.Time) []time.Time {
	future := make([]time.Time, 0, len(candidates))
	for _, start := range candidates {
		if !start.Before(now) {
			future = append(future, start)
		}
	}
	return future
}

// isSameDay проверяет, что запрошенная дата (чистые Y/M/D компоненты)
// совпадает с сегодняшним днём в локации loc
func isSameDay(date, now time.Time, loc *time.Location) bool {
	n := now.In(loc)
	return date.Year() == n.Year() && date.Month() == n.Month() && date.Day() == n.Day()
}

// isDateInPast проверяет, что запрошенная дата раньше сегодняшнего дня
// в локации loc. Дата трактуется как чистые Y/M/D компоненты
func isDateInPast(date, now time.Time, loc *time.Location) bool {
	n := now.In(loc)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	nowOnly := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	return dateOnly.Before(nowOnly)
}
