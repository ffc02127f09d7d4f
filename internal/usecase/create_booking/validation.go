package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.StartsAt.IsZero() {
		return fmt.Errorf("%w: startsAt is required", ErrInvalidInput)
	}

	switch req.Type {
	case domain.TypeOnline:
		if req.ServiceID == nil || *req.ServiceID <= 0 {
			return fmt.Errorf("%w: serviceID is required for online booking", ErrInvalidInput)
		}
	case domain.TypeManual:
		if req.ServiceID != nil {
			return fmt.Errorf("%w: serviceID is not allowed for manual block", ErrInvalidInput)
		}
		if req.EndsAt == nil {
			return fmt.Errorf("%w: endsAt is required for manual block", ErrInvalidInput)
		}
		if !req.StartsAt.Before(*req.EndsAt) {
			return fmt.Errorf("%w: endsAt must be after startsAt", ErrInvalidSlot)
		}
	default:
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.Type)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note must be at most %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}

// validateSlotInWindow проверяет, что интервал [start, end) целиком лежит
// в рабочем окне дня и начало выровнено по сетке слотов от открытия
// Времена сравниваются как wall-clock в зоне салона
func validateSlotInWindow(window domain.Window, start, end time.Time, loc *time.Location) error {
	openMin, err := window.Open.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid window open time: %v", ErrInternal, err)
	}
	closeMin, err := window.Close.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid window close time: %v", ErrInternal, err)
	}

	local := start.In(loc)
	startMin := local.Hour()*60 + local.Minute()

	localEnd := end.In(loc)
	endMin := localEnd.Hour()*60 + localEnd.Minute()
	// Конец ровно в полночь следующего дня - это 24:00 текущего
	if endMin == 0 && localEnd.After(local) {
		endMin = 24 * 60
	}

	if startMin < openMin || endMin > closeMin {
		return ErrSalonClosed
	}

	if (startMin-openMin)%domain.SlotGranularityMinutes != 0 {
		return fmt.Errorf("%w: start must be aligned to %d-minute grid from opening",
			ErrInvalidSlot, domain.SlotGranularityMinutes)
	}

	if local.Second() != 0 || local.Nanosecond() != 0 {
		return fmt.Errorf("%w: start must be a whole minute", ErrInvalidSlot)
	}

	return nil
}

// validateManualSlot проверяет выравнивание ручного блока по
// четвертьчасовой сетке в зоне салона
func validateManualSlot(start, end time.Time, loc *time.Location) error {
	for _, ts := range []time.Time{start, end} {
		local := ts.In(loc)
		if local.Minute()%domain.SlotGranularityMinutes != 0 || local.Second() != 0 || local.Nanosecond() != 0 {
			return fmt.Errorf("%w: manual block must be aligned to %d-minute grid",
				ErrInvalidSlot, domain.SlotGranularityMinutes)
		}
	}
	return nil
}

// hasOverlap проверяет пересечение интервала с занятыми интервалами
// Проверка advisory: точку истины держит exclusion constraint хранилища
func hasOverlap(slot domain.Interval, occupied []domain.Interval) bool {
	for _, occ := range occupied {
		if slot.Overlaps(occ) {
			return true
		}
	}
	return false
}

// dateKeys возвращает ключи дат (в зоне салона), которые покрывает интервал
// Для сброса кеша слотов; ручной блок может пересекать полночь
func dateKeys(start, end time.Time, loc *time.Location) []string {
	keys := make([]string, 0, 2)
	day := start.In(loc)
	last := end.In(loc).Add(-time.Nanosecond)

	for !day.After(last) {
		keys = append(keys, day.Format(domain.DateFormat))
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	}

	if len(keys) == 0 {
		keys = append(keys, start.In(loc).Format(domain.DateFormat))
	}

	return keys
}
