package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

var (
	// ErrInvalidWindow возвращается, когда close <= open
	ErrInvalidWindow = errors.New("invalid working hours window")

	// ErrInvalidWeekday возвращается при дне недели вне диапазона 0-6
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrDuplicateWeekday возвращается при двух записях на один день недели
	ErrDuplicateWeekday = errors.New("duplicate weekday in schedule")
)

// WorkingHours рабочие часы салона на день недели
// Не более одной записи на пару (салон, день недели);
// отсутствие записи означает "закрыто"
type WorkingHours struct {
	SalonID   int64
	Weekday   time.Weekday // 0 (Sunday) - 6 (Saturday)
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// Validate проверяет инварианты записи; open < close проверяется
// только при записи расписания, чтение не валидирует
func (w *WorkingHours) Validate() error {
	if w.Weekday < time.Sunday || w.Weekday > time.Saturday {
		return fmt.Errorf("%w: %d", ErrInvalidWeekday, w.Weekday)
	}
	if err := w.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open: %v", ErrInvalidWindow, err)
	}
	if err := w.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrInvalidWindow, err)
	}
	if !w.OpenTime.IsBefore(w.CloseTime) {
		return fmt.Errorf("%w: open %s must be before close %s", ErrInvalidWindow, w.OpenTime, w.CloseTime)
	}
	return nil
}

// Window окно доступности на конкретный день недели
type Window struct {
	Open  types.TimeString
	Close types.TimeString
}

// IsValid defensively rejects zero-length and mis-ordered windows
func (w Window) IsValid() bool {
	return !w.Open.IsZero() && !w.Close.IsZero() && w.Open.IsBefore(w.Close)
}

// ValidateWeekSchedule проверяет набор записей на полную неделю:
// каждая запись валидна, дни недели не повторяются
func ValidateWeekSchedule(entries []WorkingHours) error {
	seen := make(map[time.Weekday]bool, len(entries))
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return err
		}
		if seen[entries[i].Weekday] {
			return fmt.Errorf("%w: %s", ErrDuplicateWeekday, entries[i].Weekday)
		}
		seen[entries[i].Weekday] = true
	}
	return nil
}
