package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString время в формате "HH:MM" (wall-clock, без даты)
// Используется для рабочих часов и временных слотов
type TimeString string

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

	// ErrTimeOverflow возвращается, когда результат операции выходит за пределы суток
	ErrTimeOverflow = errors.New("time is out of day range")
)

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString парсит строку "HH:MM" с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет формат "HH:MM" (00:00 - 23:59)
func (t TimeString) Validate() error {
	if _, err := t.Minutes(); err != nil {
		return err
	}
	return nil
}

// Minutes возвращает количество минут с начала суток
// Значение "24:00" допустимо как верхняя граница окна
func (t TimeString) Minutes() (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &h, &m); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	if len(t) != 5 || t[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	if m < 0 || m > 59 || h < 0 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return h*60 + m, nil
}

// FromMinutes создает TimeString из количества минут с начала суток
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > 24*60 {
		return "", ErrTimeOverflow
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// AddMinutes возвращает время, смещённое на minutes минут вперёд
// Ошибка, если результат выходит за пределы суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	base, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(base + minutes)
}

// IsBefore строгое сравнение: t < other
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter строгое сравнение: t > other
func (t TimeString) IsAfter(other TimeString) bool {
	a, err := t.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a > b
}

// IsZero проверяет, что значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// OnDate совмещает wall-clock время с датой в указанной локации
func (t TimeString) OnDate(date time.Time, loc *time.Location) (time.Time, error) {
	m, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 0, m, 0, 0, loc), nil
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает text-колонки и time-колонки postgres ("HH:MM:SS")
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported source %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) > 5 {
		s = s[:5]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
