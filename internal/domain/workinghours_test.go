package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkingHoursValidate(t *testing.T) {
	t.Run("valid entry", func(t *testing.T) {
		wh := WorkingHours{SalonID: 1, Weekday: time.Monday, OpenTime: "09:00", CloseTime: "17:00"}
		assert.NoError(t, wh.Validate())
	})

	t.Run("close 24:00 allowed", func(t *testing.T) {
		wh := WorkingHours{SalonID: 1, Weekday: time.Friday, OpenTime: "22:00", CloseTime: "24:00"}
		assert.NoError(t, wh.Validate())
	})

	t.Run("open equals close", func(t *testing.T) {
		wh := WorkingHours{SalonID: 1, Weekday: time.Monday, OpenTime: "09:00", CloseTime: "09:00"}
		assert.ErrorIs(t, wh.Validate(), ErrInvalidWindow)
	})

	t.Run("open after close", func(t *testing.T) {
		wh := WorkingHours{SalonID: 1, Weekday: time.Monday, OpenTime: "18:00", CloseTime: "09:00"}
		assert.ErrorIs(t, wh.Validate(), ErrInvalidWindow)
	})

	t.Run("malformed time", func(t *testing.T) {
		wh := WorkingHours{SalonID: 1, Weekday: time.Monday, OpenTime: "9am", CloseTime: "17:00"}
		assert.ErrorIs(t, wh.Validate(), ErrInvalidWindow)
	})

	t.Run("weekday out of range", func(t *testing.T) {
		wh := WorkingHours{SalonID: 1, Weekday: 7, OpenTime: "09:00", CloseTime: "17:00"}
		assert.ErrorIs(t, wh.Validate(), ErrInvalidWeekday)
	})
}

func TestValidateWeekSchedule(t *testing.T) {
	t.Run("distinct weekdays pass", func(t *testing.T) {
		entries := []WorkingHours{
			{SalonID: 1, Weekday: time.Monday, OpenTime: "09:00", CloseTime: "17:00"},
			{SalonID: 1, Weekday: time.Tuesday, OpenTime: "10:00", CloseTime: "18:00"},
		}
		assert.NoError(t, ValidateWeekSchedule(entries))
	})

	t.Run("empty schedule passes", func(t *testing.T) {
		assert.NoError(t, ValidateWeekSchedule(nil))
	})

	t.Run("duplicate weekday rejected", func(t *testing.T) {
		entries := []WorkingHours{
			{SalonID: 1, Weekday: time.Monday, OpenTime: "09:00", CloseTime: "12:00"},
			{SalonID: 1, Weekday: time.Monday, OpenTime: "13:00", CloseTime: "17:00"},
		}
		assert.ErrorIs(t, ValidateWeekSchedule(entries), ErrDuplicateWeekday)
	})

	t.Run("invalid entry rejected", func(t *testing.T) {
		entries := []WorkingHours{
			{SalonID: 1, Weekday: time.Monday, OpenTime: "17:00", CloseTime: "09:00"},
		}
		assert.ErrorIs(t, ValidateWeekSchedule(entries), ErrInvalidWindow)
	})
}

func TestWindowIsValid(t *testing.T) {
	assert.True(t, Window{Open: "09:00", Close: "17:00"}.IsValid())
	assert.False(t, Window{Open: "09:00", Close: "09:00"}.IsValid())
	assert.False(t, Window{Open: "", Close: "17:00"}.IsValid())
	assert.False(t, Window{Open: "17:00", Close: "09:00"}.IsValid())
}

func TestSalonLocation(t *testing.T) {
	t.Run("valid zone", func(t *testing.T) {
		s := &Salon{Timezone: "Europe/Moscow"}
		assert.Equal(t, "Europe/Moscow", s.Location().String())
	})

	t.Run("empty zone falls back to UTC", func(t *testing.T) {
		s := &Salon{}
		assert.Equal(t, time.UTC, s.Location())
	})

	t.Run("unknown zone falls back to UTC", func(t *testing.T) {
		s := &Salon{Timezone: "Mars/Olympus"}
		assert.Equal(t, time.UTC, s.Location())
	})
}
