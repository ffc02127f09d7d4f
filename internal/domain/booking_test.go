package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusAt(t *testing.T) {
	starts := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	ends := starts.Add(30 * time.Minute)

	active := &Booking{
		StartsAt:  starts,
		EndsAt:    ends,
		Lifecycle: ActiveLifecycle(),
	}

	t.Run("upcoming before start", func(t *testing.T) {
		assert.Equal(t, StatusUpcoming, active.StatusAt(starts.Add(-time.Hour)))
	})

	t.Run("upcoming while in progress", func(t *testing.T) {
		assert.Equal(t, StatusUpcoming, active.StatusAt(starts.Add(10*time.Minute)))
	})

	t.Run("completed exactly at end", func(t *testing.T) {
		assert.Equal(t, StatusCompleted, active.StatusAt(ends))
	})

	t.Run("completed after end", func(t *testing.T) {
		assert.Equal(t, StatusCompleted, active.StatusAt(ends.Add(time.Hour)))
	})

	t.Run("cancelled wins over time", func(t *testing.T) {
		cancelled := &Booking{
			StartsAt:  starts,
			EndsAt:    ends,
			Lifecycle: DeletedLifecycle(starts.Add(-time.Hour), 42),
		}
		assert.Equal(t, StatusCancelled, cancelled.StatusAt(starts.Add(-2*time.Hour)))
		assert.Equal(t, StatusCancelled, cancelled.StatusAt(ends.Add(time.Hour)))
	})
}

func TestLifecycle(t *testing.T) {
	assert.False(t, ActiveLifecycle().IsDeleted())

	at := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	deleted := DeletedLifecycle(at, 7)
	assert.True(t, deleted.IsDeleted())
	assert.Equal(t, at, *deleted.DeletedAt)
	assert.Equal(t, int64(7), *deleted.DeletedBy)
}

func TestBookingInterval(t *testing.T) {
	b := &Booking{
		StartsAt: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2025, 6, 2, 10, 45, 0, 0, time.UTC),
	}
	iv := b.Interval()
	assert.Equal(t, b.StartsAt, iv.Start)
	assert.Equal(t, b.EndsAt, iv.End)
	assert.Equal(t, 45, iv.DurationMinutes())
}
