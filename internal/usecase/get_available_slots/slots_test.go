package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

func mustWindow(t *testing.T, open, close string) domain.Window {
	t.Helper()
	openTS, err := types.NewTimeStringFromString(open)
	require.NoError(t, err)
	closeTS, err := types.NewTimeStringFromString(close)
	require.NoError(t, err)
	return domain.Window{Open: openTS, Close: closeTS}
}

func TestGenerateCandidates(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // Monday

	t.Run("FixedStepIndependentOfDuration", func(t *testing.T) {
		window := mustWindow(t, "09:00", "17:00")

		candidates, err := generateCandidates(window, 30, date, loc)
		require.NoError(t, err)

		// Starts every 15 minutes from 09:00 while start+30m <= 17:00
		require.NotEmpty(t, candidates)
		assert.Equal(t, time.Date(2026, 9, 7, 9, 0, 0, 0, loc), candidates[0])
		assert.Equal(t, time.Date(2026, 9, 7, 16, 30, 0, 0, loc), candidates[len(candidates)-1])
		assert.Len(t, candidates, 31)

		for i := 1; i < len(candidates); i++ {
			assert.Equal(t, 15*time.Minute, candidates[i].Sub(candidates[i-1]))
		}
	})

	t.Run("LongDurationShortensTail", func(t *testing.T) {
		window := mustWindow(t, "09:00", "17:00")

		candidates, err := generateCandidates(window, 120, date, loc)
		require.NoError(t, err)

		// Last start must leave room for a 2h service before close
		assert.Equal(t, time.Date(2026, 9, 7, 15, 0, 0, 0, loc), candidates[len(candidates)-1])
	})

	t.Run("DurationLongerThanWindow", func(t *testing.T) {
		window := mustWindow(t, "09:00", "10:00")

		candidates, err := generateCandidates(window, 120, date, loc)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("InvalidWindowGivesEmpty", func(t *testing.T) {
		window := mustWindow(t, "17:00", "09:00")

		candidates, err := generateCandidates(window, 30, date, loc)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("MidnightCloseBound", func(t *testing.T) {
		window := mustWindow(t, "23:00", "24:00")

		candidates, err := generateCandidates(window, 30, date, loc)
		require.NoError(t, err)
		require.Len(t, candidates, 3)
		assert.Equal(t, time.Date(2026, 9, 7, 23, 30, 0, 0, loc), candidates[2])
	})
}

func TestFilterOccupied(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	window := mustWindow(t, "09:00", "17:00")

	at := func(h, m int) time.Time {
		return time.Date(2026, 9, 7, h, m, 0, 0, loc)
	}

	t.Run("BookingBlocksOverlappingStarts", func(t *testing.T) {
		candidates, err := generateCandidates(window, 30, date, loc)
		require.NoError(t, err)

		occupied := []domain.Interval{
			{Start: at(10, 0), End: at(10, 30)},
		}

		free := filterOccupied(candidates, 30, occupied)

		freeSet := make(map[time.Time]bool, len(free))
		for _, s := range free {
			freeSet[s] = true
		}

		// A slot ending exactly at the booking start is allowed
		assert.True(t, freeSet[at(9, 0)])
		assert.True(t, freeSet[at(9, 30)])
		// Any start whose 30m span crosses [10:00, 10:30) is not
		assert.False(t, freeSet[at(9, 45)])
		assert.False(t, freeSet[at(10, 0)])
		assert.False(t, freeSet[at(10, 15)])
		// A slot starting exactly at the booking end is allowed
		assert.True(t, freeSet[at(10, 30)])
		assert.True(t, freeSet[at(16, 30)])
	})

	t.Run("TouchingIntervalsDoNotConflict", func(t *testing.T) {
		candidates := []time.Time{at(9, 30), at(10, 30)}
		occupied := []domain.Interval{
			{Start: at(10, 0), End: at(10, 30)},
		}

		free := filterOccupied(candidates, 30, occupied)
		assert.Equal(t, candidates, free)
	})

	t.Run("NoOccupiedKeepsAll", func(t *testing.T) {
		candidates, err := generateCandidates(window, 30, date, loc)
		require.NoError(t, err)

		free := filterOccupied(candidates, 30, nil)
		assert.Equal(t, candidates, free)
	})
}

func TestFilterPast(t *testing.T) {
	loc := time.UTC
	at := func(h, m int) time.Time {
		return time.Date(2026, 9, 7, h, m, 0, 0, loc)
	}

	now := at(11, 0)
	candidates := []time.Time{at(10, 30), at(10, 45), at(11, 0), at(11, 15)}

	free := filterPast(candidates, now)

	// A slot starting exactly now is kept
	assert.Equal(t, []time.Time{at(11, 0), at(11, 15)}, free)
}

func TestDateHelpers(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	t.Run("SameDayUsesSalonTimezone", func(t *testing.T) {
		date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
		// 22:30 UTC on Sep 7 is already Sep 8 in Moscow
		now := time.Date(2026, 9, 7, 22, 30, 0, 0, time.UTC)

		assert.False(t, isSameDay(date, now, loc))
		assert.True(t, isSameDay(date, now, time.UTC))
	})

	t.Run("PastDate", func(t *testing.T) {
		date := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
		now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

		assert.True(t, isDateInPast(date, now, loc))
		assert.False(t, isDateInPast(date.AddDate(0, 0, 1), now, loc))
		assert.False(t, isDateInPast(date.AddDate(0, 0, 2), now, loc))
	})
}
